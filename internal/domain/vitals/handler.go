package vitals

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/macena-health/care-api/internal/platform/auth"
	"github.com/macena-health/care-api/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	g := api.Group("", auth.RequireRole("admin", "nurse", "manager", "caregiver"))
	g.POST("/patients/:id/vital-signs", h.Record)
	g.GET("/patients/:id/vital-signs", h.ListByPatient)
	g.GET("/vital-signs/reference-ranges", h.ReferenceRanges)
}

// RecordResponse carries the persisted measurement together with the
// classification result.
type RecordResponse struct {
	Measurement *Measurement `json:"measurement"`
	BMI         *BMIResult   `json:"bmi,omitempty"`
	Deviations  []string     `json:"deviations"`
}

func (h *Handler) Record(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	var in RecordInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	createdBy := auth.UserIDFromContext(c.Request().Context())
	m, deviations, err := h.svc.Record(c.Request().Context(), patientID, in, createdBy)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	resp := RecordResponse{Measurement: m, Deviations: []string{}}
	for _, d := range deviations {
		resp.Deviations = append(resp.Deviations, d.Description())
	}
	if m.BMI != nil {
		resp.BMI = &BMIResult{Value: *m.BMI, Classification: classifyBMI(*m.BMI)}
	}
	return c.JSON(http.StatusCreated, resp)
}

func (h *Handler) ListByPatient(c echo.Context) error {
	patientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid patient id")
	}
	from, to, err := parseWindow(c.QueryParam("from"), c.QueryParam("to"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByPatient(c.Request().Context(), patientID, from, to, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) ReferenceRanges(c echo.Context) error {
	return c.JSON(http.StatusOK, ReferenceRanges)
}

// parseWindow reads optional day-level bounds. The end date is inclusive
// through end of day, realized as an exclusive bound one day later.
func parseWindow(fromStr, toStr string) (*time.Time, *time.Time, error) {
	var from, to *time.Time
	if fromStr != "" {
		t, err := time.Parse("2006-01-02", fromStr)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid from date: %s", fromStr)
		}
		from = &t
	}
	if toStr != "" {
		t, err := time.Parse("2006-01-02", toStr)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid to date: %s", toStr)
		}
		end := t.Add(24 * time.Hour)
		to = &end
	}
	return from, to, nil
}
