package report

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
	g := api.Group("", auth.RequireRole("admin", "nurse", "manager"))
	g.GET("/reports", h.List)
	g.GET("/reports/:id", h.Get)
	g.POST("/reports", h.Create)
	g.PUT("/reports/:id", h.Update)
	g.DELETE("/reports/:id", h.Delete)
}

// request uses day-level date strings; the service treats the end date as
// inclusive through end of day.
type request struct {
	Title       string  `json:"title"`
	PatientID   string  `json:"patient_id"`
	Subtype     string  `json:"subtype"`
	PeriodStart string  `json:"period_start,omitempty"`
	PeriodEnd   string  `json:"period_end,omitempty"`
	Notes       *string `json:"notes,omitempty"`
}

func (r request) toInput() (Input, error) {
	patientID, err := uuid.Parse(r.PatientID)
	if err != nil {
		return Input{}, fmt.Errorf("invalid patient_id")
	}
	in := Input{
		Title:     r.Title,
		PatientID: patientID,
		Subtype:   Subtype(r.Subtype),
		Notes:     r.Notes,
	}
	if r.PeriodStart != "" {
		t, err := time.Parse("2006-01-02", r.PeriodStart)
		if err != nil {
			return Input{}, fmt.Errorf("invalid period_start: %s", r.PeriodStart)
		}
		in.PeriodStart = &t
	}
	if r.PeriodEnd != "" {
		t, err := time.Parse("2006-01-02", r.PeriodEnd)
		if err != nil {
			return Input{}, fmt.Errorf("invalid period_end: %s", r.PeriodEnd)
		}
		in.PeriodEnd = &t
	}
	return in, nil
}

func (h *Handler) Create(c echo.Context) error {
	var req request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	in, err := req.toInput()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	createdBy := auth.UserIDFromContext(c.Request().Context())
	rep, err := h.svc.Create(c.Request().Context(), in, createdBy)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, rep)
}

func (h *Handler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var req request
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	in, err := req.toInput()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	rep, err := h.svc.Update(c.Request().Context(), id, in)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	rep, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "report not found")
	}
	return c.JSON(http.StatusOK, rep)
}

func (h *Handler) List(c echo.Context) error {
	f := Filter{
		Title:   c.QueryParam("title"),
		Subtype: Subtype(c.QueryParam("subtype")),
	}
	if raw := c.QueryParam("patient_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		f.PatientID = &id
	}
	if raw := c.QueryParam("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid from date")
		}
		f.CreatedFrom = &t
	}
	if raw := c.QueryParam("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid to date")
		}
		end := t.Add(24 * time.Hour)
		f.CreatedTo = &end
	}

	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), f, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
