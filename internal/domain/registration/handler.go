package registration

import (
	"net/http"

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

// RegisterRoutes wires the workflow. Submission happens before any role is
// granted, so it only needs authentication; decisions are admin-only.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/registrations", h.Submit)

	admin := api.Group("", auth.RequireRole("admin"))
	admin.GET("/registrations", h.List)
	admin.GET("/registrations/:id", h.Get)
	admin.POST("/registrations/:id/approve", h.Approve)
	admin.POST("/registrations/:id/reject", h.Reject)
}

func (h *Handler) Submit(c echo.Context) error {
	var in SubmitInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if in.UserID == "" {
		in.UserID = auth.UserIDFromContext(c.Request().Context())
	}
	reg, err := h.svc.Submit(c.Request().Context(), in)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, reg)
}

func (h *Handler) List(c echo.Context) error {
	status := Status(c.QueryParam("status"))
	pg := pagination.FromContext(c)
	items, total, err := h.svc.List(c.Request().Context(), status, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	reg, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "registration not found")
	}
	return c.JSON(http.StatusOK, reg)
}

type decisionInput struct {
	Role string `json:"role"`
}

func (h *Handler) Approve(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var in decisionInput
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	decidedBy := auth.UserIDFromContext(c.Request().Context())
	reg, err := h.svc.Approve(c.Request().Context(), id, in.Role, decidedBy)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, reg)
}

func (h *Handler) Reject(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	decidedBy := auth.UserIDFromContext(c.Request().Context())
	reg, err := h.svc.Reject(c.Request().Context(), id, decidedBy)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, reg)
}
