package queue

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/mediq/mediq/internal/domain/intake"
	"github.com/mediq/mediq/internal/platform/auth"
	"github.com/mediq/mediq/pkg/pagination"
)

// SummaryReader loads intake summaries for the dashboard detail view. The
// intake service satisfies it directly.
type SummaryReader interface {
	GetSummaryDetails(ctx context.Context, summaryID uuid.UUID) (*intake.SummaryDetails, error)
}

// UserDirectory resolves which hospital the authenticated staff member
// belongs to.
type UserDirectory interface {
	HospitalIDForUser(ctx context.Context, userID uuid.UUID) (uuid.UUID, error)
}

type Handler struct {
	svc       *Service
	summaries SummaryReader
	users     UserDirectory
	logger    zerolog.Logger
}

func NewHandler(svc *Service, summaries SummaryReader, users UserDirectory, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, summaries: summaries, users: users, logger: logger}
}

// RegisterRoutes wires the staff dashboard endpoints. Callers pass the
// session and role middleware; every route here requires them.
func (h *Handler) RegisterRoutes(api *echo.Group, mw ...echo.MiddlewareFunc) {
	g := api.Group("/queue", mw...)
	g.GET("", h.GetQueue)
	g.GET("/summaries/:id", h.GetSummary)
	g.PATCH("/:id/status", h.UpdateStatus)
}

func (h *Handler) GetQueue(c echo.Context) error {
	claims := auth.ClaimsFromContext(c.Request().Context())
	if claims == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	hospitalID, err := h.users.HospitalIDForUser(c.Request().Context(), claims.UserID)
	if err != nil {
		h.logger.Error().Err(err).Str("op", "queue.list").Msg("failed to resolve hospital")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}

	p := pagination.FromContext(c)
	items, total, err := h.svc.GetQueue(c.Request().Context(), hospitalID, p.Limit, p.Offset)
	if err != nil {
		h.logger.Error().Err(err).Str("op", "queue.list").Msg("failed to load queue")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, p.Limit, p.Offset))
}

func (h *Handler) GetSummary(c echo.Context) error {
	summaryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid summary id"})
	}

	details, err := h.summaries.GetSummaryDetails(c.Request().Context(), summaryID)
	if err != nil {
		h.logger.Error().Err(err).Str("op", "queue.summary").Msg("failed to load summary")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
	if details == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Summary not found"})
	}
	return c.JSON(http.StatusOK, details)
}

func (h *Handler) UpdateStatus(c echo.Context) error {
	entryID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, StatusResult{Success: false, Message: "Invalid queue entry id"})
	}
	var in struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, StatusResult{Success: false, Message: "Invalid request body"})
	}

	switch err := h.svc.UpdateStatus(c.Request().Context(), entryID, in.Status); {
	case errors.Is(err, ErrInvalidStatus):
		return c.JSON(http.StatusBadRequest, StatusResult{Success: false, Message: "Invalid status value"})
	case errors.Is(err, ErrEntryNotFound):
		return c.JSON(http.StatusNotFound, StatusResult{Success: false, Message: "Queue entry not found"})
	case err != nil:
		h.logger.Error().Err(err).Str("op", "queue.status").Msg("failed to update status")
		return c.JSON(http.StatusInternalServerError, StatusResult{Success: false, Message: "Failed to update status"})
	}
	return c.JSON(http.StatusOK, StatusResult{Success: true, Message: "Status updated successfully"})
}
