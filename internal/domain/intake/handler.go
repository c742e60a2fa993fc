package intake

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

type Handler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHandler(svc *Service, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// RegisterRoutes wires the kiosk-facing intake endpoints. They are public:
// the patient chats before having any account.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/intake/conversations", h.StartConversation)
	api.POST("/intake/conversations/:id/messages", h.PostMessage)
	api.POST("/intake/conversations/:id/complete", h.Complete)
}

func (h *Handler) StartConversation(c echo.Context) error {
	conv, greeting, err := h.svc.StartConversation(c.Request().Context())
	if err != nil {
		h.logger.Error().Err(err).Str("op", "intake.start").Msg("failed to open conversation")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"conversationId": conv.ID,
		"message":        greeting,
	})
}

func (h *Handler) PostMessage(c echo.Context) error {
	convID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid conversation id"})
	}
	var in MessageInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if errs := in.Validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"errors": errs})
	}

	reply, err := h.svc.PostMessage(c.Request().Context(), convID, in)
	if err != nil {
		if errors.Is(err, ErrConversationNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Conversation not found"})
		}
		h.logger.Error().Err(err).Str("op", "intake.message").Msg("failed to post message")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"message": reply})
}

func (h *Handler) Complete(c echo.Context) error {
	convID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid conversation id"})
	}
	var in CompleteInput
	if err := c.Bind(&in); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if errs := in.Validate(); len(errs) > 0 {
		return c.JSON(http.StatusBadRequest, map[string]interface{}{"errors": errs})
	}

	sum, err := h.svc.CompleteIntake(c.Request().Context(), convID, in)
	if err != nil {
		if errors.Is(err, ErrConversationNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Conversation not found"})
		}
		h.logger.Error().Err(err).Str("op", "intake.complete").Msg("failed to complete intake")
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{"summary": sum})
}
