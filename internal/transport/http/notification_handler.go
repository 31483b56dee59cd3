package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	apierrors "bpmsclient/internal/errors"
	"bpmsclient/internal/middleware"
	"bpmsclient/internal/services"
	api "bpmsclient/pkg/contracts/api/v1"
	"bpmsclient/pkg/contracts/domain"
)

// NotificationHandler accepts notifications for connected browsers
type NotificationHandler struct {
	service   *services.NotificationService
	validator *middleware.Validator
	errors    *apierrors.ErrorHandler
	logger    *slog.Logger
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(service *services.NotificationService, validator *middleware.Validator, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) *NotificationHandler {
	return &NotificationHandler{
		service:   service,
		validator: validator,
		errors:    errorHandler,
		logger:    logger.With(slog.String("handler", "notification")),
	}
}

// Publish handles POST /api/notifications
func (h *NotificationHandler) Publish(w http.ResponseWriter, r *http.Request) {
	var req api.NotificationRequest
	if err := h.validator.Decode(r, &req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	accepted, err := h.service.Publish(r.Context(), req)
	if err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	render.Status(r, http.StatusAccepted)
	render.JSON(w, r, domain.OK(accepted))
}
