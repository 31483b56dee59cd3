package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"go.opentelemetry.io/otel/attribute"

	apierrors "bpmsclient/internal/errors"
	"bpmsclient/internal/infrastructure"
	"bpmsclient/internal/middleware"
	api "bpmsclient/pkg/contracts/api/v1"
)

// ClientLogHandler writes browser log entries into the server log
type ClientLogHandler struct {
	validator *middleware.Validator
	errors    *apierrors.ErrorHandler
	metrics   *infrastructure.ShellMetrics
	logger    *slog.Logger
}

// NewClientLogHandler creates a new client log handler
func NewClientLogHandler(validator *middleware.Validator, errorHandler *apierrors.ErrorHandler, metrics *infrastructure.ShellMetrics, logger *slog.Logger) *ClientLogHandler {
	if metrics == nil {
		metrics, _ = infrastructure.NewShellMetrics(nil)
	}
	return &ClientLogHandler{
		validator: validator,
		errors:    errorHandler,
		metrics:   metrics,
		logger:    logger.With(slog.String("handler", "client_log")),
	}
}

// Handle handles POST /api/logs
func (h *ClientLogHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req api.ClientLogRequest
	if err := h.validator.Decode(r, &req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}

	level := clientLogLevel(req.Level)
	attrs := []slog.Attr{
		slog.String("client_source", req.Source),
		slog.String("timestamp", time.Now().Format(time.RFC3339)),
	}
	if req.Data != nil {
		attrs = append(attrs, slog.Any("data", req.Data))
	}

	h.logger.LogAttrs(r.Context(), level, req.Message, attrs...)
	h.metrics.Inc(r.Context(), h.metrics.ClientLogs, attribute.String("level", level.String()))

	render.JSON(w, r, map[string]bool{"success": true})
}

// clientLogLevel maps the browser level name; unknown or empty names log at info
func clientLogLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
