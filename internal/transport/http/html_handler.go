package http

import (
	"bytes"
	"log/slog"
	"net/http"

	apierrors "bpmsclient/internal/errors"
	"bpmsclient/internal/services"
	"bpmsclient/internal/ui"
)

// PageHandler renders the server-side shell pages
type PageHandler struct {
	shell    *services.ShellService
	renderer *ui.Renderer
	errors   *apierrors.ErrorHandler
	logger   *slog.Logger
}

// NewPageHandler creates a new page handler
func NewPageHandler(shell *services.ShellService, renderer *ui.Renderer, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) *PageHandler {
	return &PageHandler{
		shell:    shell,
		renderer: renderer,
		errors:   errorHandler,
		logger:   logger.With(slog.String("handler", "page")),
	}
}

// Home handles GET /
func (h *PageHandler) Home(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.renderer.RenderHome(&buf, h.shell.HomePage(r.Context(), nil)); err != nil {
		h.logger.ErrorContext(r.Context(), "failed to render home page",
			slog.String("error", err.Error()))
		h.errors.HandleError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		buf.WriteTo(w)
	}
}
