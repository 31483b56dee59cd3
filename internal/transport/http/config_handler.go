package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	apierrors "bpmsclient/internal/errors"
	"bpmsclient/internal/middleware"
	"bpmsclient/internal/services"
	api "bpmsclient/pkg/contracts/api/v1"
)

// ConfigHandler serves the public client environment and its checks
type ConfigHandler struct {
	shell     *services.ShellService
	validator *middleware.Validator
	errors    *apierrors.ErrorHandler
	logger    *slog.Logger
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(shell *services.ShellService, validator *middleware.Validator, errorHandler *apierrors.ErrorHandler, logger *slog.Logger) *ConfigHandler {
	return &ConfigHandler{
		shell:     shell,
		validator: validator,
		errors:    errorHandler,
		logger:    logger.With(slog.String("handler", "config")),
	}
}

// GetConfig handles GET /api/config
func (h *ConfigHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	body, etag := h.shell.PublicConfig(r.Context())

	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "no-cache")
	if etagMatches(r.Header.Get("If-None-Match"), etag) {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if r.Method != http.MethodHead {
		w.Write(body)
	}
}

// GetValidation handles GET /api/config/validation. A missing required key answers
// 503 with the validation report attached to the problem.
func (h *ConfigHandler) GetValidation(w http.ResponseWriter, r *http.Request) {
	report := h.shell.Validation(r.Context())
	if report.Valid {
		render.JSON(w, r, report)
		return
	}

	h.logger.WarnContext(r.Context(), "client environment is invalid",
		slog.Any("missing", report.Missing))
	problem := h.errors.ErrorToProblem(h.shell.ValidationErr(), r).
		WithExtension("valid", false).
		WithExtension("warnings", report.Warnings).
		WithExtension("trace_id", middleware.GetRequestID(r.Context()))
	render.Render(w, r, problem)
}

// CheckFile handles POST /api/files/check
func (h *ConfigHandler) CheckFile(w http.ResponseWriter, r *http.Request) {
	var req api.FileCheckRequest
	if err := h.validator.Decode(r, &req); err != nil {
		h.errors.HandleError(w, r, err)
		return
	}
	render.JSON(w, r, h.shell.CheckFile(r.Context(), req))
}

// etagMatches implements the weak comparison of If-None-Match
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		if candidate == "*" || strings.TrimPrefix(candidate, "W/") == etag {
			return true
		}
	}
	return false
}
