package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"bpmsclient/internal/infrastructure"
)

// MetricsHandler exposes Prometheus metrics and the runtime sample
type MetricsHandler struct {
	prometheus http.Handler
	collector  *infrastructure.RuntimeCollector
}

// NewMetricsHandler creates a metrics handler. A nil prometheus handler falls back to
// the default registry.
func NewMetricsHandler(prometheus http.Handler, collector *infrastructure.RuntimeCollector) *MetricsHandler {
	if prometheus == nil {
		prometheus = promhttp.Handler()
	}
	return &MetricsHandler{prometheus: prometheus, collector: collector}
}

// Routes sets up the metrics routes
func (h *MetricsHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetMetrics)
	r.Get("/runtime", h.GetRuntime)
	return r
}

// GetMetrics serves the Prometheus exposition format
func (h *MetricsHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.prometheus.ServeHTTP(w, r)
}

// GetRuntime returns the latest runtime sample as JSON
func (h *MetricsHandler) GetRuntime(w http.ResponseWriter, r *http.Request) {
	if h.collector == nil {
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, map[string]string{"status": "runtime collector disabled"})
		return
	}
	render.JSON(w, r, h.collector.Latest())
}
