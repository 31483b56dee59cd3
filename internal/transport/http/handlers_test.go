package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bpmsclient/internal/config"
	apierrors "bpmsclient/internal/errors"
	"bpmsclient/internal/middleware"
	"bpmsclient/internal/services"
	"bpmsclient/internal/shared/testutil"
	"bpmsclient/internal/ui"
	"bpmsclient/pkg/contracts/domain"
)

// fakeNotifier records notifications and pretends two sockets are connected
type fakeNotifier struct {
	mu   sync.Mutex
	sent []domain.NotificationMessage
}

func (f *fakeNotifier) Notify(msg domain.NotificationMessage) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, msg)
	return 2
}

type fixture struct {
	router   chi.Router
	logs     *testutil.BufferedSlogHandler
	notifier *fakeNotifier
}

func newFixture(t *testing.T, env config.Environment) *fixture {
	t.Helper()
	logger, logs := testutil.NewTestLogger(t)

	shell, err := services.NewShellService(env, nil, logger)
	require.NoError(t, err)
	renderer, err := ui.NewRenderer()
	require.NoError(t, err)

	notifier := &fakeNotifier{}
	errorHandler := apierrors.NewErrorHandler(logger, false)
	validator := middleware.NewValidator(logger, middleware.DefaultMaxBodySize)
	registry := prometheus.NewRegistry()

	pages := NewPageHandler(shell, renderer, errorHandler, logger)
	cfg := NewConfigHandler(shell, validator, errorHandler, logger)
	logsHandler := NewClientLogHandler(validator, errorHandler, nil, logger)
	notifications := NewNotificationHandler(services.NewNotificationService(notifier, nil, logger), validator, errorHandler, logger)
	health := NewHealthHandler(services.NewHealthService(env, services.HealthDeps{}, logger), logger)
	metrics := NewMetricsHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), nil)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Get("/", pages.Home)
	r.Mount("/metrics", metrics.Routes())
	r.Route("/api", func(r chi.Router) {
		r.Get("/config", cfg.GetConfig)
		r.Get("/config/validation", cfg.GetValidation)
		r.Post("/files/check", cfg.CheckFile)
		r.Post("/logs", logsHandler.Handle)
		r.Post("/notifications", notifications.Publish)
		r.Get("/health", health.HealthCheck)
		r.Get("/health/ready", health.ReadinessCheck)
		r.Get("/health/live", health.LivenessCheck)
		r.Get("/version", health.Version)
	})

	return &fixture{router: r, logs: logs, notifier: notifier}
}

func (f *fixture) do(method, target, body string, header ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestHomePage(t *testing.T) {
	f := newFixture(t, testutil.Environment(config.MapSource{config.KeyAppName: "Acme BPMS"}))

	rec := f.do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "Acme BPMS")
	assert.Contains(t, rec.Body.String(), `id="app-config"`)
}

func TestGetConfig(t *testing.T) {
	f := newFixture(t, testutil.Environment(nil))

	rec := f.do(http.MethodGet, "/api/config", "")
	require.Equal(t, http.StatusOK, rec.Code)
	etag := rec.Header().Get("ETag")
	require.NotEmpty(t, etag)
	assert.Equal(t, services.ETag(rec.Body.Bytes()), etag)

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.Equal(t, config.DefaultAPIBaseURL, data["API_BASE_URL"])

	tests := []struct {
		name        string
		ifNoneMatch string
		expected    int
	}{
		{"matching etag", etag, http.StatusNotModified},
		{"weak matching etag", "W/" + etag, http.StatusNotModified},
		{"etag in list", `"other", ` + etag, http.StatusNotModified},
		{"wildcard", "*", http.StatusNotModified},
		{"stale etag", `"stale"`, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(http.MethodGet, "/api/config", "", "If-None-Match", tt.ifNoneMatch)
			assert.Equal(t, tt.expected, rec.Code)
			assert.Equal(t, etag, rec.Header().Get("ETag"))
			if tt.expected == http.StatusNotModified {
				assert.Empty(t, rec.Body.String())
			}
		})
	}
}

func TestGetValidation(t *testing.T) {
	t.Run("valid environment", func(t *testing.T) {
		f := newFixture(t, testutil.Environment(nil))
		rec := f.do(http.MethodGet, "/api/config/validation", "")

		require.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, true, body["valid"])
		assert.Empty(t, body["missing"])
	})

	t.Run("missing required keys", func(t *testing.T) {
		f := newFixture(t, testutil.InvalidEnvironment(config.KeyAPIBaseURL))
		rec := f.do(http.MethodGet, "/api/config/validation", "")

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, apierrors.TypeEnvironmentInvalid, body["type"])
		assert.Equal(t, false, body["valid"])
		assert.Equal(t, []any{"API_BASE_URL"}, body["missing"])
		assert.Equal(t, "Missing required environment variables: API_BASE_URL", body["detail"])
		assert.NotEmpty(t, body["trace_id"])
	})
}

func TestCheckFile(t *testing.T) {
	f := newFixture(t, testutil.Environment(nil))

	tests := []struct {
		name     string
		body     string
		status   int
		valid    bool
		readable string
	}{
		{"within limit", `{"name":"diagram.bpmn","size":2048}`, http.StatusOK, true, "2 KB"},
		{"at limit", `{"name":"big.zip","size":10485760}`, http.StatusOK, true, "10 MB"},
		{"over limit", `{"name":"huge.zip","size":10485761}`, http.StatusOK, false, "10 MB"},
		{"missing name", `{"size":1}`, http.StatusBadRequest, false, ""},
		{"negative size", `{"name":"a.txt","size":-1}`, http.StatusBadRequest, false, ""},
		{"unknown field", `{"name":"a.txt","size":1,"extra":true}`, http.StatusBadRequest, false, ""},
		{"malformed json", `{"name":`, http.StatusBadRequest, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(http.MethodPost, "/api/files/check", tt.body)
			require.Equal(t, tt.status, rec.Code, rec.Body.String())

			body := decode(t, rec)
			if tt.status != http.StatusOK {
				assert.Equal(t, apierrors.TypeValidation, body["type"])
				return
			}
			assert.Equal(t, tt.valid, body["valid"])
			assert.Equal(t, "10 MB", body["formatted_max_size"])
			if tt.valid {
				assert.Equal(t, tt.readable, body["formatted_size"])
			}
		})
	}
}

func TestClientLogs(t *testing.T) {
	f := newFixture(t, testutil.Environment(nil))

	rec := f.do(http.MethodPost, "/api/logs",
		`{"level":"warn","message":"bundle failed to hydrate","source":"main.tsx","data":{"attempt":2}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["success"])
	testutil.AssertLogContains(t, f.logs, slog.LevelWarn, "bundle failed to hydrate")
	assert.True(t, f.logs.ContainsAttr("client_source", "main.tsx"))

	rec = f.do(http.MethodPost, "/api/logs", `{"message":"no level"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	testutil.AssertLogContains(t, f.logs, slog.LevelInfo, "no level")

	rec = f.do(http.MethodPost, "/api/logs", `{"level":"fatal","message":"x"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.do(http.MethodPost, "/api/logs", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPublishNotification(t *testing.T) {
	f := newFixture(t, testutil.Environment(nil))

	rec := f.do(http.MethodPost, "/api/notifications",
		`{"type":"success","title":"Process deployed","message":"Invoice approval v3 is live","userId":"alice"}`)
	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())

	body := decode(t, rec)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["id"])
	assert.EqualValues(t, 2, data["recipients"])

	require.Len(t, f.notifier.sent, 1)
	sent := f.notifier.sent[0]
	assert.Equal(t, "alice", sent.UserID)
	assert.Equal(t, data["id"], sent.ID)
	assert.False(t, sent.Timestamp.IsZero())

	rec = f.do(http.MethodPost, "/api/notifications", `{"type":"loud","title":"x","message":"y"}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, f.notifier.sent, 1)
}

func TestHealthEndpoints(t *testing.T) {
	tests := []struct {
		name     string
		env      config.Environment
		path     string
		status   int
		expected string
	}{
		{"health", testutil.Environment(nil), "/api/health", http.StatusOK, services.StatusOK},
		{"ready", testutil.Environment(nil), "/api/health/ready", http.StatusOK, services.StatusReady},
		{"not ready", testutil.InvalidEnvironment(config.KeyWebSocketURL), "/api/health/ready", http.StatusServiceUnavailable, services.StatusNotReady},
		{"live", testutil.Environment(nil), "/api/health/live", http.StatusOK, services.StatusAlive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, tt.env)
			rec := f.do(http.MethodGet, tt.path, "")
			require.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.expected, decode(t, rec)["status"])
		})
	}

	f := newFixture(t, testutil.Environment(config.MapSource{config.KeyAppVersion: "2.3.4"}))
	body := decode(t, f.do(http.MethodGet, "/api/version", ""))
	assert.Equal(t, "2.3.4", body["app_version"])
}

func TestMetricsEndpoints(t *testing.T) {
	f := newFixture(t, testutil.Environment(nil))

	rec := f.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = f.do(http.MethodGet, "/metrics/runtime", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestEtagMatches(t *testing.T) {
	assert.False(t, etagMatches("", `"a"`))
	assert.True(t, etagMatches(`"a"`, `"a"`))
	assert.True(t, etagMatches(` "b" , W/"a"`, `"a"`))
	assert.False(t, etagMatches(`"b"`, `"a"`))
}
