package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"

	"bpmsclient/internal/config"
	apierrors "bpmsclient/internal/errors"
	"bpmsclient/internal/infrastructure"
	customMiddleware "bpmsclient/internal/middleware"
	"bpmsclient/internal/services"
	handlers "bpmsclient/internal/transport/http"
	"bpmsclient/internal/ui"
	ws "bpmsclient/internal/websocket"
	"bpmsclient/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config        *config.Config
	Environment   config.Environment
	Router        *chi.Mux
	Server        *http.Server
	Logger        *slog.Logger
	OTelProviders *infrastructure.OTelProviders
	Metrics       *infrastructure.ShellMetrics
	Collector     *infrastructure.RuntimeCollector
	WebSocketHub  *ws.Hub
	Bridge        *ws.NATSBridge
	Services      *ServiceContainer

	errors    *apierrors.ErrorHandler
	renderer  *ui.Renderer
	validator *customMiddleware.Validator
	cancel    context.CancelFunc
}

// ServiceContainer holds all application services
type ServiceContainer struct {
	Shell         *services.ShellService
	Notifications *services.NotificationService
	Health        *services.HealthService
}

// Options override how New resolves its collaborators. The zero value loads the
// client environment from the process and the configured dotenv files.
type Options struct {
	// Source replaces the default process + dotenv source
	Source config.Source
	// Environment, when set, is used as is and Source is ignored
	Environment *config.Environment
	// Logger replaces the logger built from the logging config
	Logger *slog.Logger
	// Registry receives the Prometheus collector instead of the default registerer
	Registry *prometheus.Registry
}

// NewApplication loads the server configuration and creates the application
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if paths, err := config.GetPaths(); err == nil {
		paths.LogPathResolution(logger)
	}

	return New(cfg, Options{Logger: logger})
}

// New creates an application from cfg with dependency injection
func New(cfg *config.Config, opts Options) (*Application, error) {
	logger := opts.Logger
	if logger == nil {
		logger = infrastructure.GetLogger()
	}

	logger.Info("Application starting",
		slog.String("service", config.ServiceName),
		slog.String("version", contracts.Version),
		slog.String("build", contracts.GetFullVersionString()),
		slog.Int("port", cfg.Server.Port))

	env, err := loadEnvironment(cfg, opts, logger)
	if err != nil {
		return nil, err
	}

	otelCfg := infrastructure.NewOTelConfig(cfg.Telemetry, env.AppEnvironment)
	otelCfg.Registry = opts.Registry
	otelProviders, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.NewShellMetrics(otelProviders.Meter)
	if err != nil {
		return nil, err
	}
	collector, err := infrastructure.NewRuntimeCollector(otelProviders.Meter, 0)
	if err != nil {
		return nil, err
	}

	renderer, err := ui.NewRenderer()
	if err != nil {
		return nil, err
	}

	app := &Application{
		Config:        cfg,
		Environment:   env,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		Collector:     collector,
		errors:        apierrors.NewErrorHandler(logger, env.EnableDebugMode && !env.IsProduction()),
		renderer:      renderer,
		validator:     customMiddleware.NewValidator(logger, config.MaxJSONBodySize),
	}

	if err := app.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	app.setupRouter()
	app.createServer()

	return app, nil
}

// loadEnvironment resolves the client environment and applies the startup gate.
// Missing required keys abort startup only in strict mode.
func loadEnvironment(cfg *config.Config, opts Options, logger *slog.Logger) (config.Environment, error) {
	var env config.Environment
	if opts.Environment != nil {
		env = *opts.Environment
	} else {
		src := opts.Source
		if src == nil {
			files := make([]string, len(cfg.Startup.DotEnvFiles))
			for i, f := range cfg.Startup.DotEnvFiles {
				files[i] = resolveAgainst(cfg.Paths.ExecutableDir, f)
			}
			var err error
			if src, err = config.DefaultSource(files...); err != nil {
				return env, fmt.Errorf("failed to read client environment: %w", err)
			}
		}

		var report config.LoadReport
		env, report = config.LoadEnvironmentWithReport(src)
		logger.Info("Client environment loaded",
			slog.String("environment", env.AppEnvironment),
			slog.Int("overridden", len(report.FromSource)),
			slog.Int("defaulted", len(report.Defaulted)))
		for key, value := range report.Rejected {
			logger.Warn("Ignoring unparsable client setting",
				slog.String("key", string(key)),
				slog.String("value", value))
		}
	}

	for _, w := range env.Warnings() {
		logger.Warn("Client setting looks malformed",
			slog.String("key", string(w.Key)),
			slog.String("value", w.Value),
			slog.String("problem", w.Message))
	}

	if err := env.Validate().Err(); err != nil {
		if cfg.Startup.StrictEnvironment {
			return env, fmt.Errorf("client environment rejected: %w", err)
		}
		logger.Error("Client environment is incomplete; serving anyway",
			slog.String("error", err.Error()))
	}
	return env, nil
}

func resolveAgainst(dir, p string) string {
	if dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// initializeServices initializes all application services
func (a *Application) initializeServices() error {
	shell, err := services.NewShellService(a.Environment, a.Metrics, a.Logger)
	if err != nil {
		return fmt.Errorf("failed to initialize shell service: %w", err)
	}

	hub := ws.NewHub(a.Metrics, a.Logger)
	hub.Start()
	a.WebSocketHub = hub

	notifications := services.NewNotificationService(hub, a.Metrics, a.Logger)

	deps := services.HealthDeps{Hub: hub, Collector: a.Collector}
	if url := a.Config.Notify.NATSURL; url != "" {
		bridge, err := ws.NewNATSBridge(url, a.Config.Notify.Subject, notifications, a.Logger)
		if err == nil {
			err = bridge.Subscribe()
			if err != nil {
				bridge.Close()
			}
		}
		if err != nil {
			a.Logger.Error("NATS bridge unavailable; notifications only via HTTP",
				slog.String("url", url),
				slog.String("error", err.Error()))
		} else {
			a.Bridge = bridge
			deps.Bridge = bridge
		}
	}

	a.Services = &ServiceContainer{
		Shell:         shell,
		Notifications: notifications,
		Health:        services.NewHealthService(a.Environment, deps, a.Logger),
	}
	return nil
}

// setupRouter configures the HTTP router with all routes
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(customMiddleware.RealIP)
	r.NotFound(a.errors.NotFound)
	r.MethodNotAllowed(a.errors.MethodNotAllowed)

	// the socket stays outside the group; its writer must not be wrapped
	r.Handle(config.WebSocketEndpoint, ws.NewHandler(a.WebSocketHub, a.Config.WebSocket, a.Config.Security.AllowedOrigins, a.errors, a.Logger))

	r.Group(func(r chi.Router) {
		// RequestID → RealIP → OTel → Logger → Recoverer → Timeout
		r.Use(customMiddleware.NewTelemetry(a.OTelProviders.Tracer, a.Metrics, a.Logger).Handler)
		r.Use(customMiddleware.StructuredLogger(a.Logger))
		r.Use(customMiddleware.Recoverer(a.errors))
		r.Use(customMiddleware.SecurityHeaders(a.Environment.APIBaseURL, a.Environment.WebSocketURL, a.Environment.KeycloakURL))

		if a.Config.Security.EnableCORS {
			r.Use(customMiddleware.CORS(customMiddleware.CORSConfig{
				AllowedOrigins: a.Config.Security.AllowedOrigins,
				Logger:         a.Logger,
			}))
		}
		if rl := a.Config.Security.RateLimit; rl.Enabled {
			r.Use(customMiddleware.NewRateLimiter(rl.RPS, rl.Burst, a.Logger, a.errors).Handler)
		}

		r.Use(customMiddleware.Timeout(config.DefaultHTTPTimeout))
		r.Use(customMiddleware.Compress(5))

		a.setupHTMLRoutes(r)
		a.setupStaticRoutes(r)
		a.setupAPIRoutes(r)
	})

	r.Mount(config.MetricsEndpoint, handlers.NewMetricsHandler(a.OTelProviders.PrometheusHTTP, a.Collector).Routes())

	a.Router = r
}

func (a *Application) setupHTMLRoutes(r chi.Router) {
	pages := handlers.NewPageHandler(a.Services.Shell, a.renderer, a.errors, a.Logger)
	r.Get("/", pages.Home)
	r.Head("/", pages.Home)
}

// setupStaticRoutes serves optional asset overrides from <web>/static
func (a *Application) setupStaticRoutes(r chi.Router) {
	dir := filepath.Join(a.Config.GetWebDir(), "static")
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		a.Logger.Debug("No static asset directory", slog.String("path", dir))
		return
	}
	fs := http.StripPrefix(config.StaticAssetsPrefix, http.FileServer(http.Dir(dir)))
	r.Handle(config.StaticAssetsPrefix+"/*", fs)
	a.Logger.Info("Serving static assets", slog.String("path", dir))
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	cfg := handlers.NewConfigHandler(a.Services.Shell, a.validator, a.errors, a.Logger)
	logs := handlers.NewClientLogHandler(a.validator, a.errors, a.Metrics, a.Logger)
	notifications := handlers.NewNotificationHandler(a.Services.Notifications, a.validator, a.errors, a.Logger)
	health := handlers.NewHealthHandler(a.Services.Health, a.Logger)

	r.Route(config.APIBasePath, func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Route(apiPath(config.ConfigEndpoint), func(r chi.Router) {
			r.Get("/", cfg.GetConfig)
			r.Get("/validation", cfg.GetValidation)
		})

		r.Route(apiPath(config.HealthEndpoint), func(r chi.Router) {
			r.Get("/", health.HealthCheck)
			r.Get("/ready", health.ReadinessCheck)
			r.Get("/live", health.LivenessCheck)
		})
		r.Get("/version", health.Version)

		r.Group(func(r chi.Router) {
			r.Use(customMiddleware.MaxBodySize(config.MaxJSONBodySize))
			r.Use(customMiddleware.ContentTypeValidator(a.errors, "application/json"))

			r.Post("/files/check", cfg.CheckFile)
			r.Post("/logs", logs.Handle)
			r.Post("/notifications", notifications.Publish)
		})
	})
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           fmt.Sprintf(":%d", a.Config.Server.Port),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
	}
}

// Start starts the background collectors
func (a *Application) Start(ctx context.Context) {
	ctx, a.cancel = context.WithCancel(ctx)
	go a.Collector.Start(ctx)

	a.Logger.InfoContext(ctx, "Application started",
		slog.String("address", fmt.Sprintf("http://localhost:%d", a.Config.Server.Port)),
		slog.String("environment", a.Environment.AppEnvironment),
		slog.String("allowed_origins", originsSummary(a.Config.Security.AllowedOrigins)),
		slog.Bool("notifications_bridge", a.Bridge != nil))
}

// Serve listens until the server is shut down. A clean shutdown returns nil.
func (a *Application) Serve() error {
	if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	a.Logger.InfoContext(ctx, "Shutting down application")

	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
	}

	if a.cancel != nil {
		a.cancel()
	}
	a.Collector.Stop()
	a.Bridge.Close()
	a.WebSocketHub.Stop()

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.ErrorContext(ctx, "Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.InfoContext(ctx, "Application shutdown complete")
	return errors.Join(errs...)
}

// apiPath returns endpoint relative to the /api mount
func apiPath(endpoint string) string {
	return strings.TrimPrefix(endpoint, config.APIBasePath)
}

// originsSummary is used in startup logs
func originsSummary(origins []string) string {
	if len(origins) == 0 {
		return "none"
	}
	return strings.Join(origins, ", ")
}
