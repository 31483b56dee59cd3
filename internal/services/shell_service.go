package services

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/crypto/blake2b"

	"bpmsclient/internal/config"
	"bpmsclient/internal/infrastructure"
	"bpmsclient/internal/ui"
	api "bpmsclient/pkg/contracts/api/v1"
	"bpmsclient/pkg/contracts/domain"
)

// statPlaceholder is shown for a quick stat without a data source
const statPlaceholder = "--"

// ShellService serves the client environment to the page and API handlers
type ShellService struct {
	env        config.Environment
	validation config.Validation
	warnings   []config.Warning

	configJSON []byte
	configETag string

	metrics *infrastructure.ShellMetrics
	debug   *infrastructure.DebugLogger
	logger  *slog.Logger
}

// NewShellService precomputes the public configuration document and its ETag
func NewShellService(env config.Environment, metrics *infrastructure.ShellMetrics, logger *slog.Logger) (*ShellService, error) {
	if logger == nil {
		logger = slog.Default()
	}

	if metrics == nil {
		var err error
		if metrics, err = infrastructure.NewShellMetrics(nil); err != nil {
			return nil, err
		}
	}

	body, err := json.Marshal(domain.OK(env))
	if err != nil {
		return nil, fmt.Errorf("failed to encode public configuration: %w", err)
	}

	return &ShellService{
		env:        env,
		validation: env.Validate(),
		warnings:   env.Warnings(),
		configJSON: body,
		configETag: ETag(body),
		metrics:    metrics,
		debug:      infrastructure.NewDebugLogger(env, logger),
		logger:     infrastructure.WithComponent(logger, "shell_service"),
	}, nil
}

// ETag is the strong entity tag of body: the quoted hex BLAKE2b-256 digest
func ETag(body []byte) string {
	sum := blake2b.Sum256(body)
	return `"` + hex.EncodeToString(sum[:]) + `"`
}

// Environment returns the loaded client environment
func (s *ShellService) Environment() config.Environment {
	return s.env
}

// PublicConfig returns the APIResponse-wrapped environment document and its ETag.
// The slice is shared; callers must not modify it.
func (s *ShellService) PublicConfig(ctx context.Context) ([]byte, string) {
	s.metrics.Inc(ctx, s.metrics.ConfigFetches)
	return s.configJSON, s.configETag
}

// Validation reports missing required keys and format warnings
func (s *ShellService) Validation(ctx context.Context) api.ValidationResponse {
	resp := api.ValidationResponse{
		Valid:    s.validation.OK(),
		Missing:  keyNames(s.validation.Missing),
		Warnings: make([]string, 0, len(s.warnings)),
	}
	for _, w := range s.warnings {
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("%s %s", w.Key, w.Message))
	}

	if !resp.Valid {
		s.metrics.Inc(ctx, s.metrics.ValidationFailures)
	}
	return resp
}

// ValidationErr is the validation outcome as an error, nil when valid
func (s *ShellService) ValidationErr() error {
	return s.validation.Err()
}

// CheckFile reports whether a file of req.Size bytes may be uploaded
func (s *ShellService) CheckFile(ctx context.Context, req api.FileCheckRequest) api.FileCheckResponse {
	valid := s.env.IsValidFileSize(req.Size)

	s.metrics.Inc(ctx, s.metrics.FileChecks, attribute.Bool("valid", valid))
	s.debug.Log(ctx, "file size check", map[string]any{
		"name":  req.Name,
		"size":  req.Size,
		"valid": valid,
	})

	return api.FileCheckResponse{
		Name:             req.Name,
		Valid:            valid,
		Size:             req.Size,
		FormattedSize:    config.FormatFileSize(req.Size),
		MaxSize:          s.env.MaxFileUploadSize,
		FormattedMaxSize: config.FormatFileSize(s.env.MaxFileUploadSize),
	}
}

// HomePage builds the landing page view model. stats may be nil; figures without data
// render as placeholders.
func (s *ShellService) HomePage(ctx context.Context, stats *domain.QuickStats) ui.HomePage {
	s.metrics.Inc(ctx, s.metrics.PageRenders)
	s.debug.Log(ctx, "rendering home page", nil)

	if stats == nil {
		stats = &domain.QuickStats{}
	}

	return ui.HomePage{
		Lang:        s.env.DefaultLanguage,
		Theme:       ThemeFor(s.env),
		AppName:     s.env.AppName,
		AppVersion:  s.env.AppVersion,
		Environment: s.env.AppEnvironment,
		HeaderActions: []ui.Button{
			{Label: "Settings", Variant: ui.ButtonOutline, Size: ui.SizeSM},
			{Label: "Get Started", Variant: ui.ButtonPrimary, Size: ui.SizeSM},
		},
		Header: ui.PageHeader{
			Title:    "Welcome to " + s.env.AppName,
			Subtitle: "Business Process Management System powered by AI",
		},
		FeatureCard: ui.Card{},
		Features: []ui.Feature{
			feature("Process Designer", "Create and design business processes with our visual workflow builder.", "Open Designer"),
			feature("Task Management", "Manage and execute tasks assigned to you or your team.", "View Tasks"),
			feature("Analytics Dashboard", "Monitor process performance and analyze business metrics.", "View Analytics"),
		},
		StatsCard:  ui.Card{},
		StatsTitle: ui.CardTitle{Text: "System Status"},
		Stats: []ui.Stat{
			{Label: "Active Processes", Value: statValue(stats.ActiveProcesses), Class: "text-primary-600"},
			{Label: "Completed Today", Value: statValue(stats.CompletedToday), Class: "text-success-600"},
			{Label: "Pending Tasks", Value: statValue(stats.PendingTasks), Class: "text-warning-600"},
			{Label: "Active Users", Value: statValue(stats.ActiveUsers), Class: "text-secondary-600"},
		},
		Missing: keyNames(s.validation.Missing),
		// encoding/json escapes <, > and & so the document is safe inside <script>
		ConfigJSON: template.JS(s.configJSON),
	}
}

func feature(title, description, action string) ui.Feature {
	return ui.Feature{
		Title:       ui.CardTitle{Text: title},
		Description: description,
		Action:      ui.Button{Label: action, Variant: ui.ButtonPrimary, Size: ui.SizeSM, FullWidth: true},
	}
}

func statValue(v *int) string {
	if v == nil {
		return statPlaceholder
	}
	return fmt.Sprintf("%d", *v)
}

// ThemeFor resolves the page theme. "dark" needs ENABLE_DARK_MODE and degrades to
// "light" without it; unknown themes are "light".
func ThemeFor(env config.Environment) string {
	switch env.DefaultTheme {
	case "dark":
		if env.EnableDarkMode {
			return "dark"
		}
		return "light"
	case "system":
		return "system"
	default:
		return "light"
	}
}
