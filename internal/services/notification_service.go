package services

import (
	"context"
	"log/slog"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	apierrors "bpmsclient/internal/errors"
	"bpmsclient/internal/infrastructure"
	api "bpmsclient/pkg/contracts/api/v1"
	"bpmsclient/pkg/contracts/domain"
)

// Notifier delivers a notification to connected browsers and reports how many
// connections received it
type Notifier interface {
	Notify(msg domain.NotificationMessage) int
}

// NotificationService validates notifications and hands them to a Notifier
type NotificationService struct {
	notifier Notifier
	validate *validator.Validate
	metrics  *infrastructure.ShellMetrics
	logger   *slog.Logger
	now      func() time.Time
}

// NewNotificationService creates a notification service. A nil metrics records nothing.
func NewNotificationService(notifier Notifier, metrics *infrastructure.ShellMetrics, logger *slog.Logger) *NotificationService {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics, _ = infrastructure.NewShellMetrics(nil)
	}

	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &NotificationService{
		notifier: notifier,
		validate: v,
		metrics:  metrics,
		logger:   infrastructure.WithComponent(logger, "notification_service"),
		now:      time.Now,
	}
}

// Publish turns an API request into a notification and delivers it
func (s *NotificationService) Publish(ctx context.Context, req api.NotificationRequest) (api.NotificationAccepted, error) {
	msg := domain.NotificationMessage{
		Type:    req.Type,
		Title:   req.Title,
		Message: req.Message,
		UserID:  req.UserID,
	}

	msg, recipients, err := s.Deliver(ctx, msg)
	if err != nil {
		return api.NotificationAccepted{}, err
	}
	return api.NotificationAccepted{ID: msg.ID, Recipients: recipients}, nil
}

// Deliver fills in a missing id and timestamp, validates msg and sends it. Invalid
// messages yield an *apierrors.APIError and are not sent.
func (s *NotificationService) Deliver(ctx context.Context, msg domain.NotificationMessage) (domain.NotificationMessage, int, error) {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = s.now().UTC()
	}
	msg.Read = false

	if err := s.validate.Struct(msg); err != nil {
		return msg, 0, apierrors.FromValidator(err)
	}

	recipients := 0
	if s.notifier != nil {
		recipients = s.notifier.Notify(msg)
	}

	s.metrics.Inc(ctx, s.metrics.NotificationsSent,
		attribute.String("type", string(msg.Type)),
		attribute.Bool("broadcast", msg.Broadcast()))
	s.logger.InfoContext(ctx, "notification delivered",
		slog.String("notification_id", msg.ID),
		slog.String("type", string(msg.Type)),
		slog.String("user_id", msg.UserID),
		slog.Int("recipients", recipients))

	return msg, recipients, nil
}
