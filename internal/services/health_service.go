package services

import (
	"context"
	"log/slog"
	"time"

	"bpmsclient/internal/config"
	"bpmsclient/internal/infrastructure"
	"bpmsclient/pkg/contracts"
)

// Health states
const (
	StatusOK       = "ok"
	StatusReady    = "ready"
	StatusNotReady = "not_ready"
	StatusAlive    = "alive"
	StatusDisabled = "disabled"
)

// ConnectionCounter reports open realtime connections
type ConnectionCounter interface {
	ClientCount() int
}

// BridgeStatus reports whether the notification bridge is connected
type BridgeStatus interface {
	Connected() bool
}

// HealthService provides health check functionality
type HealthService struct {
	env        config.Environment
	validation config.Validation
	hub        ConnectionCounter
	bridge     BridgeStatus
	collector  *infrastructure.RuntimeCollector
	startTime  time.Time
	logger     *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                       `json:"status"`
	Timestamp time.Time                    `json:"timestamp"`
	Version   string                       `json:"version"`
	Runtime   *infrastructure.RuntimeStats `json:"runtime,omitempty"`
	Services  map[string]ServiceHealth     `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string   `json:"status"`
	Message string   `json:"message,omitempty"`
	Missing []string `json:"missing,omitempty"`
	Clients *int     `json:"clients,omitempty"`
}

// HealthDeps are the optional collaborators of HealthService
type HealthDeps struct {
	Hub       ConnectionCounter
	Bridge    BridgeStatus
	Collector *infrastructure.RuntimeCollector
}

// NewHealthService creates a health service for env. The validation result is taken
// once; env never changes after startup.
func NewHealthService(env config.Environment, deps HealthDeps, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	startTime := time.Now()
	if deps.Collector != nil {
		startTime = deps.Collector.StartTime()
	}

	return &HealthService{
		env:        env,
		validation: env.Validate(),
		hub:        deps.Hub,
		bridge:     deps.Bridge,
		collector:  deps.Collector,
		startTime:  startTime,
		logger:     infrastructure.WithComponent(logger, "health_service"),
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    StatusOK,
		Timestamp: time.Now(),
		Version:   contracts.Version,
	}
}

// ReadinessCheck is ready iff the client environment is valid. Realtime components
// are reported but never block readiness.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    StatusReady,
		Timestamp: time.Now(),
		Version:   contracts.Version,
		Services: map[string]ServiceHealth{
			"environment":   hs.checkEnvironment(),
			"websocket":     hs.checkWebSocket(),
			"notifications": hs.checkBridge(),
		},
	}

	if !hs.validation.OK() {
		status.Status = StatusNotReady
		hs.logger.WarnContext(ctx, "readiness check failed",
			slog.Any("missing", hs.validation.Missing))
	}
	return status
}

// LivenessCheck returns liveness status with a runtime sample
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	var stats infrastructure.RuntimeStats
	if hs.collector != nil {
		stats = hs.collector.Latest()
	} else {
		stats = infrastructure.ReadRuntimeStats(hs.startTime)
	}

	return HealthStatus{
		Status:    StatusAlive,
		Timestamp: time.Now(),
		Version:   contracts.Version,
		Runtime:   &stats,
	}
}

// Version returns version information for the server and the client bundle
func (hs *HealthService) Version() contracts.VersionInfo {
	info := contracts.GetVersionInfo()
	info.AppVersion = hs.env.AppVersion
	return info
}

func (hs *HealthService) checkEnvironment() ServiceHealth {
	if hs.validation.OK() {
		return ServiceHealth{Status: StatusReady, Message: "client environment is valid"}
	}
	return ServiceHealth{
		Status:  StatusNotReady,
		Message: hs.validation.Err().Error(),
		Missing: keyNames(hs.validation.Missing),
	}
}

func (hs *HealthService) checkWebSocket() ServiceHealth {
	if hs.hub == nil {
		return ServiceHealth{Status: StatusDisabled}
	}
	clients := hs.hub.ClientCount()
	return ServiceHealth{Status: StatusReady, Clients: &clients}
}

func (hs *HealthService) checkBridge() ServiceHealth {
	switch {
	case hs.bridge == nil:
		return ServiceHealth{Status: StatusDisabled}
	case hs.bridge.Connected():
		return ServiceHealth{Status: StatusReady, Message: "NATS bridge connected"}
	default:
		return ServiceHealth{Status: StatusNotReady, Message: "NATS bridge disconnected"}
	}
}

func keyNames(keys []config.Key) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = string(k)
	}
	return out
}
