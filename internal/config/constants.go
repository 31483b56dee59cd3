package config

import "time"

// Application constants for the shell server
const (
	// Application Info
	ServiceName    = "bpms-client-shell"
	ServiceVersion = "1.0.0"

	// Network Timeouts
	DefaultHTTPTimeout  = 30 * time.Second
	WebSocketPingPeriod = 30 * time.Second
	WebSocketPongWait   = 60 * time.Second

	// Rate Limiting
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Request limits
	MaxJSONBodySize = 1 << 20

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// Endpoints
	APIBasePath        = "/api"
	ConfigEndpoint     = "/api/config"
	HealthEndpoint     = "/api/health"
	MetricsEndpoint    = "/metrics"
	WebSocketEndpoint  = "/ws"
	StaticAssetsPrefix = "/static"
)
