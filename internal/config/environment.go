package config

import (
	"strconv"
	"strings"
	"time"
)

// Key names one recognized client environment variable, without the VITE_ prefix
type Key string

const (
	KeyAPIBaseURL                 Key = "API_BASE_URL"
	KeyWebSocketURL               Key = "WEBSOCKET_URL"
	KeyKeycloakURL                Key = "KEYCLOAK_URL"
	KeyKeycloakRealm              Key = "KEYCLOAK_REALM"
	KeyKeycloakClientID           Key = "KEYCLOAK_CLIENT_ID"
	KeyAppName                    Key = "APP_NAME"
	KeyAppVersion                 Key = "APP_VERSION"
	KeyAppEnvironment             Key = "APP_ENVIRONMENT"
	KeyEnableAnalytics            Key = "ENABLE_ANALYTICS"
	KeyEnableOfflineMode          Key = "ENABLE_OFFLINE_MODE"
	KeyEnableDebugMode            Key = "ENABLE_DEBUG_MODE"
	KeyMaxFileUploadSize          Key = "MAX_FILE_UPLOAD_SIZE"
	KeyWebSocketReconnectInterval Key = "WEBSOCKET_RECONNECT_INTERVAL"
	KeyAPITimeout                 Key = "API_TIMEOUT"
	KeyDefaultTheme               Key = "DEFAULT_THEME"
	KeyEnableDarkMode             Key = "ENABLE_DARK_MODE"
	KeyDefaultLanguage            Key = "DEFAULT_LANGUAGE"
)

// Default values applied when the source has no usable value
const (
	DefaultAPIBaseURL                 = "http://localhost:8080/api/v1"
	DefaultWebSocketURL               = "ws://localhost:8080/ws"
	DefaultKeycloakURL                = "http://localhost:8180/auth"
	DefaultKeycloakRealm              = "ai-bpms"
	DefaultKeycloakClientID           = "ai-bpms-client"
	DefaultAppName                    = "AI-BPMS Client"
	DefaultAppVersion                 = "1.0.0"
	DefaultAppEnvironment             = "development"
	DefaultMaxFileUploadSize    int64 = 10485760
	DefaultWebSocketReconnectMS       = 5000
	DefaultAPITimeoutMS               = 30000
	DefaultTheme                      = "light"
	DefaultLanguage                   = "en"
)

// Keys lists every recognized key in declaration order
var Keys = []Key{
	KeyAPIBaseURL,
	KeyWebSocketURL,
	KeyKeycloakURL,
	KeyKeycloakRealm,
	KeyKeycloakClientID,
	KeyAppName,
	KeyAppVersion,
	KeyAppEnvironment,
	KeyEnableAnalytics,
	KeyEnableOfflineMode,
	KeyEnableDebugMode,
	KeyMaxFileUploadSize,
	KeyWebSocketReconnectInterval,
	KeyAPITimeout,
	KeyDefaultTheme,
	KeyEnableDarkMode,
	KeyDefaultLanguage,
}

// RequiredKeys are checked by Validate, in this order
var RequiredKeys = []Key{
	KeyAPIBaseURL,
	KeyWebSocketURL,
	KeyKeycloakURL,
	KeyKeycloakRealm,
	KeyKeycloakClientID,
}

// Environment is the client configuration record. It is built once at startup by
// LoadEnvironment and handed to every consumer; nothing mutates it afterwards.
type Environment struct {
	APIBaseURL       string `json:"API_BASE_URL" validate:"required,url"`
	WebSocketURL     string `json:"WEBSOCKET_URL" validate:"required,url"`
	KeycloakURL      string `json:"KEYCLOAK_URL" validate:"required,url"`
	KeycloakRealm    string `json:"KEYCLOAK_REALM" validate:"required"`
	KeycloakClientID string `json:"KEYCLOAK_CLIENT_ID" validate:"required"`

	AppName        string `json:"APP_NAME"`
	AppVersion     string `json:"APP_VERSION"`
	AppEnvironment string `json:"APP_ENVIRONMENT" validate:"oneof=development staging production test"`

	EnableAnalytics   bool `json:"ENABLE_ANALYTICS"`
	EnableOfflineMode bool `json:"ENABLE_OFFLINE_MODE"`
	EnableDebugMode   bool `json:"ENABLE_DEBUG_MODE"`

	MaxFileUploadSize          int64 `json:"MAX_FILE_UPLOAD_SIZE" validate:"gt=0"`
	WebSocketReconnectInterval int   `json:"WEBSOCKET_RECONNECT_INTERVAL" validate:"gt=0"`
	APITimeout                 int   `json:"API_TIMEOUT" validate:"gt=0"`

	DefaultTheme    string `json:"DEFAULT_THEME" validate:"oneof=light dark system"`
	EnableDarkMode  bool   `json:"ENABLE_DARK_MODE"`
	DefaultLanguage string `json:"DEFAULT_LANGUAGE" validate:"bcp47_language_tag"`
}

// LoadReport describes where each value of a loaded Environment came from
type LoadReport struct {
	// FromSource lists the keys whose value was taken from the source
	FromSource []Key
	// Defaulted lists the keys that fell back to their default
	Defaulted []Key
	// Rejected holds non-empty numeric overrides that did not parse
	Rejected map[Key]string
}

// LoadEnvironment builds an Environment from src. Absent or empty values take their
// default, flags are true only for the exact string "true", and numbers that do not
// parse fall back to their default. It never fails.
func LoadEnvironment(src Source) Environment {
	env, _ := LoadEnvironmentWithReport(src)
	return env
}

// LoadEnvironmentWithReport is LoadEnvironment plus a record of which keys were
// overridden by the source.
func LoadEnvironmentWithReport(src Source) (Environment, LoadReport) {
	if src == nil {
		src = MapSource{}
	}
	l := &loader{src: src, report: LoadReport{Rejected: map[Key]string{}}}

	env := Environment{
		APIBaseURL:       l.str(KeyAPIBaseURL, DefaultAPIBaseURL),
		WebSocketURL:     l.str(KeyWebSocketURL, DefaultWebSocketURL),
		KeycloakURL:      l.str(KeyKeycloakURL, DefaultKeycloakURL),
		KeycloakRealm:    l.str(KeyKeycloakRealm, DefaultKeycloakRealm),
		KeycloakClientID: l.str(KeyKeycloakClientID, DefaultKeycloakClientID),
		AppName:          l.str(KeyAppName, DefaultAppName),
		AppVersion:       l.str(KeyAppVersion, DefaultAppVersion),
		AppEnvironment:   l.str(KeyAppEnvironment, DefaultAppEnvironment),

		EnableAnalytics:   l.flag(KeyEnableAnalytics),
		EnableOfflineMode: l.flag(KeyEnableOfflineMode),
		EnableDebugMode:   l.flag(KeyEnableDebugMode),

		MaxFileUploadSize:          l.int64(KeyMaxFileUploadSize, DefaultMaxFileUploadSize),
		WebSocketReconnectInterval: int(l.int64(KeyWebSocketReconnectInterval, DefaultWebSocketReconnectMS)),
		APITimeout:                 int(l.int64(KeyAPITimeout, DefaultAPITimeoutMS)),

		DefaultTheme:    l.str(KeyDefaultTheme, DefaultTheme),
		EnableDarkMode:  l.flag(KeyEnableDarkMode),
		DefaultLanguage: l.str(KeyDefaultLanguage, DefaultLanguage),
	}

	return env, l.report
}

type loader struct {
	src    Source
	report LoadReport
}

func (l *loader) lookup(key Key) string {
	v, ok := l.src.Lookup(key)
	if !ok || v == "" {
		l.report.Defaulted = append(l.report.Defaulted, key)
		return ""
	}
	l.report.FromSource = append(l.report.FromSource, key)
	return v
}

func (l *loader) str(key Key, def string) string {
	if v := l.lookup(key); v != "" {
		return v
	}
	return def
}

func (l *loader) flag(key Key) bool {
	return l.lookup(key) == "true"
}

// int64 parses a base-10 integer, ignoring surrounding whitespace. Anything else
// keeps the default and is recorded in the report.
func (l *loader) int64(key Key, def int64) int64 {
	v := l.lookup(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		l.report.Rejected[key] = v
		return def
	}
	return n
}

// IsDevelopment reports whether the client runs in the development environment
func (e Environment) IsDevelopment() bool {
	return e.AppEnvironment == "development"
}

// IsProduction reports whether the client runs in the production environment
func (e Environment) IsProduction() bool {
	return e.AppEnvironment == "production"
}

// APITimeoutDuration returns API_TIMEOUT as a duration
func (e Environment) APITimeoutDuration() time.Duration {
	return time.Duration(e.APITimeout) * time.Millisecond
}

// ReconnectIntervalDuration returns WEBSOCKET_RECONNECT_INTERVAL as a duration
func (e Environment) ReconnectIntervalDuration() time.Duration {
	return time.Duration(e.WebSocketReconnectInterval) * time.Millisecond
}

// Value returns the string form of the field behind key
func (e Environment) Value(key Key) string {
	switch key {
	case KeyAPIBaseURL:
		return e.APIBaseURL
	case KeyWebSocketURL:
		return e.WebSocketURL
	case KeyKeycloakURL:
		return e.KeycloakURL
	case KeyKeycloakRealm:
		return e.KeycloakRealm
	case KeyKeycloakClientID:
		return e.KeycloakClientID
	case KeyAppName:
		return e.AppName
	case KeyAppVersion:
		return e.AppVersion
	case KeyAppEnvironment:
		return e.AppEnvironment
	case KeyEnableAnalytics:
		return strconv.FormatBool(e.EnableAnalytics)
	case KeyEnableOfflineMode:
		return strconv.FormatBool(e.EnableOfflineMode)
	case KeyEnableDebugMode:
		return strconv.FormatBool(e.EnableDebugMode)
	case KeyMaxFileUploadSize:
		return strconv.FormatInt(e.MaxFileUploadSize, 10)
	case KeyWebSocketReconnectInterval:
		return strconv.Itoa(e.WebSocketReconnectInterval)
	case KeyAPITimeout:
		return strconv.Itoa(e.APITimeout)
	case KeyDefaultTheme:
		return e.DefaultTheme
	case KeyEnableDarkMode:
		return strconv.FormatBool(e.EnableDarkMode)
	case KeyDefaultLanguage:
		return e.DefaultLanguage
	}
	return ""
}
