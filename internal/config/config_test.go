package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate pins the executable dir so Load does not depend on the test binary location
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("BPMS_PATHS_EXECUTABLE_DIR", t.TempDir())
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Security.AllowedOrigins)
	assert.True(t, cfg.Security.RateLimit.Enabled)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "console", cfg.Logging.Output)
	assert.False(t, cfg.Startup.StrictEnvironment)
	assert.Equal(t, []string{".env", ".env.local"}, cfg.Startup.DotEnvFiles)
	assert.Equal(t, "prometheus", cfg.Telemetry.MetricExporter)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("BPMS_SERVER_PORT", "8443")
	t.Setenv("BPMS_LOGGING_LEVEL", "debug")
	t.Setenv("BPMS_LOGGING_OUTPUT", "carrier-pigeon")
	t.Setenv("BPMS_STARTUP_STRICT_ENVIRONMENT", "true")
	t.Setenv("BPMS_STARTUP_DOTENV_FILES", ".env,.env.production")
	t.Setenv("BPMS_SECURITY_ALLOWED_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8443, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Output, "unknown outputs fall back to console")
	assert.True(t, cfg.Startup.StrictEnvironment)
	assert.Equal(t, []string{".env", ".env.production"}, cfg.Startup.DotEnvFiles)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.Security.AllowedOrigins)
}

func TestLoad_InvalidPort(t *testing.T) {
	isolate(t)
	t.Setenv("BPMS_SERVER_PORT", "70000")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid server port")
}

func TestLoad_UnparseableEnv(t *testing.T) {
	isolate(t)
	t.Setenv("BPMS_SERVER_PORT", "eighty")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config from env")
}

func TestLoad_FileMerge(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
  read_timeout: 5s
logging:
  level: warn
startup:
  strict_environment: true
  dotenv_files: [".env.staging"]
`), 0o600))
	t.Setenv("BPMS_CONFIG_FILE", path)
	t.Setenv("BPMS_LOGGING_LEVEL", "error")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "error", cfg.Logging.Level, "environment beats file")
	assert.True(t, cfg.Startup.StrictEnvironment)
	assert.Equal(t, []string{".env.staging"}, cfg.Startup.DotEnvFiles)
}

func TestLoad_MissingConfigFile(t *testing.T) {
	isolate(t)
	t.Setenv("BPMS_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config from file")
}

func TestConfig_ResolvedDirs(t *testing.T) {
	cfg := Default()
	cfg.Paths.ExecutableDir = filepath.FromSlash("/opt/bpms")

	assert.Equal(t, filepath.Join("/opt/bpms", "web"), cfg.GetWebDir())
	assert.Equal(t, filepath.Join("/opt/bpms", "logs"), cfg.GetLogsDir())

	abs := filepath.Join(t.TempDir(), "logs")
	cfg.Paths.LogsDir = abs
	assert.Equal(t, abs, cfg.GetLogsDir())
}

func TestDefault_Validates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.validate())
	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Logging.Format)
	assert.EqualValues(t, DefaultRateLimit, cfg.Security.RateLimit.RPS)
	assert.Equal(t, DefaultBurstSize, cfg.Security.RateLimit.Burst)
	assert.Equal(t, WebSocketPingPeriod, cfg.WebSocket.PingPeriod)
	assert.Equal(t, WebSocketPongWait, cfg.WebSocket.PongWait)

	cfg.Security.AllowedOrigins = nil
	assert.Error(t, cfg.validate())

	cfg.Security.EnableCORS = false
	assert.NoError(t, cfg.validate())
}

func TestPaths(t *testing.T) {
	dir := t.TempDir()
	p := pathsFrom(dir)

	assert.Equal(t, filepath.Join(dir, "logs"), p.LogsDir)
	assert.Equal(t, filepath.Join(dir, ".env.local"), p.LocalEnvFile)
	assert.False(t, FileExists(p.LogsDir))

	require.NoError(t, p.EnsureDirectories())
	assert.True(t, FileExists(p.LogsDir))
}
