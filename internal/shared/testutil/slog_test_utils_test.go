package testutil

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bpmsclient/internal/config"
)

func TestBufferedSlogHandler(t *testing.T) {
	t.Run("captures log records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.Info("test message", slog.String("key", "value"))
		logger.Error("error message", slog.Int("code", 500))

		assert.Equal(t, 2, handler.Count())
		assert.True(t, handler.ContainsMessage("test message"))
		assert.True(t, handler.ContainsAttr("key", "value"))
		assert.Len(t, handler.GetRecordsByLevel(slog.LevelError), 1)
	})

	t.Run("keeps With attributes and groups", func(t *testing.T) {
		logger, handler := NewTestLogger(t)

		logger.With("component", "hub").WithGroup("req").Info("served", "path", "/ws")

		records := handler.GetRecords()
		require.Len(t, records, 1)
		assert.Equal(t, "hub", records[0].Attrs["component"])
		assert.Equal(t, "/ws", records[0].Attrs["req.path"])
	})

	t.Run("derived loggers share records", func(t *testing.T) {
		logger, handler := NewTestLogger(t)
		logger.With("a", 1).Info("one")
		logger.Info("two")

		assert.Equal(t, 2, handler.Count())
		AssertLogContains(t, handler, slog.LevelInfo, "one")
		AssertNoErrors(t, handler)
	})
}

func TestInvalidEnvironment(t *testing.T) {
	env := InvalidEnvironment(config.KeyKeycloakRealm, config.KeyAPIBaseURL)

	assert.Equal(t, []config.Key{config.KeyAPIBaseURL, config.KeyKeycloakRealm}, env.Validate().Missing)
	assert.True(t, Environment(nil).Validate().OK())
}
