package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/skillcoder/platform-restarter/internal/infra/logging"
)

//nolint:paralleltest // replaces the slog default logger
func TestNew(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	t.Run("json at warn level", func(t *testing.T) {
		var buf bytes.Buffer

		logger := logging.New(&buf, "json", "warn")
		logger.Info("dropped")
		logger.Warn("kept", "reason", "boom")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		require.Equal(t, "kept", entry["msg"])
		require.Equal(t, "boom", entry["reason"])
		require.Same(t, logger, slog.Default())
	})

	t.Run("text with unknown level falls back to info", func(t *testing.T) {
		var buf bytes.Buffer

		logger := logging.New(&buf, "text", "verbose")
		require.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
		require.True(t, logger.Enabled(context.Background(), slog.LevelInfo))

		logger.Info("hello")
		require.Contains(t, buf.String(), "msg=hello")
	})
}
