package cliutil

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, slog.LevelInfo, "text")
		logger.Info("stage complete", "stage", "tags")
		assert.Contains(t, buf.String(), "msg=\"stage complete\"")
		assert.Contains(t, buf.String(), "stage=tags")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, slog.LevelInfo, "json")
		logger.Info("renamed tag", "from", "casdoor/controllers.ApiController", "to", "api")

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "renamed tag", entry["msg"])
		assert.Equal(t, "api", entry["to"])
	})

	t.Run("level filters", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf, slog.LevelWarn, "text")
		logger.Info("hidden")
		logger.Debug("hidden")
		assert.Empty(t, buf.String())
		logger.Warn("shown")
		assert.Contains(t, buf.String(), "shown")
	})
}
