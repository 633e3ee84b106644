package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LogLevelDebug.String())
	assert.Equal(t, "INFO", LogLevelInfo.String())
	assert.Equal(t, "WARN", LogLevelWarn.String())
	assert.Equal(t, "ERROR", LogLevelError.String())
	assert.Equal(t, "UNKNOWN", LogLevel(99).String())
}

func TestSlogLogger(t *testing.T) {
	t.Run("writes structured records", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewSlogLoggerTo(&buf, LogLevelInfo, "json")

		logger.Info("workflow completed", "workflow", "daily_analysis")

		out := buf.String()
		require.NotEmpty(t, out)
		assert.Contains(t, out, `"msg":"workflow completed"`)
		assert.Contains(t, out, `"workflow":"daily_analysis"`)
	})

	t.Run("filters below the configured level", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewSlogLoggerTo(&buf, LogLevelWarn, "text")

		logger.Info("hidden")
		assert.Empty(t, buf.String())

		logger.Warn("visible")
		assert.Contains(t, buf.String(), "visible")
	})
}

func TestNoOpLogger(t *testing.T) {
	// Must be callable without any setup.
	var l NoOpLogger
	l.Debug("a")
	l.Info("b", "k", "v")
	l.Warn("c")
	l.Error("d")
}
