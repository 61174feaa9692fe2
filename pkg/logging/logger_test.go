package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dglai-harvest/pkg/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, parseLevel(" warn "))
	assert.Equal(t, slog.LevelError, parseLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLevel("verbose"))
}

func TestJSONLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(&buf, config.LogConfig{Level: "warn", Format: "json"})

	logger.Info("hidden")
	logger.Warn("batch sealed", slog.String("batch", "1-9"))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "batch sealed", record["msg"])
	assert.Equal(t, "1-9", record["batch"])
}

func TestTextLogger(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, config.LogConfig{Format: "text"}).Info("hello", slog.Int("n", 3))
	assert.Contains(t, buf.String(), "msg=hello n=3")
}
