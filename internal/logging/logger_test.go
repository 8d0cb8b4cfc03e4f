package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("info"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
}

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: "info", Format: "json", Output: &buf})

	logger.Debug("hidden")
	logger.WithFields("locale", "fr").Info("bundle loaded", "rules", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "bundle loaded", entry["msg"])
	assert.Equal(t, "fr", entry["locale"])
	assert.Equal(t, float64(3), entry["rules"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNewLoggerText(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{Level: "debug", Output: &buf})

	logger.Debug("watching", "dir", "./rules")
	assert.Contains(t, buf.String(), "msg=watching")
	assert.Contains(t, buf.String(), "dir=./rules")
}

func TestNewLoggerWithProvider(t *testing.T) {
	provider := sdklog.NewLoggerProvider()
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	var buf bytes.Buffer
	logger := NewLogger(Config{Level: "info", Output: &buf, LoggerProvider: provider})

	_, ok := logger.Handler().(*multiHandler)
	require.True(t, ok, "expected multi handler when a provider is set")

	logger.WithGroup("engine").Info("ready", "name", "en")
	assert.Contains(t, buf.String(), "engine.name=en")
}

func TestContextLogger(t *testing.T) {
	assert.NotNil(t, FromContext(context.Background()))

	logger := NewLogger(Config{Output: &bytes.Buffer{}})
	ctx := WithLogger(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx))
}
