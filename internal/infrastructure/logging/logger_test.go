package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewRejectsStdout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.OutputPaths = []string{"stdout"}

	_, err := New(cfg)
	require.ErrorIs(t, err, ErrStdoutSink)
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diag.log")
	cfg := DefaultConfig()
	cfg.OutputPaths = []string{path}

	logger, err := New(cfg)
	require.NoError(t, err)
	logger.Info("to file")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestNewInvalidLevel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Level = "loud"

	_, err := New(cfg)
	assert.Error(t, err)
}

func TestNewWithWriterConsole(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(DefaultConfig(), &buf)
	require.NoError(t, err)

	logger.Named("sender").Info("Producer: sent item", zap.Uint32("item", 3))

	out := buf.String()
	assert.Contains(t, out, "INFO")
	assert.Contains(t, out, "sender")
	assert.Contains(t, out, "Producer: sent item")
	assert.Contains(t, out, `"item": 3`)
}

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(Config{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)

	logger.With(zap.String("run", "run_x")).Debug("hello")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "run_x", entry["run"])
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(Config{Level: "warn"}, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewNop(t *testing.T) {
	logger := NewNop()
	assert.NotPanics(t, func() { logger.Info("nothing") })
}
