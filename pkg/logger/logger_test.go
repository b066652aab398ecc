package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "warn", FormatText)
	require.NoError(t, err)

	log.Info("booking id=%d created", 1)
	assert.Empty(t, buf.String())

	log.Warn("booking id=%d conflicts", 2)
	assert.Contains(t, buf.String(), "booking id=2 conflicts")
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log, err := NewWithWriter(&buf, "debug", FormatJSON)
	require.NoError(t, err)

	log.Debug("listing=%d nights=%d", 7, 3)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "DEBUG", entry["level"])
	assert.Equal(t, "listing=7 nights=3", entry["msg"])
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("WARNING")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, lvl)

	lvl, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, lvl)

	_, err = ParseLevel("verbose")
	assert.Error(t, err)
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")
	log, err := New(path, "info")
	require.NoError(t, err)

	log.Info("started")
	require.NoError(t, log.Close())
	require.NoError(t, log.Close())
	assert.FileExists(t, path)
}
