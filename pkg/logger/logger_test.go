package logger

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_FormatsMessage(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf)

	log.Info("Submit: venue=%s date=%s", "main-hall", "2026-01-05")

	assert.Contains(t, buf.String(), `"level":"info"`)
	assert.Contains(t, buf.String(), "Submit: venue=main-hall date=2026-01-05")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("", "verbose")
	assert.Error(t, err)
}

func TestNew_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	log, err := New(path, "warn")
	require.NoError(t, err)
	log.Info("skipped")
	log.Warn("kept %d", 1)
	require.NoError(t, log.Close())

	assert.FileExists(t, path)
}
