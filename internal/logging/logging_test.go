package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNew_JSONAndLevels(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, Options{Format: FormatJSON})
	require.NoError(t, err)
	log.Debug("hidden")
	log.Info("shown", zap.Int("n", 1))
	require.NoError(t, log.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, float64(1), entry["n"])
}

func TestNew_VerboseAndQuiet(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, Options{Verbose: true, Quiet: true})
	require.NoError(t, err)
	log.Debug("debug line")
	assert.Contains(t, buf.String(), "debug line")

	buf.Reset()
	log, err = New(&buf, Options{Quiet: true})
	require.NoError(t, err)
	log.Info("info line")
	log.Warn("warn line")
	assert.NotContains(t, buf.String(), "info line")
	assert.Contains(t, buf.String(), "warn line")
}

func TestNew_BadFormat(t *testing.T) {
	_, err := New(&bytes.Buffer{}, Options{Format: "xml"})
	assert.Error(t, err)
}
