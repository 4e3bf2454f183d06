package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogrusAdapter(t *testing.T) {
	var buf bytes.Buffer
	l, err := newLogger(&buf, "debug", "json")
	require.NoError(t, err)

	log := NewLogrusAdapter(l).With("source", "test.json")
	log.Debug("resolved pointer", "pointer", "#/info", "cached", true)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "debug", entry["level"])
	assert.Equal(t, "resolved pointer", entry["msg"])
	assert.Equal(t, "test.json", entry["source"])
	assert.Equal(t, "#/info", entry["pointer"])
	assert.Equal(t, true, entry["cached"])
}

func TestLogrusAdapter_Levels(t *testing.T) {
	var buf bytes.Buffer
	l, err := newLogger(&buf, "warn", "text")
	require.NoError(t, err)
	log := NewLogrusAdapter(l)

	log.Debug("hidden")
	log.Info("hidden")
	assert.Empty(t, buf.String())

	log.Warn("shown")
	log.Error("also shown")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "also shown")
}

func TestFields(t *testing.T) {
	tests := []struct {
		name  string
		attrs []any
		want  logrus.Fields
	}{
		{"empty", nil, logrus.Fields{}},
		{"pairs", []any{"a", 1, "b", "x"}, logrus.Fields{"a": 1, "b": "x"}},
		{"odd", []any{"a", 1, "dangling"}, logrus.Fields{"a": 1, "!BADKEY": "dangling"}},
		{"non-string key", []any{7, "v"}, logrus.Fields{"7": "v"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fields(tt.attrs))
		})
	}
}

func TestNewLogger_BadLevel(t *testing.T) {
	_, err := newLogger(&bytes.Buffer{}, "loud", "text")
	assert.Error(t, err)
}
