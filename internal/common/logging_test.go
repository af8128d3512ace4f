package common

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWithOutput_Levels(t *testing.T) {
	tests := []struct {
		level   string
		debug   bool
		warning bool
	}{
		{"debug", true, true},
		{"INFO", false, true},
		{"warn", false, true},
		{"error", false, false},
		{"bogus", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLoggerWithOutput(tt.level, &buf)
			logger.Debug().Msg("debug line")
			logger.Warn().Msg("warn line")

			assert.Equal(t, tt.debug, strings.Contains(buf.String(), "debug line"))
			assert.Equal(t, tt.warning, strings.Contains(buf.String(), "warn line"))
		})
	}
}

func TestCalcLogger(t *testing.T) {
	var buf bytes.Buffer
	calc := NewCalcLogger(NewLoggerWithOutput("debug", &buf))
	calc.Infof("mortgage calculated in %dms", 3)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "calculation", entry["component"])
	assert.Equal(t, "mortgage calculated in 3ms", entry["message"])
}

func TestPrintBanner(t *testing.T) {
	var out, logs bytes.Buffer
	PrintBanner(&out, StartupInfo{
		Environment: "test",
		ServiceURL:  "http://localhost:8080",
		Cache:       "memory",
		Storage:     "memory",
	}, NewLoggerWithOutput("info", &logs))

	assert.Contains(t, out.String(), "http://localhost:8080")
	assert.Contains(t, out.String(), GetVersion())
	assert.Contains(t, logs.String(), "Application started")
}

func TestGetFullVersion(t *testing.T) {
	assert.Equal(t, "dev (build: unknown, commit: unknown)", GetFullVersion())
	assert.Equal(t, "dev", GetVersionInfo().Version)
}
