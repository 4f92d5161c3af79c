package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    zapcore.Level
		wantErr bool
	}{
		{"", zapcore.InfoLevel, false},
		{"debug", zapcore.DebugLevel, false},
		{"WARN", zapcore.WarnLevel, false},
		{"error", zapcore.ErrorLevel, false},
		{"loud", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	for _, format := range []string{"", "console", "json"} {
		logger, err := New(Config{Level: "debug", Format: format})
		require.NoError(t, err, "format %q", format)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	}

	_, err := New(Config{Format: "xml"})
	assert.ErrorContains(t, err, "unknown log format")

	_, err = New(Config{Level: "verbose"})
	assert.ErrorContains(t, err, "unknown log level")
}

func TestComponent(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	Component(zap.New(core), "contract").Info("hello")

	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "contract", logs.All()[0].ContextMap()["component"])

	assert.NotNil(t, Component(nil, "x"))
}
