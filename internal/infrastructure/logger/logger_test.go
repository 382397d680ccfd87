package logger

import (
	"testing"

	"github.com/LavaJover/printshop-order-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewHonoursLevel(t *testing.T) {
	l, err := New(config.LogConfig{LogLevel: "warn", LogFormat: "console", LogOutput: "stderr"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestNewFallsBackToInfo(t *testing.T) {
	l, err := New(config.LogConfig{LogLevel: "loud"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	_, err := New(config.LogConfig{LogFormat: "xml"})
	assert.Error(t, err)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
}
