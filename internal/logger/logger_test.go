package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInit(t *testing.T) {
	require.NoError(t, Init("development"))
	assert.True(t, zap.L().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Init("production"))
	assert.NotNil(t, zap.L())
}

func TestSetLevel(t *testing.T) {
	require.NoError(t, Init("development"))

	require.NoError(t, SetLevel("warn"))
	assert.Equal(t, zapcore.WarnLevel, Level())
	assert.False(t, zap.L().Core().Enabled(zapcore.InfoLevel))
	assert.True(t, zap.L().Core().Enabled(zapcore.ErrorLevel))

	assert.Error(t, SetLevel("loud"))
	assert.Equal(t, zapcore.WarnLevel, Level())
}
