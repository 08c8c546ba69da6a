package logger

import (
	"testing"

	"quiz-api/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitialize(t *testing.T) {
	require.NoError(t, Initialize(config.LoggerConfig{Env: "production", Level: "debug"}))
	assert.True(t, Get().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, Initialize(config.LoggerConfig{Env: "development"}))
	assert.False(t, Get().Core().Enabled(zapcore.DebugLevel))
	assert.True(t, Get().Core().Enabled(zapcore.InfoLevel))
}

func TestInitialize_InvalidLevel(t *testing.T) {
	assert.Error(t, Initialize(config.LoggerConfig{Level: "chatty"}))
}
