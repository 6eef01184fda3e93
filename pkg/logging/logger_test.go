package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "bogus", ""} {
		t.Run("level_"+level, func(t *testing.T) {
			logger := New(level)
			require.NotNil(t, logger)
			require.NotNil(t, logger.Logger)
		})
	}
}

func TestDefault(t *testing.T) {
	logger := Default()
	require.NotNil(t, logger)
}

func TestComponent(t *testing.T) {
	logger := Default().Component("engine")
	require.NotNil(t, logger)

	var nilLogger *Logger
	assert.NotPanics(t, func() {
		nilLogger.Component("engine").Info("still works")
	})
}
