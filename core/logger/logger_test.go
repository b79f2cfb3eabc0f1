package logger_test

import (
	"testing"

	"github.com/RealityMetaverse/realitymeta-golembase-tools/core/logger"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	t.Run("DebugConsole", func(t *testing.T) {
		l, err := logger.New(&logger.Config{Level: "debug", Format: "console"})
		assert.NoError(t, err)
		assert.NotNil(t, l)
	})

	t.Run("InfoJSON", func(t *testing.T) {
		l, err := logger.New(&logger.Config{Level: "info", Format: "json"})
		assert.NoError(t, err)
		assert.NotNil(t, l)
	})
}

func TestWithRun(t *testing.T) {
	l, err := logger.New(&logger.Config{Level: "info", Format: "json"})
	assert.NoError(t, err)

	t.Run("AttachesRunID", func(t *testing.T) {
		assert.NotNil(t, logger.WithRun(l, "4a1f"))
	})

	t.Run("EmptyRunIDIsNoop", func(t *testing.T) {
		assert.Equal(t, l, logger.WithRun(l, ""))
	})
}
