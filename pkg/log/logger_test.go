package log

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestLoggerCapturesFields(t *testing.T) {
	logger, _ := NewTestLogger(LevelDebug)

	logger.Info("binning complete",
		SamplesKey, 891,
		FeaturesKey, 5,
		NBinsKey, 50,
	)

	entries, err := logger.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "binning complete", entries[0]["message"])
	assert.Equal(t, float64(891), entries[0][SamplesKey])
	assert.Equal(t, float64(50), entries[0][NBinsKey])
}

func TestTestLoggerLevelFiltering(t *testing.T) {
	logger, _ := NewTestLogger(LevelInfo)

	logger.Debug("hidden")
	logger.Warn("visible")

	assert.False(t, logger.ContainsMessage("hidden"))
	assert.True(t, logger.ContainsMessage("visible"))
	assert.False(t, logger.Enabled(context.Background(), LevelDebug))
	assert.True(t, logger.Enabled(context.Background(), LevelWarn))
}

func TestGetLoggerWithName(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)
	prev := SetLogger(testLogger)
	defer SetLogger(prev)

	GetLoggerWithName("binning").Debug("cuts built", CutsKey, 12)

	entries, err := testLogger.Entries()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "binning", entries[0][ComponentKey])
	assert.Equal(t, float64(12), entries[0][CutsKey])
}

func TestToLogLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ToLogLevel("debug"))
	assert.Equal(t, LevelInfo, ToLogLevel("info"))
	assert.Equal(t, LevelWarn, ToLogLevel("warn"))
	assert.Equal(t, LevelError, ToLogLevel("error"))
	assert.Panics(t, func() { ToLogLevel("verbose") })
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "DEBUG", LevelDebug.String())
	assert.Equal(t, "UNKNOWN", Level(42).String())
}
