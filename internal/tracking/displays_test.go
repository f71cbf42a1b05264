package tracking

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogDisplays(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	LogDisplays(zap.New(core), []image.Rectangle{
		image.Rect(0, 0, 1920, 1080),
		image.Rect(-1280, 0, 0, 1024),
	})

	entries := logs.FilterMessage("Display detected").All()
	require.Len(t, entries, 2)
	fields := entries[1].ContextMap()
	assert.EqualValues(t, -1280, fields["x"])
	assert.EqualValues(t, 1280, fields["width"])
	assert.EqualValues(t, 1024, fields["height"])
}

func TestLogDisplaysNone(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)

	LogDisplays(zap.New(core), nil)

	assert.Equal(t, 1, logs.FilterMessage("No active displays detected").Len())
}
