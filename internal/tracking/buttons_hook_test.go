//go:build !windows

package tracking

import (
	"testing"

	hook "github.com/robotn/gohook"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestHookLatch(t *testing.T) {
	latch := &hookLatch{}

	down, err := latch.LeftDown()
	require.NoError(t, err, "a hook that has not started yet reads as released")
	assert.False(t, down)

	latch.observe(hook.Event{Kind: hook.HookEnabled})
	down, err = latch.LeftDown()
	require.NoError(t, err)
	assert.False(t, down)

	latch.observe(hook.Event{Kind: hook.MouseHold, Button: hook.MouseMap["left"]})
	down, _ = latch.LeftDown()
	assert.True(t, down)

	latch.observe(hook.Event{Kind: hook.MouseHold, Button: hook.MouseMap["right"]})
	latch.observe(hook.Event{Kind: hook.MouseDown, Button: hook.MouseMap["right"]})
	down, _ = latch.LeftDown()
	assert.True(t, down, "other buttons do not touch the latch")

	latch.observe(hook.Event{Kind: hook.MouseDown, Button: hook.MouseMap["left"]})
	down, _ = latch.LeftDown()
	assert.False(t, down)

	latch.observe(hook.Event{Kind: hook.MouseHold, Button: hook.MouseMap["left"]})
	latch.observe(hook.Event{Kind: hook.HookDisabled})
	_, err = latch.LeftDown()
	assert.ErrorIs(t, err, ErrInputUnavailable)
}

func TestMonitorWarnsOnlyAfterHookStops(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	latch := &hookLatch{}
	m := NewMonitor(Options{
		Buttons: latch,
		Cursor:  func() (int, int) { return 0, 0 },
		Logger:  zap.New(core),
	})

	for i := 0; i < 5; i++ {
		assert.Equal(t, Sample{}, m.Poll())
	}
	assert.Zero(t, logs.Len(), "startup ticks before the hook is enabled")

	latch.observe(hook.Event{Kind: hook.HookEnabled})
	latch.observe(hook.Event{Kind: hook.MouseHold, Button: hook.MouseMap["left"]})
	assert.True(t, m.Poll().Down)

	latch.observe(hook.Event{Kind: hook.HookDisabled})
	assert.Equal(t, Sample{}, m.Poll())
	assert.Equal(t, Sample{}, m.Poll())
	assert.Equal(t, 1, logs.FilterMessage("Unable to read mouse button state, treating as released").Len())
}
