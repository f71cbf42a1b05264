package tracking

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeButtons struct {
	down  bool
	err   error
	calls int
}

func (f *fakeButtons) LeftDown() (bool, error) {
	f.calls++
	return f.down, f.err
}

func TestPollReportsCursorWhileDown(t *testing.T) {
	buttons := &fakeButtons{down: true}
	m := NewMonitor(Options{
		Buttons: buttons,
		Cursor:  func() (int, int) { return 640, 360 },
	})

	assert.Equal(t, Sample{Down: true, X: 640, Y: 360}, m.Poll())
}

func TestPollSkipsCursorWhileReleased(t *testing.T) {
	cursorCalls := 0
	m := NewMonitor(Options{
		Buttons: &fakeButtons{},
		Cursor: func() (int, int) {
			cursorCalls++
			return 1, 1
		},
	})

	assert.Equal(t, Sample{}, m.Poll())
	assert.Zero(t, cursorCalls)
}

func TestPollFailsSoft(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	buttons := &fakeButtons{down: true, err: errors.New("access denied")}
	m := NewMonitor(Options{
		Buttons: buttons,
		Cursor:  func() (int, int) { return 5, 5 },
		Logger:  zap.New(core),
	})

	for i := 0; i < 3; i++ {
		assert.Equal(t, Sample{}, m.Poll())
	}

	assert.Equal(t, 3, buttons.calls, "every tick re-queries the OS")
	assert.Equal(t, 1, logs.Len(), "only the first failure is logged")

	buttons.err = nil
	assert.True(t, m.Poll().Down)
}

func TestCloseWithInjectedReader(t *testing.T) {
	m := NewMonitor(Options{Buttons: &fakeButtons{}, Cursor: func() (int, int) { return 0, 0 }})
	assert.NotPanics(t, m.Close)
}
