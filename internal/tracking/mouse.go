package tracking

import (
	"errors"
	"sync/atomic"

	"github.com/go-vgo/robotgo"
	"go.uber.org/zap"

	"github.com/vedantwpatil/hitmarker/internal/logging"
)

// ErrInputUnavailable is returned by a ButtonReader that cannot query the OS.
var ErrInputUnavailable = errors.New("global mouse state is unavailable")

// Sample is a single reading of the pointer.
type Sample struct {
	Down bool // Left button held at the time of the poll
	X    int
	Y    int
}

// ButtonReader reports whether the primary button is currently held.
type ButtonReader interface {
	LeftDown() (bool, error)
}

// CursorFunc returns the global cursor position in screen pixels.
type CursorFunc func() (x, y int)

type Options struct {
	Buttons ButtonReader // Defaults to the platform reader
	Cursor  CursorFunc   // Defaults to robotgo.Location
	Logger  *zap.Logger
}

// Monitor samples the global pointer state. It keeps no state about
// previous samples.
type Monitor struct {
	buttons ButtonReader
	cursor  CursorFunc
	closer  func()
	logger  *zap.Logger
	warned  atomic.Bool
}

func NewMonitor(opts Options) *Monitor {
	logger := logging.OrNop(opts.Logger)

	m := &Monitor{
		buttons: opts.Buttons,
		cursor:  opts.Cursor,
		closer:  func() {},
		logger:  logger,
	}
	if m.buttons == nil {
		m.buttons, m.closer = newPlatformButtons(logger)
	}
	if m.cursor == nil {
		m.cursor = robotgo.Location
	}
	return m
}

// Poll never blocks and never fails: an unavailable OS query reads as
// "not pressed".
func (m *Monitor) Poll() Sample {
	down, err := m.buttons.LeftDown()
	if err != nil {
		if m.warned.CompareAndSwap(false, true) {
			m.logger.Warn("Unable to read mouse button state, treating as released", zap.Error(err))
		}
		return Sample{}
	}
	if !down {
		return Sample{}
	}

	x, y := m.cursor()
	return Sample{Down: true, X: x, Y: y}
}

// Close releases the platform hook, if one was started.
func (m *Monitor) Close() {
	m.closer()
}
