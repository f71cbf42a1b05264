//go:build !windows

package tracking

import (
	"sync"
	"sync/atomic"

	hook "github.com/robotn/gohook"
	"go.uber.org/zap"
)

// hookLatch mirrors the left button from the global event hook. gohook
// reports a press as MouseHold and a release as MouseDown.
//
// Until the hook reports HookEnabled the button reads as released without
// an error. Only a hook that has started and then gone away is unavailable.
type hookLatch struct {
	started atomic.Bool
	enabled atomic.Bool
	down    atomic.Bool
}

func newPlatformButtons(logger *zap.Logger) (ButtonReader, func()) {
	latch := &hookLatch{}
	evChan := hook.Start()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range evChan {
			latch.observe(ev)
		}
		latch.enabled.Store(false)
		logger.Debug("Mouse hook stopped")
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			hook.End()
			<-done
		})
	}
	return latch, stop
}

func (l *hookLatch) observe(ev hook.Event) {
	switch ev.Kind {
	case hook.HookEnabled:
		l.started.Store(true)
		l.enabled.Store(true)
	case hook.HookDisabled:
		l.enabled.Store(false)
		l.down.Store(false)
	case hook.MouseHold:
		if isLeft(ev) {
			l.down.Store(true)
		}
	case hook.MouseDown:
		if isLeft(ev) {
			l.down.Store(false)
		}
	}
}

func (l *hookLatch) LeftDown() (bool, error) {
	if !l.enabled.Load() {
		if !l.started.Load() {
			return false, nil
		}
		return false, ErrInputUnavailable
	}
	return l.down.Load(), nil
}

func isLeft(ev hook.Event) bool {
	return ev.Button == hook.MouseMap["left"] || ev.Button == 1
}
