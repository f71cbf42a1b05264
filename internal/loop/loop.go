// internal/loop/loop.go
package loop

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/vedantwpatil/hitmarker/internal/logging"
	"github.com/vedantwpatil/hitmarker/internal/overlay"
)

var (
	ErrAlreadyRunning = errors.New("loop already running")
	ErrNotRunning     = errors.New("loop is not running")
)

// Hooks are all invoked on the loop goroutine.
type Hooks struct {
	Setup    func() error
	Tick     func(now time.Time)
	Teardown func()
}

// Loop is the single UI tick driver. Everything it runs, ticks and posted
// callbacks alike, runs on one goroutine locked to its OS thread, so window
// handles created in Setup stay valid for Tick and Teardown.
type Loop struct {
	period    time.Duration
	logger    *zap.Logger
	isRunning bool
	posted    chan func()
	stopChan  chan struct{}
	doneChan  chan struct{}
	mu        sync.Mutex
}

func New(period time.Duration, logger *zap.Logger) *Loop {
	return &Loop{
		period: period,
		logger: logging.OrNop(logger),
	}
}

// Start launches the loop and returns once Setup has completed.
func (l *Loop) Start(hooks Hooks) error {
	if l.period <= 0 {
		return fmt.Errorf("tick period must be positive, got %v", l.period)
	}
	if hooks.Tick == nil {
		return errors.New("tick hook is required")
	}

	l.mu.Lock()
	if l.isRunning {
		l.mu.Unlock()
		return ErrAlreadyRunning
	}
	posted := make(chan func(), 16)
	stopChan := make(chan struct{})
	doneChan := make(chan struct{})
	l.posted = posted
	l.stopChan = stopChan
	l.doneChan = doneChan
	l.isRunning = true
	l.mu.Unlock()

	setupErr := make(chan error, 1)
	go l.run(hooks, posted, stopChan, doneChan, setupErr)

	if err := <-setupErr; err != nil {
		<-doneChan
		close(stopChan)
		l.mu.Lock()
		l.isRunning = false
		l.posted = nil
		l.stopChan = nil
		l.doneChan = nil
		l.mu.Unlock()
		return fmt.Errorf("loop setup failed: %w", err)
	}
	return nil
}

func (l *Loop) run(hooks Hooks, posted chan func(), stopChan, doneChan chan struct{}, setupErr chan<- error) {
	defer close(doneChan)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	if hooks.Setup != nil {
		if err := hooks.Setup(); err != nil {
			setupErr <- err
			return
		}
	}
	setupErr <- nil

	ticker := time.NewTicker(l.period)
	defer ticker.Stop()

	l.logger.Debug("Tick loop started", zap.Duration("period", l.period))

	for {
		select {
		case <-stopChan:
			if hooks.Teardown != nil {
				hooks.Teardown()
			}
			l.logger.Debug("Tick loop stopped")
			return
		case now := <-ticker.C:
			hooks.Tick(now)
		case f := <-posted:
			f()
		}
	}
}

// Post queues f to run on the loop goroutine. It reports false when the
// loop has stopped and f was dropped.
func (l *Loop) Post(f func()) bool {
	l.mu.Lock()
	posted, stopChan := l.posted, l.stopChan
	l.mu.Unlock()
	if posted == nil {
		return false
	}

	select {
	case <-stopChan:
		return false
	default:
	}
	select {
	case posted <- f:
		return true
	case <-stopChan:
		return false
	}
}

// AfterFunc schedules f on the loop goroutine after d. It never blocks.
func (l *Loop) AfterFunc(d time.Duration, f func()) overlay.Timer {
	return time.AfterFunc(d, func() {
		l.Post(f)
	})
}

// Stop halts the ticker, runs Teardown and waits for the goroutine to exit.
func (l *Loop) Stop() error {
	l.mu.Lock()
	if !l.isRunning {
		l.mu.Unlock()
		return ErrNotRunning
	}
	l.isRunning = false
	stopChan, doneChan := l.stopChan, l.doneChan
	l.mu.Unlock()

	close(stopChan)
	<-doneChan
	return nil
}

func (l *Loop) IsRunning() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.isRunning
}
