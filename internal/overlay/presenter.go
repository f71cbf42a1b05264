// Package overlay turns accepted clicks into a short-lived hitmarker: the
// marker is centred on the cursor, the cue is played and the marker is
// hidden again after a fixed display duration.
//
// A Presenter is not safe for concurrent use. It is driven from a single
// goroutine, and the Scheduler it is given must run callbacks on that same
// goroutine.
package overlay

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/vedantwpatil/hitmarker/internal/logging"
	"github.com/vedantwpatil/hitmarker/internal/settings"
	"github.com/vedantwpatil/hitmarker/internal/tracking"
)

const (
	DefaultDebounce = 100 * time.Millisecond
	DefaultDisplay  = 50 * time.Millisecond
)

type State int

const (
	Idle State = iota
	Showing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Showing:
		return "showing"
	default:
		return "unknown"
	}
}

// ClickEvent is an accepted click.
type ClickEvent struct {
	At time.Time
	X  int
	Y  int
}

// Surface is the on-screen marker.
type Surface interface {
	Size() (w, h int)
	MoveTo(x, y int) // Top-left corner in screen pixels
	Show()
	Hide()
}

// Player triggers the audio cue. Play must not block for the length of
// the clip.
type Player interface {
	Play(volume float64)
}

type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d without blocking the caller.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type Options struct {
	Debounce  time.Duration
	Display   time.Duration
	Surface   Surface
	Player    Player
	Scheduler Scheduler
	Logger    *zap.Logger
}

type Presenter struct {
	debounce  time.Duration
	display   time.Duration
	surface   Surface
	player    Player
	scheduler Scheduler
	logger    *zap.Logger

	state        State
	lastAccepted time.Time
	lastClick    ClickEvent
	hideTimer    Timer
	generation   uint64
}

func NewPresenter(opts Options) (*Presenter, error) {
	if opts.Debounce <= 0 {
		return nil, errors.New("debounce interval must be positive")
	}
	if opts.Display <= 0 {
		return nil, errors.New("display duration must be positive")
	}
	if opts.Surface == nil {
		return nil, errors.New("surface is required")
	}
	if opts.Player == nil {
		return nil, errors.New("player is required")
	}
	if opts.Scheduler == nil {
		return nil, errors.New("scheduler is required")
	}
	return &Presenter{
		debounce:  opts.Debounce,
		display:   opts.Display,
		surface:   opts.Surface,
		player:    opts.Player,
		scheduler: opts.Scheduler,
		logger:    logging.OrNop(opts.Logger),
		state:     Idle,
	}, nil
}

// Tick evaluates one sample against the current settings snapshot and
// reports whether it triggered the marker.
func (p *Presenter) Tick(now time.Time, sample tracking.Sample, cfg settings.Settings) bool {
	if !sample.Down || !cfg.GraphicEnabled {
		return false
	}
	if !p.lastAccepted.IsZero() && now.Sub(p.lastAccepted) <= p.debounce {
		return false
	}

	w, h := p.surface.Size()
	p.surface.MoveTo(sample.X-w/2, sample.Y-h/2)
	p.surface.Show()
	if cfg.SoundEnabled {
		p.player.Play(cfg.Volume)
	}

	p.lastAccepted = now
	p.lastClick = ClickEvent{At: now, X: sample.X, Y: sample.Y}
	p.state = Showing
	p.scheduleHide()

	p.logger.Debug("Hitmarker shown",
		zap.Int("x", sample.X),
		zap.Int("y", sample.Y),
		zap.Bool("sound", cfg.SoundEnabled),
	)
	return true
}

func (p *Presenter) scheduleHide() {
	if p.hideTimer != nil {
		p.hideTimer.Stop()
	}
	p.generation++
	gen := p.generation
	p.hideTimer = p.scheduler.AfterFunc(p.display, func() {
		// A newer trigger owns the marker now.
		if gen != p.generation {
			return
		}
		p.hideTimer = nil
		p.state = Idle
		p.surface.Hide()
	})
}

func (p *Presenter) State() State {
	return p.state
}

// LastClick returns the most recently accepted click, zero if none.
func (p *Presenter) LastClick() ClickEvent {
	return p.lastClick
}

// Close cancels a pending hide and hides the marker.
func (p *Presenter) Close() {
	if p.hideTimer != nil {
		p.hideTimer.Stop()
		p.hideTimer = nil
	}
	p.generation++
	if p.state == Showing {
		p.surface.Hide()
	}
	p.state = Idle
}
