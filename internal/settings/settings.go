package settings

import (
	"math"
	"sync/atomic"
)

// Settings are the user-facing toggles edited from the panel.
type Settings struct {
	SoundEnabled   bool
	Volume         float64 // Linear amplitude within [0,1]
	GraphicEnabled bool
}

// Normalized returns s with Volume clamped to [0,1]. NaN becomes 0.
func (s Settings) Normalized() Settings {
	switch {
	case math.IsNaN(s.Volume) || s.Volume < 0:
		s.Volume = 0
	case s.Volume > 1:
		s.Volume = 1
	}
	return s
}

func (s Settings) VolumePercent() int {
	return int(math.Round(s.Normalized().Volume * 100))
}

// Store hands out immutable snapshots. Writers swap in a new copy; readers
// never observe a partially updated value.
type Store struct {
	current atomic.Pointer[Settings]
}

func NewStore(initial Settings) *Store {
	s := &Store{}
	n := initial.Normalized()
	s.current.Store(&n)
	return s
}

func (s *Store) Snapshot() Settings {
	return *s.current.Load()
}

// Update applies fn to a copy of the current settings and publishes it.
func (s *Store) Update(fn func(*Settings)) Settings {
	for {
		old := s.current.Load()
		next := *old
		fn(&next)
		next = next.Normalized()
		if s.current.CompareAndSwap(old, &next) {
			return next
		}
	}
}
