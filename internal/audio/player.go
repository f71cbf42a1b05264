package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/vedantwpatil/hitmarker/internal/logging"
)

// Player keeps the cue decoded in memory so each Play only mixes a new
// streamer into the speaker.
type Player struct {
	clip      *beep.Buffer
	logger    *zap.Logger
	closeOnce sync.Once
}

// NewPlayer decodes path (MP3 or WAV) and opens the output device.
func NewPlayer(path string, logger *zap.Logger) (*Player, error) {
	logger = logging.OrNop(logger)

	clip, err := loadClip(path)
	if err != nil {
		return nil, err
	}

	sr := clip.Format().SampleRate
	if err := speaker.Init(sr, sr.N(time.Second/20)); err != nil {
		return nil, fmt.Errorf("failed to open audio output: %w", err)
	}

	logger.Debug("Audio cue loaded",
		zap.String("path", path),
		zap.Int("sample_rate", int(sr)),
		zap.Duration("length", sr.D(clip.Len())),
	)
	return &Player{clip: clip, logger: logger}, nil
}

func loadClip(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sound %s: %w", path, err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, fmt.Errorf("unsupported sound format %q", filepath.Ext(path))
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to decode sound %s: %w", path, err)
	}
	defer streamer.Close()

	clip := beep.NewBuffer(format)
	clip.Append(streamer)
	if err := streamer.Err(); err != nil {
		return nil, fmt.Errorf("failed to read sound %s: %w", path, err)
	}
	return clip, nil
}

// Play mixes a fresh copy of the clip at the given linear volume. Zero
// volume still plays, silently.
func (p *Player) Play(volume float64) {
	s := p.clip.Streamer(0, p.clip.Len())
	speaker.Play(&effects.Gain{Streamer: s, Gain: Gain(volume)})
}

// Gain maps a [0,1] volume to beep's gain, where output = sample * (1 + gain).
func Gain(volume float64) float64 {
	if volume < 0 || math.IsNaN(volume) {
		volume = 0
	}
	if volume > 1 {
		volume = 1
	}
	return volume - 1
}

func (p *Player) Close() {
	p.closeOnce.Do(func() {
		speaker.Clear()
		speaker.Close()
		p.logger.Debug("Audio output closed")
	})
}
