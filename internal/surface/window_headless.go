//go:build !windows

package surface

import (
	"go.uber.org/zap"

	"github.com/vedantwpatil/hitmarker/internal/assets"
	"github.com/vedantwpatil/hitmarker/internal/logging"
)

// Window is a headless stand-in that tracks position and visibility.
type Window struct {
	width   int
	height  int
	x, y    int
	visible bool
	logger  *zap.Logger
}

func New(img assets.Image, logger *zap.Logger) (*Window, error) {
	logger = logging.OrNop(logger)
	logger.Info("No native overlay on this platform, hitmarker will only be logged")
	return &Window{width: img.Width, height: img.Height, logger: logger}, nil
}

func (w *Window) Size() (int, int) { return w.width, w.height }

func (w *Window) MoveTo(x, y int) {
	w.x, w.y = x, y
}

func (w *Window) Show() {
	w.visible = true
	w.logger.Debug("Overlay shown", zap.Int("x", w.x), zap.Int("y", w.y))
}

func (w *Window) Hide() {
	w.visible = false
	w.logger.Debug("Overlay hidden")
}

func (w *Window) Visible() bool { return w.visible }

// Position returns the top-left corner last set by MoveTo.
func (w *Window) Position() (int, int) { return w.x, w.y }

func (w *Window) Pump() {}

func (w *Window) Close() {
	w.visible = false
}
