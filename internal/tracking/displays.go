package tracking

import (
	"image"

	"github.com/kbinani/screenshot"
	"go.uber.org/zap"
)

// Displays returns the bounds of every active display in the same global
// coordinate space the cursor is reported in. Secondary monitors left of or
// above the primary have negative origins.
func Displays() []image.Rectangle {
	n := screenshot.NumActiveDisplays()
	bounds := make([]image.Rectangle, 0, n)
	for i := 0; i < n; i++ {
		bounds = append(bounds, screenshot.GetDisplayBounds(i))
	}
	return bounds
}

// LogDisplays records the display layout once at startup.
func LogDisplays(logger *zap.Logger, displays []image.Rectangle) {
	if len(displays) == 0 {
		logger.Warn("No active displays detected")
		return
	}
	for i, b := range displays {
		logger.Info("Display detected",
			zap.Int("index", i),
			zap.Int("x", b.Min.X),
			zap.Int("y", b.Min.Y),
			zap.Int("width", b.Dx()),
			zap.Int("height", b.Dy()),
		)
	}
}
