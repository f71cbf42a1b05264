// Package surface provides the on-screen hitmarker window.
//
// A Window must be created, driven and closed from the same goroutine,
// the one that owns the tick loop. On Windows it is a click-through,
// always-on-top layered window; elsewhere it is headless and only logs.
package surface

import "github.com/vedantwpatil/hitmarker/internal/overlay"

var _ overlay.Surface = (*Window)(nil)

// premultiplyBGRA converts straight-alpha RGBA into the premultiplied BGRA
// layout that per-pixel alpha blending expects.
func premultiplyBGRA(rgba []byte) []byte {
	out := make([]byte, len(rgba))
	for i := 0; i+3 < len(rgba); i += 4 {
		r, g, b, a := uint32(rgba[i]), uint32(rgba[i+1]), uint32(rgba[i+2]), uint32(rgba[i+3])
		out[i] = byte((b*a + 127) / 255)
		out[i+1] = byte((g*a + 127) / 255)
		out[i+2] = byte((r*a + 127) / 255)
		out[i+3] = byte(a)
	}
	return out
}
