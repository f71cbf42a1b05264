package surface

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPremultiplyBGRA(t *testing.T) {
	rgba := []byte{
		255, 0, 0, 255, // opaque red
		0, 255, 0, 0, // fully transparent green
		200, 100, 50, 128, // half transparent
	}

	got := premultiplyBGRA(rgba)

	assert.Equal(t, []byte{
		0, 0, 255, 255,
		0, 0, 0, 0,
		25, 50, 100, 128,
	}, got)
	assert.Equal(t, byte(255), rgba[0], "input is left untouched")
}

func TestPremultiplyIgnoresTrailingBytes(t *testing.T) {
	got := premultiplyBGRA([]byte{10, 20, 30, 255, 1, 2})
	assert.Equal(t, []byte{30, 20, 10, 255, 0, 0}, got)
}
