//go:build windows

package tracking

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sys/windows"
)

const vkLButton = 0x01

var (
	user32               = windows.NewLazySystemDLL("user32.dll")
	procGetAsyncKeyState = user32.NewProc("GetAsyncKeyState")
)

// asyncKeyState polls the physical key state, no hook required.
type asyncKeyState struct{}

func newPlatformButtons(logger *zap.Logger) (ButtonReader, func()) {
	logger.Debug("Using GetAsyncKeyState for mouse button state")
	return asyncKeyState{}, func() {}
}

func (asyncKeyState) LeftDown() (bool, error) {
	if err := procGetAsyncKeyState.Find(); err != nil {
		return false, fmt.Errorf("%w: %v", ErrInputUnavailable, err)
	}
	r, _, _ := procGetAsyncKeyState.Call(vkLButton)
	return uint16(r)&0x8000 != 0, nil
}
