//go:build windows

package surface

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"

	"github.com/lxn/win"
	"go.uber.org/zap"
	"golang.org/x/sys/windows"

	"github.com/vedantwpatil/hitmarker/internal/assets"
	"github.com/vedantwpatil/hitmarker/internal/logging"
)

const className = "HitmarkerOverlay"

// wingdi.h / winuser.h values lxn/win does not export.
const (
	acSrcOver             = 0x00
	ulwAlpha              = 0x02
	errClassAlreadyExists = 1410
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procUpdateLayeredWindow = user32.NewProc("UpdateLayeredWindow")

	wndProc = syscall.NewCallback(defWindowProc)
)

// alphaBlend composites the bitmap with its own premultiplied alpha.
func alphaBlend() win.BLENDFUNCTION {
	return win.BLENDFUNCTION{
		BlendOp:             acSrcOver,
		SourceConstantAlpha: 255,
		AlphaFormat:         win.AC_SRC_ALPHA,
	}
}

func defWindowProc(hwnd win.HWND, msg uint32, wParam, lParam uintptr) uintptr {
	return win.DefWindowProc(hwnd, msg, wParam, lParam)
}

type Window struct {
	hwnd    win.HWND
	width   int
	height  int
	visible bool
	logger  *zap.Logger
}

// New creates the hidden marker window and uploads img into it.
func New(img assets.Image, logger *zap.Logger) (*Window, error) {
	logger = logging.OrNop(logger)

	hInstance := win.GetModuleHandle(nil)
	cls, err := syscall.UTF16PtrFromString(className)
	if err != nil {
		return nil, err
	}

	wc := win.WNDCLASSEX{
		LpfnWndProc:   wndProc,
		HInstance:     hInstance,
		LpszClassName: cls,
	}
	wc.CbSize = uint32(unsafe.Sizeof(wc))
	if win.RegisterClassEx(&wc) == 0 {
		if code := win.GetLastError(); code != errClassAlreadyExists {
			return nil, fmt.Errorf("failed to register overlay window class: error %d", code)
		}
	}

	hwnd := win.CreateWindowEx(
		win.WS_EX_LAYERED|win.WS_EX_TRANSPARENT|win.WS_EX_TOPMOST|win.WS_EX_TOOLWINDOW|win.WS_EX_NOACTIVATE,
		cls,
		nil,
		win.WS_POPUP,
		0, 0, int32(img.Width), int32(img.Height),
		0, 0, hInstance, nil,
	)
	if hwnd == 0 {
		return nil, fmt.Errorf("failed to create overlay window: error %d", win.GetLastError())
	}

	w := &Window{hwnd: hwnd, width: img.Width, height: img.Height, logger: logger}
	if err := w.upload(img); err != nil {
		win.DestroyWindow(hwnd)
		return nil, err
	}

	logger.Debug("Overlay window created", zap.Int("width", img.Width), zap.Int("height", img.Height))
	return w, nil
}

func (w *Window) upload(img assets.Image) error {
	screenDC := win.GetDC(0)
	if screenDC == 0 {
		return errors.New("failed to get screen device context")
	}
	defer win.ReleaseDC(0, screenDC)

	memDC := win.CreateCompatibleDC(screenDC)
	if memDC == 0 {
		return errors.New("failed to create memory device context")
	}
	defer win.DeleteDC(memDC)

	var bi win.BITMAPINFOHEADER
	bi.BiSize = uint32(unsafe.Sizeof(bi))
	bi.BiWidth = int32(img.Width)
	bi.BiHeight = -int32(img.Height) // Top-down rows
	bi.BiPlanes = 1
	bi.BiBitCount = 32
	bi.BiCompression = win.BI_RGB

	var bits unsafe.Pointer
	hbm := win.CreateDIBSection(memDC, &bi, win.DIB_RGB_COLORS, &bits, 0, 0)
	if hbm == 0 || bits == nil {
		return errors.New("failed to allocate overlay bitmap")
	}
	defer win.DeleteObject(win.HGDIOBJ(hbm))

	copy(unsafe.Slice((*byte)(bits), len(img.Pix)), premultiplyBGRA(img.Pix))

	old := win.SelectObject(memDC, win.HGDIOBJ(hbm))
	defer win.SelectObject(memDC, old)

	size := win.SIZE{CX: int32(img.Width), CY: int32(img.Height)}
	var src win.POINT
	blend := alphaBlend()

	if err := procUpdateLayeredWindow.Find(); err != nil {
		return fmt.Errorf("UpdateLayeredWindow unavailable: %w", err)
	}
	r, _, callErr := procUpdateLayeredWindow.Call(
		uintptr(w.hwnd),
		uintptr(screenDC),
		0,
		uintptr(unsafe.Pointer(&size)),
		uintptr(memDC),
		uintptr(unsafe.Pointer(&src)),
		0,
		uintptr(unsafe.Pointer(&blend)),
		ulwAlpha,
	)
	if r == 0 {
		return fmt.Errorf("failed to upload overlay bitmap: %w", callErr)
	}
	return nil
}

func (w *Window) Size() (int, int) {
	return w.width, w.height
}

func (w *Window) MoveTo(x, y int) {
	win.SetWindowPos(w.hwnd, win.HWND_TOPMOST, int32(x), int32(y), 0, 0, win.SWP_NOSIZE|win.SWP_NOACTIVATE)
}

func (w *Window) Show() {
	win.ShowWindow(w.hwnd, win.SW_SHOWNOACTIVATE)
	w.visible = true
}

func (w *Window) Hide() {
	win.ShowWindow(w.hwnd, win.SW_HIDE)
	w.visible = false
}

func (w *Window) Visible() bool {
	return w.visible
}

// Pump drains the window's message queue. Call it every tick.
func (w *Window) Pump() {
	var msg win.MSG
	for win.PeekMessage(&msg, 0, 0, 0, win.PM_REMOVE) {
		win.TranslateMessage(&msg)
		win.DispatchMessage(&msg)
	}
}

func (w *Window) Close() {
	if w.hwnd == 0 {
		return
	}
	win.DestroyWindow(w.hwnd)
	w.hwnd = 0
	w.Pump()
	w.logger.Debug("Overlay window destroyed")
}
