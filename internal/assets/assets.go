package assets

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	vidio "github.com/AlexEidt/Vidio"
)

// ErrMissingAsset marks a startup-time configuration problem: a file the
// program cannot run without is absent.
var ErrMissingAsset = errors.New("missing asset")

// Names are file names relative to the asset directory.
type Names struct {
	Marker    string
	Sound     string
	Icon      string
	Thumbnail string
}

// Image is a decoded RGBA bitmap, 4 bytes per pixel, rows top to bottom.
type Image struct {
	Width  int
	Height int
	Pix    []byte
}

// Bundle holds everything resolved at startup.
type Bundle struct {
	Marker        Image
	MarkerPath    string
	SoundPath     string
	IconPath      string
	ThumbnailPath string
}

// Decoder turns an image file into RGBA pixels.
type Decoder func(path string) (Image, error)

// Load resolves every asset under dir and decodes the marker with decode.
// A nil decode uses ffmpeg through Vidio.
func Load(dir string, names Names, decode Decoder) (*Bundle, error) {
	if decode == nil {
		decode = DecodeImage
	}

	b := &Bundle{}
	var errs []error
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{names.Marker, &b.MarkerPath},
		{names.Sound, &b.SoundPath},
		{names.Icon, &b.IconPath},
		{names.Thumbnail, &b.ThumbnailPath},
	} {
		path, err := resolve(dir, f.name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*f.dst = path
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	img, err := decode(b.MarkerPath)
	if err != nil {
		return nil, fmt.Errorf("failed to decode marker image %s: %w", b.MarkerPath, err)
	}
	if img.Width <= 0 || img.Height <= 0 || len(img.Pix) != img.Width*img.Height*4 {
		return nil, fmt.Errorf("marker image %s has unexpected geometry %dx%d (%d bytes)", b.MarkerPath, img.Width, img.Height, len(img.Pix))
	}
	b.Marker = img
	return b, nil
}

func resolve(dir, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty file name", ErrMissingAsset)
	}
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, name)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrMissingAsset, path, err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", ErrMissingAsset, path)
	}
	return path, nil
}

// ErrFFmpegMissing is returned by DecodeImage when no ffmpeg binary is on PATH.
var ErrFFmpegMissing = errors.New("ffmpeg is required to decode images but was not found on PATH")

// DecodeImage reads any image format ffmpeg understands.
func DecodeImage(path string) (Image, error) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return Image{}, fmt.Errorf("%w: %v", ErrFFmpegMissing, err)
	}
	w, h, pix, err := vidio.Read(path)
	if err != nil {
		return Image{}, fmt.Errorf("ffmpeg failed to read %s: %w", path, err)
	}
	return Image{Width: w, Height: h, Pix: pix}, nil
}

// ExecutableDir is the directory holding the running binary, the default
// place to look for assets when launched at login with an unrelated cwd.
func ExecutableDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
