package autostart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/vedantwpatil/hitmarker/internal/logging"
)

// desktopEntry writes an XDG autostart file, honoured by GNOME, KDE and
// most other freedesktop sessions.
type desktopEntry struct {
	dir    string
	entry  Entry
	logger *zap.Logger
}

func newDesktopEntry(dir string, entry Entry, logger *zap.Logger) *desktopEntry {
	return &desktopEntry{dir: dir, entry: entry, logger: logging.OrNop(logger)}
}

// xdgAutostartDir returns $XDG_CONFIG_HOME/autostart, falling back to
// ~/.config/autostart.
func xdgAutostartDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "autostart"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "autostart"), nil
}

func (d *desktopEntry) path() string {
	return filepath.Join(d.dir, d.entry.Name+".desktop")
}

func (d *desktopEntry) IsEnabled() bool {
	_, err := os.Stat(d.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		d.logger.Warn("Failed to read autostart entry", zap.String("path", d.path()), zap.Error(err))
	}
	return err == nil
}

func (d *desktopEntry) SetEnabled(enabled bool) error {
	if !enabled {
		if err := os.Remove(d.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", d.path(), err)
		}
		return nil
	}

	if err := os.MkdirAll(d.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", d.dir, err)
	}
	if err := os.WriteFile(d.path(), []byte(d.render()), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", d.path(), err)
	}
	return nil
}

func (d *desktopEntry) render() string {
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	fmt.Fprintf(&b, "Name=%s\n", d.entry.Name)
	fmt.Fprintf(&b, "Exec=%s\n", d.entry.CommandLine())
	b.WriteString("Terminal=false\n")
	b.WriteString("X-GNOME-Autostart-enabled=true\n")
	return b.String()
}
