//go:build !windows && !darwin

package autostart

import "go.uber.org/zap"

func New(entry Entry, logger *zap.Logger) Registrar {
	dir, err := xdgAutostartDir()
	if err != nil {
		return unavailable{err: err}
	}
	return newDesktopEntry(dir, entry, logger)
}
