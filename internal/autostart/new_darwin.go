//go:build darwin

package autostart

import "go.uber.org/zap"

func New(entry Entry, logger *zap.Logger) Registrar {
	dir, err := launchAgentsDir()
	if err != nil {
		return unavailable{err: err}
	}
	return newLaunchAgent(dir, entry, logger)
}
