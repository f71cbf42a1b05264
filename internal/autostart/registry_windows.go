//go:build windows

package autostart

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sys/windows/registry"

	"github.com/vedantwpatil/hitmarker/internal/logging"
)

const runKeyPath = `Software\Microsoft\Windows\CurrentVersion\Run`

// runKey stores the entry as a REG_SZ under HKCU\...\Run. A value of any
// type under the entry name counts as enabled.
type runKey struct {
	path   string
	entry  Entry
	logger *zap.Logger
}

func New(entry Entry, logger *zap.Logger) Registrar {
	return newRunKey(runKeyPath, entry, logger)
}

func newRunKey(path string, entry Entry, logger *zap.Logger) *runKey {
	return &runKey{path: path, entry: entry, logger: logging.OrNop(logger)}
}

func (r *runKey) IsEnabled() bool {
	k, err := registry.OpenKey(registry.CURRENT_USER, r.path, registry.QUERY_VALUE)
	if err != nil {
		r.logger.Warn("Failed to read registry", zap.String("key", r.path), zap.Error(err))
		return false
	}
	defer k.Close()

	_, _, err = k.GetValue(r.entry.Name, nil)
	if err != nil && !errors.Is(err, registry.ErrNotExist) {
		r.logger.Warn("Failed to read registry value", zap.String("value", r.entry.Name), zap.Error(err))
	}
	return err == nil
}

func (r *runKey) SetEnabled(enabled bool) error {
	k, err := registry.OpenKey(registry.CURRENT_USER, r.path, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", r.path, err)
	}
	defer k.Close()

	if enabled {
		if err := k.SetStringValue(r.entry.Name, r.entry.CommandLine()); err != nil {
			return fmt.Errorf("failed to write %s: %w", r.entry.Name, err)
		}
		return nil
	}

	if err := k.DeleteValue(r.entry.Name); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("failed to delete %s: %w", r.entry.Name, err)
	}
	return nil
}
