// Package autostart toggles launch-at-login for the running executable.
//
// New picks the platform mechanism: the per-user Run key on Windows, a
// LaunchAgent on macOS and an XDG autostart entry elsewhere.
package autostart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Registrar reads and writes the launch-at-login flag. IsEnabled reports
// false when the state cannot be read.
type Registrar interface {
	IsEnabled() bool
	SetEnabled(enabled bool) error
}

// Entry describes what gets launched at login.
type Entry struct {
	Name       string   // Value or file name, e.g. HitmarkerMLG
	Executable string   // Absolute path to the binary
	Args       []string // Extra arguments, e.g. "minimized"
}

// CurrentEntry builds an Entry for the running executable.
func CurrentEntry(name string, args ...string) (Entry, error) {
	exe, err := os.Executable()
	if err != nil {
		return Entry{}, fmt.Errorf("failed to locate executable: %w", err)
	}
	if abs, err := filepath.Abs(exe); err == nil {
		exe = abs
	}
	return Entry{Name: name, Executable: exe, Args: args}, nil
}

// CommandLine renders the entry with the executable quoted.
func (e Entry) CommandLine() string {
	parts := make([]string, 0, len(e.Args)+1)
	parts = append(parts, `"`+e.Executable+`"`)
	parts = append(parts, e.Args...)
	return strings.Join(parts, " ")
}

// Unavailable returns a Registrar that is never enabled and fails every
// SetEnabled with err.
func Unavailable(err error) Registrar {
	return unavailable{err: err}
}

// unavailable is used when the platform location cannot be resolved.
type unavailable struct {
	err error
}

func (u unavailable) IsEnabled() bool { return false }

func (u unavailable) SetEnabled(bool) error {
	return fmt.Errorf("autostart is unavailable: %w", u.err)
}
