package autostart

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/vedantwpatil/hitmarker/internal/logging"
)

// launchAgent writes a per-user LaunchAgent plist with RunAtLoad set.
type launchAgent struct {
	dir    string
	entry  Entry
	logger *zap.Logger
}

func newLaunchAgent(dir string, entry Entry, logger *zap.Logger) *launchAgent {
	return &launchAgent{dir: dir, entry: entry, logger: logging.OrNop(logger)}
}

func launchAgentsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "LaunchAgents"), nil
}

func (l *launchAgent) label() string {
	return "com.hitmarker." + strings.ToLower(l.entry.Name)
}

func (l *launchAgent) path() string {
	return filepath.Join(l.dir, l.label()+".plist")
}

func (l *launchAgent) IsEnabled() bool {
	_, err := os.Stat(l.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		l.logger.Warn("Failed to read launch agent", zap.String("path", l.path()), zap.Error(err))
	}
	return err == nil
}

func (l *launchAgent) SetEnabled(enabled bool) error {
	if !enabled {
		if err := os.Remove(l.path()); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", l.path(), err)
		}
		return nil
	}

	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", l.dir, err)
	}
	data, err := l.render()
	if err != nil {
		return err
	}
	if err := os.WriteFile(l.path(), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", l.path(), err)
	}
	return nil
}

func (l *launchAgent) render() ([]byte, error) {
	var b strings.Builder
	b.WriteString(xml.Header)
	b.WriteString(`<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">` + "\n")
	b.WriteString(`<plist version="1.0">` + "\n<dict>\n")

	writeKeyString := func(key, value string) error {
		b.WriteString("\t<key>" + key + "</key>\n\t<string>")
		if err := xml.EscapeText(&b, []byte(value)); err != nil {
			return err
		}
		b.WriteString("</string>\n")
		return nil
	}
	if err := writeKeyString("Label", l.label()); err != nil {
		return nil, fmt.Errorf("failed to render launch agent: %w", err)
	}

	b.WriteString("\t<key>ProgramArguments</key>\n\t<array>\n")
	for _, arg := range append([]string{l.entry.Executable}, l.entry.Args...) {
		b.WriteString("\t\t<string>")
		if err := xml.EscapeText(&b, []byte(arg)); err != nil {
			return nil, fmt.Errorf("failed to render launch agent: %w", err)
		}
		b.WriteString("</string>\n")
	}
	b.WriteString("\t</array>\n")
	b.WriteString("\t<key>RunAtLoad</key>\n\t<true/>\n")
	b.WriteString("</dict>\n</plist>\n")
	return []byte(b.String()), nil
}
