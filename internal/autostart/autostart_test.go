package autostart

import (
	"bytes"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testEntry = Entry{
	Name:       "HitmarkerMLG",
	Executable: "/opt/hit marker/hitmarker",
	Args:       []string{"minimized"},
}

func TestCommandLine(t *testing.T) {
	assert.Equal(t, `"/opt/hit marker/hitmarker" minimized`, testEntry.CommandLine())
	assert.Equal(t, `"/bin/x"`, Entry{Executable: "/bin/x"}.CommandLine())
}

func TestCurrentEntry(t *testing.T) {
	e, err := CurrentEntry("HitmarkerMLG", "minimized")
	require.NoError(t, err)

	assert.Equal(t, "HitmarkerMLG", e.Name)
	assert.True(t, filepath.IsAbs(e.Executable))
	assert.Equal(t, []string{"minimized"}, e.Args)
}

func TestRoundTrip(t *testing.T) {
	registrars := map[string]func(dir string) Registrar{
		"desktop entry": func(dir string) Registrar { return newDesktopEntry(dir, testEntry, nil) },
		"launch agent":  func(dir string) Registrar { return newLaunchAgent(dir, testEntry, nil) },
	}

	for name, build := range registrars {
		t.Run(name, func(t *testing.T) {
			// The directory does not exist until the first enable.
			r := build(filepath.Join(t.TempDir(), "autostart"))
			assert.False(t, r.IsEnabled())

			require.NoError(t, r.SetEnabled(true))
			assert.True(t, r.IsEnabled())

			require.NoError(t, r.SetEnabled(true), "enabling twice is fine")
			assert.True(t, r.IsEnabled())

			require.NoError(t, r.SetEnabled(false))
			assert.False(t, r.IsEnabled())

			require.NoError(t, r.SetEnabled(false), "disabling an absent entry is fine")
			assert.False(t, r.IsEnabled())
		})
	}
}

func TestDesktopEntryContents(t *testing.T) {
	dir := t.TempDir()
	r := newDesktopEntry(dir, testEntry, nil)
	require.NoError(t, r.SetEnabled(true))

	data, err := os.ReadFile(filepath.Join(dir, "HitmarkerMLG.desktop"))
	require.NoError(t, err)

	assert.Contains(t, string(data), "[Desktop Entry]\n")
	assert.Contains(t, string(data), "Exec=\"/opt/hit marker/hitmarker\" minimized\n")
	assert.Contains(t, string(data), "Name=HitmarkerMLG\n")
}

func TestLaunchAgentIsWellFormed(t *testing.T) {
	dir := t.TempDir()
	entry := testEntry
	entry.Executable = "/Applications/Hit & Marker.app/Contents/MacOS/hitmarker"
	r := newLaunchAgent(dir, entry, nil)
	require.NoError(t, r.SetEnabled(true))

	data, err := os.ReadFile(filepath.Join(dir, "com.hitmarker.hitmarkermlg.plist"))
	require.NoError(t, err)

	var plist struct {
		Dict struct {
			Keys   []string `xml:"key"`
			Values []string `xml:"string"`
		} `xml:"dict"`
	}
	require.NoError(t, xml.NewDecoder(bytes.NewReader(data)).Decode(&plist))

	assert.Equal(t, []string{"Label", "ProgramArguments", "RunAtLoad"}, plist.Dict.Keys)
	assert.Equal(t, []string{"com.hitmarker.hitmarkermlg"}, plist.Dict.Values)
	assert.Contains(t, string(data), "Hit &amp; Marker.app")
	assert.Contains(t, string(data), "<string>minimized</string>")
}

func TestSetEnabledFailsWhenDirIsAFile(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "autostart")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	r := newDesktopEntry(blocker, testEntry, nil)
	assert.Error(t, r.SetEnabled(true))
	assert.False(t, r.IsEnabled())
}

func TestUnavailable(t *testing.T) {
	cause := errors.New("HOME not set")
	r := Unavailable(cause)

	assert.False(t, r.IsEnabled())
	assert.ErrorIs(t, r.SetEnabled(true), cause)
}
