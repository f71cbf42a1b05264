package ui

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vedantwpatil/hitmarker/internal/settings"
)

type fakeRegistrar struct {
	enabled bool
	err     error
	calls   []bool
}

func (f *fakeRegistrar) IsEnabled() bool { return f.enabled }

func (f *fakeRegistrar) SetEnabled(enabled bool) error {
	f.calls = append(f.calls, enabled)
	if f.err != nil {
		return f.err
	}
	f.enabled = enabled
	return nil
}

type notice struct {
	title, message string
}

func newTestPanel(t *testing.T, initial settings.Settings, reg *fakeRegistrar, logger *zap.Logger) (*Panel, *[]notice) {
	t.Helper()

	a := test.NewApp()
	t.Cleanup(a.Quit)

	p := NewPanel(a, PanelOptions{
		Store:     settings.NewStore(initial),
		Registrar: reg,
		Logger:    logger,
	})
	t.Cleanup(p.Close)

	var notices []notice
	p.notify = func(title, message string) {
		notices = append(notices, notice{title, message})
	}
	return p, &notices
}

func TestPanelReflectsInitialState(t *testing.T) {
	reg := &fakeRegistrar{enabled: true}
	p, notices := newTestPanel(t, settings.Settings{SoundEnabled: false, Volume: 0.4, GraphicEnabled: true}, reg, nil)

	assert.Equal(t, AppTitle, p.Window().Title())
	assert.False(t, p.sound.Checked)
	assert.True(t, p.graphic.Checked)
	assert.True(t, p.startup.Checked)
	assert.Equal(t, 40.0, p.volume.Value)
	assert.Equal(t, "40%", p.volumeLabel.Text)

	assert.Empty(t, reg.calls, "construction must not touch the registrar")
	assert.Empty(t, *notices)
}

func TestPanelTogglesWriteThrough(t *testing.T) {
	p, _ := newTestPanel(t, settings.Settings{SoundEnabled: true, Volume: 1, GraphicEnabled: true}, &fakeRegistrar{}, nil)

	test.Tap(p.sound)
	assert.False(t, p.store.Snapshot().SoundEnabled)

	test.Tap(p.graphic)
	assert.False(t, p.store.Snapshot().GraphicEnabled)

	test.Tap(p.sound)
	assert.True(t, p.store.Snapshot().SoundEnabled)
}

func TestPanelVolume(t *testing.T) {
	p, _ := newTestPanel(t, settings.Settings{Volume: 1}, &fakeRegistrar{}, nil)

	p.onVolumeChanged(37)
	assert.InDelta(t, 0.37, p.store.Snapshot().Volume, 1e-9)
	assert.Equal(t, "37%", p.volumeLabel.Text)

	p.onVolumeChanged(0)
	assert.Equal(t, 0.0, p.store.Snapshot().Volume)
	assert.Equal(t, "0%", p.volumeLabel.Text)
}

func TestPanelStartupToggle(t *testing.T) {
	reg := &fakeRegistrar{}
	p, notices := newTestPanel(t, settings.Settings{}, reg, nil)

	test.Tap(p.startup)
	assert.True(t, reg.enabled)

	test.Tap(p.startup)
	assert.False(t, reg.enabled)

	assert.Equal(t, []bool{true, false}, reg.calls)
	require.Len(t, *notices, 2)
	assert.Equal(t, notice{"Startup Status", "The program will start automatically on boot."}, (*notices)[0])
	assert.Equal(t, notice{"Startup Status", "The program will not start automatically on boot."}, (*notices)[1])
}

func TestPanelStartupFailureStillNotifies(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	reg := &fakeRegistrar{err: errors.New("access denied")}
	p, notices := newTestPanel(t, settings.Settings{}, reg, zap.New(core))

	p.onStartupChanged(true)

	assert.False(t, reg.enabled)
	assert.Len(t, *notices, 1)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "Failed to update launch at startup", logs.All()[0].Message)
}

func TestPanelShowHide(t *testing.T) {
	p, _ := newTestPanel(t, settings.Settings{}, &fakeRegistrar{}, nil)

	p.Restore()
	p.Window().Hide()
	p.Show()
	p.Close()
	p.Close()
}

func TestInstallTrayWithoutDesktopDriver(t *testing.T) {
	a := test.NewApp()
	t.Cleanup(a.Quit)

	assert.False(t, InstallTray(a, nil, func() {}, func() {}))
}
