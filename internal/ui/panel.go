package ui

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/vedantwpatil/hitmarker/internal/autostart"
	"github.com/vedantwpatil/hitmarker/internal/logging"
	"github.com/vedantwpatil/hitmarker/internal/settings"
)

const (
	AppTitle = "Hitmarker MLG Edition"

	thumbnailSize = 64
)

type PanelOptions struct {
	Store     *settings.Store
	Registrar autostart.Registrar
	Icon      fyne.Resource // Window icon, optional
	Thumbnail string        // Image shown beside the controls, optional
	Logger    *zap.Logger
}

// Panel is the settings window. Every control writes straight into the
// settings store; the tick loop picks the change up on its next snapshot.
type Panel struct {
	window    fyne.Window
	store     *settings.Store
	registrar autostart.Registrar
	logger    *zap.Logger

	title       *canvas.Text
	cycler      *TitleCycler
	sound       *widget.Check
	volume      *widget.Slider
	volumeLabel *widget.Label
	graphic     *widget.Check
	startup     *widget.Check

	notify func(title, message string)
}

func NewPanel(a fyne.App, opts PanelOptions) *Panel {
	p := &Panel{
		window:    a.NewWindow(AppTitle),
		store:     opts.Store,
		registrar: opts.Registrar,
		logger:    logging.OrNop(opts.Logger),
	}
	p.notify = func(title, message string) {
		dialog.ShowInformation(title, message, p.window)
	}

	current := p.store.Snapshot()

	p.title = canvas.NewText(AppTitle, rainbow[0])
	p.title.Alignment = fyne.TextAlignCenter
	p.title.TextStyle = fyne.TextStyle{Bold: true}
	p.title.TextSize = 22
	p.cycler = NewTitleCycler(p.title, DefaultCycleInterval)

	// Initial state is set before OnChanged so construction does not fire
	// the handlers.
	p.sound = widget.NewCheck("Enable Sound", nil)
	p.sound.Checked = current.SoundEnabled
	p.sound.OnChanged = p.onSoundChanged

	p.volume = widget.NewSlider(0, 100)
	p.volume.Step = 1
	p.volume.Value = float64(current.VolumePercent())
	p.volume.OnChanged = p.onVolumeChanged
	p.volumeLabel = widget.NewLabel(percentText(current.VolumePercent()))

	p.graphic = widget.NewCheck("Enable Graphic", nil)
	p.graphic.Checked = current.GraphicEnabled
	p.graphic.OnChanged = p.onGraphicChanged

	p.startup = widget.NewCheck("Launch at Startup", nil)
	p.startup.Checked = p.registrar.IsEnabled()
	p.startup.OnChanged = p.onStartupChanged

	controls := container.NewVBox(
		p.title,
		p.sound,
		container.NewBorder(nil, nil, nil, p.volumeLabel, p.volume),
		p.graphic,
		p.startup,
	)

	content := fyne.CanvasObject(controls)
	if opts.Thumbnail != "" {
		thumb := canvas.NewImageFromFile(opts.Thumbnail)
		thumb.FillMode = canvas.ImageFillContain
		thumb.SetMinSize(fyne.NewSize(thumbnailSize, thumbnailSize))
		content = container.NewBorder(nil, nil, nil, container.NewCenter(thumb), controls)
	}

	p.window.SetContent(container.NewPadded(content))
	p.window.Resize(fyne.NewSize(600, 300))
	if opts.Icon != nil {
		p.window.SetIcon(opts.Icon)
	}
	// Closing the panel only hides it; the tray keeps the app alive.
	p.window.SetCloseIntercept(p.window.Hide)

	return p
}

func (p *Panel) onSoundChanged(on bool) {
	p.store.Update(func(s *settings.Settings) { s.SoundEnabled = on })
	p.logger.Debug("Sound toggled", zap.Bool("enabled", on))
}

func (p *Panel) onVolumeChanged(value float64) {
	next := p.store.Update(func(s *settings.Settings) { s.Volume = value / 100 })
	p.volumeLabel.SetText(percentText(next.VolumePercent()))
}

func (p *Panel) onGraphicChanged(on bool) {
	p.store.Update(func(s *settings.Settings) { s.GraphicEnabled = on })
	p.logger.Debug("Graphic toggled", zap.Bool("enabled", on))
}

func (p *Panel) onStartupChanged(on bool) {
	if err := p.registrar.SetEnabled(on); err != nil {
		p.logger.Error("Failed to update launch at startup", zap.Bool("enabled", on), zap.Error(err))
	} else {
		p.logger.Info("Launch at startup updated", zap.Bool("enabled", on))
	}
	p.notify("Startup Status", startupMessage(on))
}

func startupMessage(enabled bool) string {
	if enabled {
		return "The program will start automatically on boot."
	}
	return "The program will not start automatically on boot."
}

func percentText(percent int) string {
	return fmt.Sprintf("%d%%", percent)
}

// Show displays the panel and starts the title animation.
func (p *Panel) Show() {
	p.cycler.Start()
	p.window.Show()
}

// Restore brings a hidden panel back to the front.
func (p *Panel) Restore() {
	p.Show()
	p.window.RequestFocus()
}

func (p *Panel) Window() fyne.Window {
	return p.window
}

// Close stops the title animation. The window itself goes away with the app.
func (p *Panel) Close() {
	p.cycler.Stop()
}
