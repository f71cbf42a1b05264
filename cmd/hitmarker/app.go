package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/vedantwpatil/hitmarker/internal/assets"
	"github.com/vedantwpatil/hitmarker/internal/audio"
	"github.com/vedantwpatil/hitmarker/internal/autostart"
	"github.com/vedantwpatil/hitmarker/internal/config"
	"github.com/vedantwpatil/hitmarker/internal/logging"
	"github.com/vedantwpatil/hitmarker/internal/loop"
	"github.com/vedantwpatil/hitmarker/internal/overlay"
	"github.com/vedantwpatil/hitmarker/internal/settings"
	"github.com/vedantwpatil/hitmarker/internal/surface"
	"github.com/vedantwpatil/hitmarker/internal/tracking"
	"github.com/vedantwpatil/hitmarker/internal/ui"
)

const appID = "com.hitmarker.mlg"

// cuePlayer is played by the presenter and closed on quit.
type cuePlayer interface {
	overlay.Player
	Close()
}

type inputMonitor interface {
	Poll() tracking.Sample
	Close()
}

type Application struct {
	cli    CLI
	config *config.Config
	logger *zap.Logger

	bundle  *assets.Bundle
	store   *settings.Store
	player  cuePlayer
	monitor inputMonitor
	loop    *loop.Loop

	fyne  fyne.App
	panel *ui.Panel

	cleanupOnce sync.Once

	ctx    context.Context
	cancel context.CancelFunc
}

// NewApplication loads configuration and every asset. Any error here is a
// startup failure and nothing is left running.
func NewApplication(cli CLI) (*Application, error) {
	cfg, err := config.Load(viper.New())
	if err != nil {
		return nil, err
	}

	logger, err := logging.New(cfg.Log, nil)
	if err != nil {
		return nil, err
	}

	dir, err := assetDir(cfg.AssetDir)
	if err != nil {
		return nil, err
	}
	bundle, err := assets.Load(dir, assets.Names{
		Marker:    cfg.Assets.Marker,
		Sound:     cfg.Assets.Sound,
		Icon:      cfg.Assets.Icon,
		Thumbnail: cfg.Assets.Thumbnail,
	}, nil)
	if err != nil {
		return nil, err
	}

	player, err := audio.NewPlayer(bundle.SoundPath, logger)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Application{
		cli:    cli,
		config: cfg,
		logger: logger,
		bundle: bundle,
		store: settings.NewStore(settings.Settings{
			SoundEnabled:   cfg.Defaults.Sound,
			Volume:         cfg.Defaults.Volume,
			GraphicEnabled: cfg.Defaults.Graphic,
		}),
		player: player,
		loop:   loop.New(cfg.Timing.Poll, logger),
		ctx:    ctx,
		cancel: cancel,
	}, nil
}

// assetDir resolves a relative asset directory against the executable so a
// login launch with an unrelated working directory still finds the files.
func assetDir(configured string) (string, error) {
	if filepath.IsAbs(configured) {
		return configured, nil
	}
	exeDir, err := assets.ExecutableDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(exeDir, configured), nil
}

// Run blocks on the UI event loop until the user exits from the tray or a
// termination signal arrives.
func (app *Application) Run() error {
	defer app.logger.Sync() //nolint:errcheck

	app.fyne = fyneapp.NewWithID(appID)

	icon, err := fyne.LoadResourceFromPath(app.bundle.IconPath)
	if err != nil {
		app.logger.Warn("Failed to load icon", zap.String("path", app.bundle.IconPath), zap.Error(err))
	} else {
		app.fyne.SetIcon(icon)
	}

	entry, err := autostart.CurrentEntry(app.config.Autostart.Name, "minimized")
	var registrar autostart.Registrar
	if err != nil {
		app.logger.Warn("Launch at startup is unavailable", zap.Error(err))
		registrar = autostart.Unavailable(err)
	} else {
		registrar = autostart.New(entry, app.logger)
	}

	app.panel = ui.NewPanel(app.fyne, ui.PanelOptions{
		Store:     app.store,
		Registrar: registrar,
		Icon:      icon,
		Thumbnail: app.bundle.ThumbnailPath,
		Logger:    app.logger,
	})

	hasTray := ui.InstallTray(app.fyne, icon, app.panel.Restore, app.quit)
	if !hasTray {
		app.logger.Warn("System tray is unavailable, closing the panel will not keep the app reachable")
	}

	if err := app.startTracking(); err != nil {
		app.cleanup()
		return err
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go app.handleSignals(sigChan)

	if !app.cli.Minimized() || !hasTray {
		app.panel.Show()
	}

	app.logger.Info("Hitmarker running", zap.Bool("minimized", app.cli.Minimized()))
	app.fyne.Run()

	app.cleanup()
	return nil
}

// startTracking brings up the overlay on the loop goroutine. The window is
// created there so its messages are pumped on the same OS thread.
func (app *Application) startTracking() error {
	tracking.LogDisplays(app.logger, tracking.Displays())
	app.monitor = tracking.NewMonitor(tracking.Options{Logger: app.logger})

	var (
		window    *surface.Window
		presenter *overlay.Presenter
	)
	return app.loop.Start(loop.Hooks{
		Setup: func() error {
			w, err := surface.New(app.bundle.Marker, app.logger)
			if err != nil {
				return fmt.Errorf("failed to create overlay window: %w", err)
			}
			p, err := overlay.NewPresenter(overlay.Options{
				Debounce:  app.config.Timing.Debounce,
				Display:   app.config.Timing.Display,
				Surface:   w,
				Player:    app.player,
				Scheduler: app.loop,
				Logger:    app.logger,
			})
			if err != nil {
				w.Close()
				return err
			}
			window, presenter = w, p
			return nil
		},
		Tick: func(now time.Time) {
			window.Pump()
			presenter.Tick(now, app.monitor.Poll(), app.store.Snapshot())
		},
		Teardown: func() {
			presenter.Close()
			window.Close()
		},
	})
}

// quit releases the tick loop, the hook and audio before leaving the UI
// event loop.
func (app *Application) quit() {
	app.logger.Info("Exiting application")
	app.cancel()
	app.cleanup()
	app.fyne.Quit()
}

// cleanup stops the tick loop (and with it any pending hide), the input
// hook, audio and the panel animation, in that order. Only the first call
// does anything.
func (app *Application) cleanup() {
	app.cleanupOnce.Do(func() {
		if err := app.loop.Stop(); err != nil && !errors.Is(err, loop.ErrNotRunning) {
			app.logger.Warn("Failed to stop the tick loop", zap.Error(err))
		}
		if app.monitor != nil {
			app.monitor.Close()
		}
		app.player.Close()
		if app.panel != nil {
			app.panel.Close()
		}
		app.logger.Info("Hitmarker stopped")
	})
}

func (app *Application) handleSignals(sigChan chan os.Signal) {
	select {
	case sig := <-sigChan:
		app.logger.Info("Received signal", zap.Stringer("signal", sig))
		fyne.Do(app.quit)
	case <-app.ctx.Done():
	}
}
