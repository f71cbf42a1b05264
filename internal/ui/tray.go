package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// InstallTray adds the Restore/Exit tray menu. It reports false when the
// driver has no system tray.
func InstallTray(a fyne.App, icon fyne.Resource, onRestore, onQuit func()) bool {
	desk, ok := a.(desktop.App)
	if !ok {
		return false
	}

	restore := fyne.NewMenuItem("Restore", onRestore)
	exit := fyne.NewMenuItem("Exit", onQuit)
	// Replaces the Quit entry fyne would otherwise append.
	exit.IsQuit = true

	desk.SetSystemTrayMenu(fyne.NewMenu(AppTitle, restore, exit))
	if icon != nil {
		desk.SetSystemTrayIcon(icon)
	}
	return true
}
