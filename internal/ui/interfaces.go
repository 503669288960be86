package ui

import (
	"github.com/ytget/taskbar-widget/internal/config"
)

// Controller is the widget surface driven by the overlay buttons and tray menu
type Controller interface {
	Previous()
	PlayPause()
	Next()

	SetShowTraffic(show bool)
	SetShowSystem(show bool)
	SetMusicMode(mode config.MusicMode) error
	SetVizPreset(preset config.VizPreset) error
	Settings() config.Values
}
