package ui

import (
	"fyne.io/fyne/v2"

	"github.com/ytget/taskbar-widget/internal/config"
)

// presetKeys maps presets to their localized labels
var presetKeys = map[config.VizPreset]string{
	config.VizDefault: KeyPresetDefault,
	config.VizBass:    KeyPresetBass,
	config.VizTreble:  KeyPresetTreble,
	config.VizRock:    KeyPresetRock,
	config.VizPop:     KeyPresetPop,
}

// buildTrayMenu creates the tray menu with check marks reflecting values
func (o *Overlay) buildTrayMenu(values config.Values) *fyne.Menu {
	l := o.localization

	traffic := fyne.NewMenuItem(l.GetText(KeyShowTraffic), func() {
		if o.controller != nil {
			o.controller.SetShowTraffic(!o.controller.Settings().ShowTraffic)
		}
	})
	traffic.Checked = values.ShowTraffic

	system := fyne.NewMenuItem(l.GetText(KeyShowSystem), func() {
		if o.controller != nil {
			o.controller.SetShowSystem(!o.controller.Settings().ShowSystem)
		}
	})
	system.Checked = values.ShowSystem

	modes := make([]*fyne.MenuItem, 0, 2)
	for _, mode := range config.GetMusicModeOptions() {
		label := l.GetText(KeyMusicAlways)
		if mode == config.MusicModeAuto {
			label = l.GetText(KeyMusicAuto)
		}
		item := fyne.NewMenuItem(label, func() { o.setMusicMode(mode) })
		item.Checked = values.MusicMode == mode
		modes = append(modes, item)
	}
	music := fyne.NewMenuItem(l.GetText(KeyMusicSection), nil)
	music.ChildMenu = fyne.NewMenu("", modes...)

	presets := make([]*fyne.MenuItem, 0, len(presetKeys))
	for _, preset := range config.GetVizPresetOptions() {
		item := fyne.NewMenuItem(l.GetText(presetKeys[preset]), func() { o.setVizPreset(preset) })
		item.Checked = values.VizPreset == preset
		presets = append(presets, item)
	}
	viz := fyne.NewMenuItem(l.GetText(KeyVisualizer), nil)
	viz.ChildMenu = fyne.NewMenu("", presets...)

	settings := fyne.NewMenuItem(l.GetText(KeySettings)+"…", o.showSettings)

	quit := fyne.NewMenuItem(l.GetText(KeyQuit), func() { o.app.Quit() })
	quit.IsQuit = true

	return fyne.NewMenu(l.GetText(KeyAppTitle),
		traffic,
		system,
		fyne.NewMenuItemSeparator(),
		music,
		viz,
		settings,
		fyne.NewMenuItemSeparator(),
		quit,
	)
}

func (o *Overlay) setMusicMode(mode config.MusicMode) {
	if o.controller == nil {
		return
	}
	if err := o.controller.SetMusicMode(mode); err != nil {
		o.logger.Warn("music mode not applied", "mode", mode, "err", err)
	}
}

func (o *Overlay) setVizPreset(preset config.VizPreset) {
	if o.controller == nil {
		return
	}
	if err := o.controller.SetVizPreset(preset); err != nil {
		o.logger.Warn("visualizer preset not applied", "preset", preset, "err", err)
	}
}

func (o *Overlay) showSettings() {
	if o.controller == nil {
		return
	}
	if o.settingsDialog == nil {
		o.settingsDialog = NewSettingsDialog(o.app, o.controller, o.localization, o.logger)
	}
	o.settingsDialog.Show()
}
