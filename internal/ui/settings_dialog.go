package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
	"pkt.systems/pslog"

	"github.com/ytget/taskbar-widget/internal/config"
)

// SettingsDialog is a standalone window editing the persisted settings.
// The overlay strip is too small to host a dialog, so it opens its own window.
type SettingsDialog struct {
	app          fyne.App
	controller   Controller
	localization *Localization
	logger       pslog.Logger
	window       fyne.Window

	// UI components
	trafficCheck *widget.Check
	systemCheck  *widget.Check
	musicSelect  *widget.Select
	presetSelect *widget.Select
	form         *widget.Form
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(app fyne.App, controller Controller, localization *Localization, logger pslog.Logger) *SettingsDialog {
	sd := &SettingsDialog{
		app:          app,
		controller:   controller,
		localization: localization,
		logger:       logger,
	}

	sd.createUI()
	return sd
}

// Show loads the current settings and displays the window
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	if sd.window == nil {
		sd.window = sd.app.NewWindow(sd.localization.GetText(KeySettings))
		sd.window.SetContent(sd.form)
		sd.window.Resize(fyne.NewSize(SettingsWidth, SettingsHeight))
		sd.window.SetOnClosed(func() { sd.window = nil })
	}
	sd.window.Show()
}

// createUI creates the settings form
func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.trafficCheck = widget.NewCheck("", nil)
	sd.systemCheck = widget.NewCheck("", nil)

	sd.musicSelect = widget.NewSelect([]string{l.GetText(KeyMusicAlways), l.GetText(KeyMusicAuto)}, nil)

	presetOptions := []string{}
	for _, preset := range config.GetVizPresetOptions() {
		presetOptions = append(presetOptions, l.GetText(presetKeys[preset]))
	}
	sd.presetSelect = widget.NewSelect(presetOptions, nil)

	sd.form = &widget.Form{
		Items: []*widget.FormItem{
			{Text: l.GetText(KeyShowTraffic), Widget: sd.trafficCheck},
			{Text: l.GetText(KeyShowSystem), Widget: sd.systemCheck},
			{Text: l.GetText(KeyMusicSection), Widget: sd.musicSelect},
			{Text: l.GetText(KeyVisualizer), Widget: sd.presetSelect},
		},
		SubmitText: l.GetText(KeySave),
		CancelText: l.GetText(KeyCancel),
		OnSubmit:   sd.onSave,
		OnCancel:   sd.close,
	}
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	values := sd.controller.Settings()

	sd.trafficCheck.SetChecked(values.ShowTraffic)
	sd.systemCheck.SetChecked(values.ShowSystem)
	sd.musicSelect.SetSelectedIndex(musicModeIndex(values.MusicMode))
	sd.presetSelect.SetSelectedIndex(presetIndex(values.VizPreset))
}

// onSave applies changed values only, so untouched keys do not trigger replans
func (sd *SettingsDialog) onSave() {
	values := sd.controller.Settings()

	if sd.trafficCheck.Checked != values.ShowTraffic {
		sd.controller.SetShowTraffic(sd.trafficCheck.Checked)
	}
	if sd.systemCheck.Checked != values.ShowSystem {
		sd.controller.SetShowSystem(sd.systemCheck.Checked)
	}

	modes := config.GetMusicModeOptions()
	if i := sd.musicSelect.SelectedIndex(); i >= 0 && modes[i] != values.MusicMode {
		if err := sd.controller.SetMusicMode(modes[i]); err != nil {
			sd.logger.Warn("music mode not applied", "mode", modes[i], "err", err)
		}
	}

	presets := config.GetVizPresetOptions()
	if i := sd.presetSelect.SelectedIndex(); i >= 0 && presets[i] != values.VizPreset {
		if err := sd.controller.SetVizPreset(presets[i]); err != nil {
			sd.logger.Warn("visualizer preset not applied", "preset", presets[i], "err", err)
		}
	}

	sd.close()
}

func (sd *SettingsDialog) close() {
	if sd.window != nil {
		sd.window.Close()
	}
}

func musicModeIndex(mode config.MusicMode) int {
	for i, option := range config.GetMusicModeOptions() {
		if option == mode {
			return i
		}
	}
	return 0
}

func presetIndex(preset config.VizPreset) int {
	for i, option := range config.GetVizPresetOptions() {
		if option == preset {
			return i
		}
	}
	return 0
}
