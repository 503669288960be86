package ui

import (
	"bytes"
	"context"
	"image/color"
	"math/rand/v2"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"pkt.systems/pslog"

	"github.com/ytget/taskbar-widget/internal/config"
	"github.com/ytget/taskbar-widget/internal/model"
)

// Overlay is the widget strip. It implements core.Sink.
type Overlay struct {
	app          fyne.App
	window       fyne.Window
	localization *Localization
	controller   Controller
	logger       pslog.Logger

	row      *fyne.Container
	sections map[model.Section]fyne.CanvasObject

	// Music section
	artwork     *canvas.Image
	artworkText *canvas.Text
	title       *canvas.Text
	prevBtn     *widget.Button
	playBtn     *widget.Button
	nextBtn     *widget.Button
	bars        []*canvas.Rectangle

	// Network and system sections
	upText   *canvas.Text
	downText *canvas.Text
	cpuText  *canvas.Text
	memText  *canvas.Text

	closeBtn       *widget.Button
	trayMenu       *fyne.Menu
	settingsDialog *SettingsDialog

	// Owned by the Fyne main loop
	plan      model.LayoutPlan
	thumbnail []byte

	// Shared with the animation goroutine
	mu      sync.Mutex
	playing bool
	preset  config.VizPreset
}

// NewOverlayWindow creates a borderless window where the driver supports one
func NewOverlayWindow(app fyne.App, title string) fyne.Window {
	if drv, ok := app.Driver().(desktop.Driver); ok {
		w := drv.CreateSplashWindow()
		w.SetTitle(title)
		return w
	}
	w := app.NewWindow(title)
	w.SetFixedSize(true)
	return w
}

// NewOverlay builds the strip inside window. Nothing is shown until the
// first layout plan arrives.
func NewOverlay(app fyne.App, window fyne.Window, localization *Localization, logger pslog.Logger) *Overlay {
	o := &Overlay{
		app:          app,
		window:       window,
		localization: localization,
		logger:       logger,
		preset:       config.DefaultVizPreset,
	}

	o.setupUI()
	return o
}

// SetController connects buttons and tray actions to the widget
func (o *Overlay) SetController(controller Controller) {
	o.controller = controller
}

// setupUI creates all sections once; layout plans only rearrange them
func (o *Overlay) setupUI() {
	o.sections = map[model.Section]fyne.CanvasObject{
		model.SectionMusic:   o.createMusicSection(),
		model.SectionSepA:    newSeparator(),
		model.SectionNetwork: o.createNetworkSection(),
		model.SectionSepB:    newSeparator(),
		model.SectionSystem:  o.createSystemSection(),
		model.SectionClose:   o.createCloseButton(),
	}

	o.row = container.NewHBox()
	background := canvas.NewRectangle(BackgroundColor)
	o.window.SetContent(container.NewStack(background, container.NewPadded(o.row)))
	o.window.SetPadded(false)
}

func (o *Overlay) createMusicSection() fyne.CanvasObject {
	placeholder := canvas.NewRectangle(ArtworkColor)
	placeholder.SetMinSize(fyne.NewSize(ThumbnailSize, ThumbnailSize))

	o.artworkText = canvas.NewText(IconMusic, ForegroundColor)
	o.artworkText.TextSize = ThumbnailSize / 2

	o.artwork = canvas.NewImageFromResource(nil)
	o.artwork.FillMode = canvas.ImageFillContain
	o.artwork.SetMinSize(fyne.NewSize(ThumbnailSize, ThumbnailSize))
	o.artwork.Hide()

	artworkBox := container.NewStack(placeholder, container.NewCenter(o.artworkText), o.artwork)

	o.title = canvas.NewText(o.localization.GetText(KeyNoMusic), ForegroundColor)
	o.title.TextSize = TitleTextSize
	o.title.TextStyle = fyne.TextStyle{Bold: true}

	o.prevBtn = o.newTransportButton(IconPrevious, func(c Controller) { c.Previous() })
	o.playBtn = o.newTransportButton(IconPlayPause, func(c Controller) { c.PlayPause() })
	o.nextBtn = o.newTransportButton(IconNext, func(c Controller) { c.Next() })

	controls := container.NewHBox(o.prevBtn, o.playBtn, o.nextBtn, o.createVisualizer())
	info := container.NewVBox(o.title, controls)

	return container.NewHBox(artworkBox, info)
}

func (o *Overlay) newTransportButton(label string, send func(Controller)) *widget.Button {
	btn := widget.NewButton(label, func() {
		if o.controller != nil {
			send(o.controller)
		}
	})
	btn.Importance = widget.LowImportance
	return btn
}

func (o *Overlay) createVisualizer() fyne.CanvasObject {
	o.bars = make([]*canvas.Rectangle, BarCount)
	objects := make([]fyne.CanvasObject, BarCount)
	for i := range o.bars {
		o.bars[i] = canvas.NewRectangle(VisualizerColor)
		objects[i] = o.bars[i]
	}

	spacer := canvas.NewRectangle(BackgroundColor)
	spacer.SetMinSize(fyne.NewSize(BarCount*(BarWidth+1), BarMaxHeight))

	o.applyBars(IdleBars())
	return container.NewCenter(container.NewStack(spacer, container.NewWithoutLayout(objects...)))
}

func (o *Overlay) createNetworkSection() fyne.CanvasObject {
	var zero model.TelemetrySample
	o.upText = newText(zero.GetUpString(), UploadColor)
	o.downText = newText(zero.GetDownString(), DownloadColor)
	return container.NewVBox(o.upText, o.downText)
}

func (o *Overlay) createSystemSection() fyne.CanvasObject {
	var zero model.TelemetrySample
	o.cpuText = newText(zero.GetCPUString(), ForegroundColor)
	o.memText = newText(zero.GetMemoryString(), ForegroundColor)
	return container.NewVBox(o.cpuText, o.memText)
}

func (o *Overlay) createCloseButton() fyne.CanvasObject {
	o.closeBtn = widget.NewButton(IconClose, func() { o.app.Quit() })
	o.closeBtn.Importance = widget.DangerImportance
	return container.NewCenter(o.closeBtn)
}

func newText(text string, c color.Color) *canvas.Text {
	t := canvas.NewText(text, c)
	t.TextSize = TextSize
	return t
}

func newSeparator() fyne.CanvasObject {
	line := canvas.NewRectangle(SeparatorColor)
	line.SetMinSize(fyne.NewSize(SeparatorWidth, WidgetMinHeight-2*SectionPadding))
	return container.NewPadded(line)
}

// OnMediaUpdate implements core.Sink
func (o *Overlay) OnMediaUpdate(snap model.MediaSnapshot) {
	fyne.Do(func() { o.applyMedia(snap) })
}

// OnPlaybackStateUpdate implements core.Sink
func (o *Overlay) OnPlaybackStateUpdate(state model.PlaybackState) {
	fyne.Do(func() { o.applyPlayback(state) })
}

// OnLayoutPlan implements core.Sink
func (o *Overlay) OnLayoutPlan(plan model.LayoutPlan) {
	fyne.Do(func() { o.applyPlan(plan) })
}

// OnTelemetry implements core.Sink
func (o *Overlay) OnTelemetry(sample model.TelemetrySample) {
	fyne.Do(func() { o.applyTelemetry(sample) })
}

// OnSettings implements core.Sink
func (o *Overlay) OnSettings(values config.Values) {
	fyne.Do(func() { o.applySettings(values) })
}

func (o *Overlay) applyMedia(snap model.MediaSnapshot) {
	if snap.HasTitle() {
		o.title.Text = truncate(snap.GetDisplayTitle(), TitleMaxRunes)
	} else {
		o.title.Text = o.localization.GetText(KeyNoMusic)
	}
	o.title.Refresh()

	if !snap.HasThumbnail() {
		o.thumbnail = nil
		o.artwork.Hide()
		o.artworkText.Show()
		return
	}
	if bytes.Equal(o.thumbnail, snap.Thumbnail) {
		return
	}

	o.thumbnail = snap.Thumbnail
	o.artwork.Resource = NewThumbnailResource(snap.Thumbnail)
	o.artwork.Show()
	o.artwork.Refresh()
	o.artworkText.Hide()
}

func (o *Overlay) applyPlayback(state model.PlaybackState) {
	switch state {
	case model.PlaybackPlaying:
		o.playBtn.SetText(IconPause)
	case model.PlaybackPaused:
		o.playBtn.SetText(IconPlay)
	default:
		o.playBtn.SetText(IconPlayPause)
	}

	o.mu.Lock()
	o.playing = state == model.PlaybackPlaying
	o.mu.Unlock()

	if state != model.PlaybackPlaying {
		o.applyBars(IdleBars())
	}
}

func (o *Overlay) applyPlan(plan model.LayoutPlan) {
	o.plan = plan

	objects := make([]fyne.CanvasObject, 0, len(plan))
	for _, section := range plan {
		if obj, ok := o.sections[section]; ok {
			objects = append(objects, obj)
		}
	}
	o.row.Objects = objects
	o.row.Refresh()

	if content := o.window.Content(); content != nil {
		o.window.Resize(content.MinSize())
	}
}

func (o *Overlay) applyTelemetry(sample model.TelemetrySample) {
	o.upText.Text = sample.GetUpString()
	o.downText.Text = sample.GetDownString()
	o.cpuText.Text = sample.GetCPUString()
	o.memText.Text = sample.GetMemoryString()

	o.upText.Refresh()
	o.downText.Refresh()
	o.cpuText.Refresh()
	o.memText.Refresh()
}

func (o *Overlay) applySettings(values config.Values) {
	o.mu.Lock()
	o.preset = values.VizPreset
	o.mu.Unlock()

	o.trayMenu = o.buildTrayMenu(values)
	if desk, ok := o.app.(desktop.App); ok {
		desk.SetSystemTrayMenu(o.trayMenu)
	}
}

func (o *Overlay) applyBars(heights [BarCount]float32) {
	for i, bar := range o.bars {
		h := heights[i] * BarMaxHeight
		bar.Resize(fyne.NewSize(BarWidth, h))
		bar.Move(fyne.NewPos(float32(i)*(BarWidth+1), BarMaxHeight-h))
		bar.Refresh()
	}
}

// Animate drives the visualizer until ctx is done. Frames are only produced
// while the player reports Playing.
func (o *Overlay) Animate(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultVizFrameInterval
	}
	rnd := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x5eed))

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			o.mu.Lock()
			playing, preset := o.playing, o.preset
			o.mu.Unlock()
			if !playing {
				continue
			}

			frame := Bars(preset, rnd)
			fyne.Do(func() { o.applyBars(frame) })
		}
	}()
}

// Plan returns the plan currently shown. Call from the Fyne main loop.
func (o *Overlay) Plan() model.LayoutPlan {
	return o.plan
}

// truncate shortens s to max runes, marking the cut with an ellipsis
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + Ellipsis
}
