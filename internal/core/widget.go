package core

import (
	"context"
	"sync"
	"time"

	"pkt.systems/pslog"

	"github.com/ytget/taskbar-widget/internal/config"
	"github.com/ytget/taskbar-widget/internal/layout"
	"github.com/ytget/taskbar-widget/internal/media"
	"github.com/ytget/taskbar-widget/internal/model"
	"github.com/ytget/taskbar-widget/internal/telemetry"
)

// CommandTimeout bounds a single transport command
const CommandTimeout = 3 * time.Second

// Widget coordinates pollers, settings and the sink
type Widget struct {
	store      *config.Store
	poller     media.MediaPoller
	monitor    telemetry.Monitor
	controller media.Controller
	sink       Sink

	mu      sync.Mutex
	ctx     context.Context
	latest  model.MediaSnapshot
	plan    model.LayoutPlan
	started bool
}

// New creates a widget. monitor and controller may be nil.
func New(store *config.Store, poller media.MediaPoller, monitor telemetry.Monitor, controller media.Controller, sink Sink) *Widget {
	return &Widget{
		store:      store,
		poller:     poller,
		monitor:    monitor,
		controller: controller,
		sink:       sink,
		ctx:        context.Background(),
		latest:     model.EmptySnapshot(),
	}
}

// Start pushes the startup layout and settings, wires callbacks and starts
// the background loops. Calling it again has no effect.
func (w *Widget) Start(ctx context.Context) {
	w.mu.Lock()
	if w.started {
		w.mu.Unlock()
		return
	}
	w.started = true
	w.ctx = ctx

	values := w.store.Values()
	w.plan = layout.Reconcile(values, w.latest)
	w.sink.OnSettings(values)
	w.sink.OnLayoutPlan(w.plan)
	w.mu.Unlock()

	pslog.Ctx(ctx).Info("widget started", "layout", w.plan.String(), "music_mode", values.MusicMode)

	w.poller.SetMediaCallback(w.handleMedia)
	w.poller.SetPlaybackCallback(w.sink.OnPlaybackStateUpdate)
	w.poller.Start(ctx)

	if w.monitor != nil {
		w.monitor.SetUpdateCallback(w.sink.OnTelemetry)
		w.monitor.Start(ctx)
	}
}

// Stop asks the background loops to exit
func (w *Widget) Stop() {
	w.poller.Stop()
	if w.monitor != nil {
		w.monitor.Stop()
	}
}

// Done returns a channel closed once every background loop has exited
func (w *Widget) Done() <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		<-w.poller.Done()
		if w.monitor != nil {
			<-w.monitor.Done()
		}
	}()
	return done
}

// Plan returns the current layout plan
func (w *Widget) Plan() model.LayoutPlan {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append(model.LayoutPlan(nil), w.plan...)
}

// Latest returns the last delivered media snapshot
func (w *Widget) Latest() model.MediaSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.latest
}

// Settings returns the current settings record
func (w *Widget) Settings() config.Values {
	return w.store.Values()
}

// handleMedia runs on the poller goroutine
func (w *Widget) handleMedia(snap model.MediaSnapshot) {
	w.mu.Lock()
	prev := w.latest
	w.latest = snap
	if layout.NeedsReplan(w.store.MusicMode(), prev, snap) {
		w.replanLocked()
	}
	w.mu.Unlock()

	w.sink.OnMediaUpdate(snap)
}

// replanLocked recomputes the plan and pushes it when it changed
func (w *Widget) replanLocked() {
	plan := layout.Reconcile(w.store.Values(), w.latest)
	if plan.Equal(w.plan) {
		return
	}
	w.plan = plan
	pslog.Ctx(w.ctx).Debug("layout changed", "layout", plan.String())
	w.sink.OnLayoutPlan(plan)
}

// settingsChanged pushes the new record and replans
func (w *Widget) settingsChanged() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.sink.OnSettings(w.store.Values())
	if w.started {
		w.replanLocked()
	}
}

// SetShowTraffic toggles the network section
func (w *Widget) SetShowTraffic(show bool) {
	w.store.SetShowTraffic(show)
	w.settingsChanged()
}

// SetShowSystem toggles the CPU/memory section
func (w *Widget) SetShowSystem(show bool) {
	w.store.SetShowSystem(show)
	w.settingsChanged()
}

// SetMusicMode switches between always and auto music visibility
func (w *Widget) SetMusicMode(mode config.MusicMode) error {
	if err := w.store.SetMusicMode(mode); err != nil {
		return err
	}
	w.settingsChanged()
	return nil
}

// SetVizPreset changes the visualizer bias
func (w *Widget) SetVizPreset(preset config.VizPreset) error {
	if err := w.store.SetVizPreset(preset); err != nil {
		return err
	}
	w.mu.Lock()
	w.sink.OnSettings(w.store.Values())
	w.mu.Unlock()
	return nil
}

// Previous skips to the previous track
func (w *Widget) Previous() {
	w.command("previous", media.Controller.Previous)
}

// PlayPause toggles playback
func (w *Widget) PlayPause() {
	w.command("play_pause", media.Controller.PlayPause)
}

// Next skips to the next track
func (w *Widget) Next() {
	w.command("next", media.Controller.Next)
}

// command sends a transport command without waiting for it
func (w *Widget) command(name string, send func(media.Controller, context.Context)) {
	if w.controller == nil {
		return
	}
	w.mu.Lock()
	parent := w.ctx
	w.mu.Unlock()

	pslog.Ctx(parent).Debug("transport command", "command", name)
	go func() {
		ctx, cancel := context.WithTimeout(parent, CommandTimeout)
		defer cancel()
		send(w.controller, ctx)
	}()
}
