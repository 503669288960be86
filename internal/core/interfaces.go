package core

import (
	"github.com/ytget/taskbar-widget/internal/config"
	"github.com/ytget/taskbar-widget/internal/model"
)

// Sink receives every update the widget produces. Methods may be called from
// any goroutine and must hand off to the rendering context without blocking.
type Sink interface {
	OnMediaUpdate(snap model.MediaSnapshot)
	OnPlaybackStateUpdate(state model.PlaybackState)
	OnLayoutPlan(plan model.LayoutPlan)
	OnTelemetry(sample model.TelemetrySample)
	OnSettings(values config.Values)
}
