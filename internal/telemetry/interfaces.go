package telemetry

import (
	"context"

	"github.com/ytget/taskbar-widget/internal/model"
)

// Counters are cumulative network byte counters across all interfaces
type Counters struct {
	BytesSent uint64
	BytesRecv uint64
}

// Reader reads raw host statistics
type Reader interface {
	CPUPercent(ctx context.Context) (float64, error)
	MemoryPercent(ctx context.Context) (float64, error)
	NetCounters(ctx context.Context) (Counters, error)
}

// Monitor defines the interface for the telemetry service
type Monitor interface {
	SetUpdateCallback(func(model.TelemetrySample))
	Start(ctx context.Context)
	Stop()
	Done() <-chan struct{}
}
