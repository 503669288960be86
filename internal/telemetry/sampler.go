package telemetry

import (
	"context"
	"sync"
	"time"

	"pkt.systems/pslog"

	"github.com/ytget/taskbar-widget/internal/model"
)

const (
	// DefaultInterval is the pause between samples
	DefaultInterval = time.Second

	// MinRateWindow is the shortest counter window rates are computed over
	MinRateWindow = 500 * time.Millisecond
)

// Sampler periodically reads host statistics and publishes samples
type Sampler struct {
	reader   Reader
	interval time.Duration
	now      func() time.Time

	mu       sync.Mutex
	running  bool
	stop     chan struct{}
	done     chan struct{}
	onUpdate func(model.TelemetrySample) // callback for UI updates

	// rate state, owned by the sampling goroutine
	last     Counters
	lastAt   time.Time
	haveLast bool
	up, down float64
}

// NewSampler creates a sampler over reader
func NewSampler(reader Reader, interval time.Duration) *Sampler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	done := make(chan struct{})
	close(done)
	return &Sampler{
		reader:   reader,
		interval: interval,
		now:      time.Now,
		done:     done,
	}
}

// SetUpdateCallback sets the callback function for sample updates
func (s *Sampler) SetUpdateCallback(callback func(model.TelemetrySample)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onUpdate = callback
}

// Start launches the sampling loop; it is a no-op while one is running.
// After Stop a new loop is launched that waits for the old one to exit.
func (s *Sampler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running && s.stop != nil {
		return
	}
	prev := s.done
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	go s.run(ctx, prev, s.stop, s.done)
}

// Stop asks the loop to exit without waiting for it
func (s *Sampler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stop != nil {
		close(s.stop)
		s.stop = nil
	}
}

// Done returns a channel closed once the loop has exited
func (s *Sampler) Done() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.done
}

func (s *Sampler) run(ctx context.Context, prev <-chan struct{}, stop <-chan struct{}, done chan struct{}) {
	defer func() {
		s.mu.Lock()
		if s.done == done {
			s.running = false
			s.stop = nil
		}
		s.mu.Unlock()
		close(done)
	}()

	select {
	case <-prev:
	case <-stop:
		return
	case <-ctx.Done():
		return
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if sample, ok := s.sample(ctx); ok {
			s.notifyUpdate(sample)
		}

		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// sample takes one reading. A failed read skips the whole cycle.
func (s *Sampler) sample(ctx context.Context) (model.TelemetrySample, bool) {
	logger := pslog.Ctx(ctx)

	cpuPercent, err := s.reader.CPUPercent(ctx)
	if err != nil {
		logger.Debug("telemetry sample skipped", "err", err)
		return model.TelemetrySample{}, false
	}
	memPercent, err := s.reader.MemoryPercent(ctx)
	if err != nil {
		logger.Debug("telemetry sample skipped", "err", err)
		return model.TelemetrySample{}, false
	}
	counters, err := s.reader.NetCounters(ctx)
	if err != nil {
		logger.Debug("telemetry sample skipped", "err", err)
		return model.TelemetrySample{}, false
	}

	now := s.now()
	s.updateRates(counters, now)

	return model.TelemetrySample{
		CPUPercent:      cpuPercent,
		MemoryPercent:   memPercent,
		UpBytesPerSec:   s.up,
		DownBytesPerSec: s.down,
		At:              now,
	}, true
}

// updateRates recomputes rates when the window since the last baseline is
// long enough; otherwise the previous rates and baseline are kept
func (s *Sampler) updateRates(counters Counters, now time.Time) {
	if !s.haveLast {
		s.last, s.lastAt, s.haveLast = counters, now, true
		return
	}

	elapsed := now.Sub(s.lastAt)
	if elapsed < MinRateWindow {
		return
	}

	seconds := elapsed.Seconds()
	s.up = delta(s.last.BytesSent, counters.BytesSent) / seconds
	s.down = delta(s.last.BytesRecv, counters.BytesRecv) / seconds
	s.last, s.lastAt = counters, now
}

// delta treats a counter that went backwards (interface reset) as no traffic
func delta(prev, next uint64) float64 {
	if next < prev {
		return 0
	}
	return float64(next - prev)
}

// notifyUpdate calls the update callback if set
func (s *Sampler) notifyUpdate(sample model.TelemetrySample) {
	s.mu.Lock()
	onUpdate := s.onUpdate
	s.mu.Unlock()

	if onUpdate != nil {
		onUpdate(sample)
	}
}
