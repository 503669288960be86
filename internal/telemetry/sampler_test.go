package telemetry

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"pkt.systems/pslog"

	"github.com/ytget/taskbar-widget/internal/model"
)

type fakeReader struct {
	mu       sync.Mutex
	cpu      float64
	mem      float64
	counters Counters
	err      error
}

func (f *fakeReader) CPUPercent(ctx context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cpu, f.err
}

func (f *fakeReader) MemoryPercent(ctx context.Context) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.mem, nil
}

func (f *fakeReader) NetCounters(ctx context.Context) (Counters, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counters, nil
}

func (f *fakeReader) set(counters Counters) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters = counters
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func quietContext() context.Context {
	logger := pslog.NewWithOptions(io.Discard, pslog.Options{Mode: pslog.ModeStructured, NoColor: true})
	return pslog.ContextWithLogger(context.Background(), logger)
}

func newTestSampler(reader Reader) (*Sampler, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	sampler := NewSampler(reader, time.Second)
	sampler.now = clock.now
	return sampler, clock
}

func TestNewSampler(t *testing.T) {
	sampler := NewSampler(&fakeReader{}, 0)

	if sampler.interval != DefaultInterval {
		t.Errorf("Expected default interval %s, got %s", DefaultInterval, sampler.interval)
	}

	select {
	case <-sampler.Done():
	default:
		t.Error("Done should be closed before Start")
	}
}

func TestSample_FirstReadingHasNoRates(t *testing.T) {
	reader := &fakeReader{cpu: 12.5, mem: 40, counters: Counters{BytesSent: 1000, BytesRecv: 5000}}
	sampler, _ := newTestSampler(reader)

	sample, ok := sampler.sample(quietContext())
	if !ok {
		t.Fatal("Expected a sample")
	}

	if sample.CPUPercent != 12.5 || sample.MemoryPercent != 40 {
		t.Errorf("Unexpected cpu/mem %v/%v", sample.CPUPercent, sample.MemoryPercent)
	}
	if sample.UpBytesPerSec != 0 || sample.DownBytesPerSec != 0 {
		t.Errorf("Expected zero rates on first reading, got %v/%v", sample.UpBytesPerSec, sample.DownBytesPerSec)
	}
}

func TestSample_RatesFromDeltas(t *testing.T) {
	reader := &fakeReader{counters: Counters{BytesSent: 1000, BytesRecv: 1000}}
	sampler, clock := newTestSampler(reader)
	ctx := quietContext()

	sampler.sample(ctx)

	clock.advance(2 * time.Second)
	reader.set(Counters{BytesSent: 3000, BytesRecv: 2 * 1024 * 1024 * 2})
	sample, _ := sampler.sample(ctx)

	if sample.UpBytesPerSec != 1000 {
		t.Errorf("Expected 1000 B/s up, got %v", sample.UpBytesPerSec)
	}
	expectedDown := float64(2*1024*1024*2-1000) / 2
	if sample.DownBytesPerSec != expectedDown {
		t.Errorf("Expected %v B/s down, got %v", expectedDown, sample.DownBytesPerSec)
	}
}

func TestSample_ShortWindowKeepsPreviousRates(t *testing.T) {
	reader := &fakeReader{counters: Counters{BytesSent: 0, BytesRecv: 0}}
	sampler, clock := newTestSampler(reader)
	ctx := quietContext()

	sampler.sample(ctx)
	clock.advance(time.Second)
	reader.set(Counters{BytesSent: 500, BytesRecv: 500})
	first, _ := sampler.sample(ctx)

	clock.advance(100 * time.Millisecond)
	reader.set(Counters{BytesSent: 100000, BytesRecv: 100000})
	second, _ := sampler.sample(ctx)

	if second.UpBytesPerSec != first.UpBytesPerSec || second.DownBytesPerSec != first.DownBytesPerSec {
		t.Errorf("Rates must not change within %s, got %v then %v", MinRateWindow, first, second)
	}

	// The short window must not have moved the baseline
	clock.advance(400 * time.Millisecond)
	third, _ := sampler.sample(ctx)
	expected := float64(100000-500) / 0.5
	if third.UpBytesPerSec != expected {
		t.Errorf("Expected %v B/s over the full window, got %v", expected, third.UpBytesPerSec)
	}
}

func TestSample_CounterResetCountsAsZero(t *testing.T) {
	reader := &fakeReader{counters: Counters{BytesSent: 9000, BytesRecv: 9000}}
	sampler, clock := newTestSampler(reader)
	ctx := quietContext()

	sampler.sample(ctx)
	clock.advance(time.Second)
	reader.set(Counters{BytesSent: 10, BytesRecv: 10})
	sample, _ := sampler.sample(ctx)

	if sample.UpBytesPerSec != 0 || sample.DownBytesPerSec != 0 {
		t.Errorf("Expected zero rates after counter reset, got %v/%v", sample.UpBytesPerSec, sample.DownBytesPerSec)
	}
}

func TestSample_ReadErrorSkipsCycle(t *testing.T) {
	reader := &fakeReader{err: errors.New("proc unavailable")}
	sampler, _ := newTestSampler(reader)

	if _, ok := sampler.sample(quietContext()); ok {
		t.Error("Expected the cycle to be skipped")
	}
}

func TestSampler_StartPublishesAndStops(t *testing.T) {
	reader := &fakeReader{cpu: 5, mem: 6}
	sampler := NewSampler(reader, 10*time.Millisecond)

	updates := make(chan model.TelemetrySample, 16)
	sampler.SetUpdateCallback(func(sample model.TelemetrySample) {
		select {
		case updates <- sample:
		default:
		}
	})

	ctx := quietContext()
	sampler.Start(ctx)
	sampler.Start(ctx)

	select {
	case sample := <-updates:
		if sample.CPUPercent != 5 {
			t.Errorf("Expected cpu 5, got %v", sample.CPUPercent)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Expected a telemetry update")
	}

	sampler.Stop()
	select {
	case <-sampler.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Sampler did not stop")
	}
}

func TestSampler_RestartAfterStop(t *testing.T) {
	reader := &fakeReader{cpu: 5, mem: 6}
	sampler := NewSampler(reader, 10*time.Millisecond)

	var mu sync.Mutex
	count := 0
	sampler.SetUpdateCallback(func(model.TelemetrySample) {
		mu.Lock()
		defer mu.Unlock()
		count++
	})
	samples := func() int {
		mu.Lock()
		defer mu.Unlock()
		return count
	}

	ctx := quietContext()
	sampler.Start(ctx)
	sampler.Stop()
	sampler.Start(ctx)

	before := samples()
	deadline := time.Now().Add(2 * time.Second)
	for samples() < before+3 {
		if time.Now().After(deadline) {
			t.Fatal("Sampler should keep sampling after Stop then Start")
		}
		time.Sleep(5 * time.Millisecond)
	}

	sampler.Stop()
	select {
	case <-sampler.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("Sampler did not stop")
	}
}
