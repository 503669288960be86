package telemetry

import (
	"context"
	"fmt"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	psnet "github.com/shirou/gopsutil/v4/net"
)

// HostReader reads statistics of the local machine through gopsutil
type HostReader struct{}

// NewHostReader creates a reader for the local machine
func NewHostReader() *HostReader {
	return &HostReader{}
}

// CPUPercent returns total CPU usage since the previous call
func (HostReader) CPUPercent(ctx context.Context) (float64, error) {
	percents, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return 0, fmt.Errorf("failed to read cpu usage: %w", err)
	}
	if len(percents) == 0 {
		return 0, fmt.Errorf("no cpu usage reported")
	}
	return percents[0], nil
}

// MemoryPercent returns the share of physical memory in use
func (HostReader) MemoryPercent(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read memory usage: %w", err)
	}
	return vm.UsedPercent, nil
}

// NetCounters returns byte counters summed over all interfaces
func (HostReader) NetCounters(ctx context.Context) (Counters, error) {
	stats, err := psnet.IOCountersWithContext(ctx, false)
	if err != nil {
		return Counters{}, fmt.Errorf("failed to read network counters: %w", err)
	}
	if len(stats) == 0 {
		return Counters{}, fmt.Errorf("no network counters reported")
	}
	return Counters{BytesSent: stats[0].BytesSent, BytesRecv: stats[0].BytesRecv}, nil
}
