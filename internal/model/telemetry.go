package model

import (
	"fmt"
	"time"
)

const bytesPerMB = 1024 * 1024

// TelemetrySample holds one reading of the system sections
type TelemetrySample struct {
	CPUPercent      float64
	MemoryPercent   float64
	UpBytesPerSec   float64
	DownBytesPerSec float64
	At              time.Time
}

// GetCPUString returns the CPU line shown in the system section
func (ts TelemetrySample) GetCPUString() string {
	return fmt.Sprintf("CPU: %.1f%%", ts.CPUPercent)
}

// GetMemoryString returns the memory line shown in the system section
func (ts TelemetrySample) GetMemoryString() string {
	return fmt.Sprintf("MEM: %.1f%%", ts.MemoryPercent)
}

// GetUpString returns the upload rate in MB/s
func (ts TelemetrySample) GetUpString() string {
	return fmt.Sprintf("▲ %.2f MB/s", ts.UpBytesPerSec/bytesPerMB)
}

// GetDownString returns the download rate in MB/s
func (ts TelemetrySample) GetDownString() string {
	return fmt.Sprintf("▼ %.2f MB/s", ts.DownBytesPerSec/bytesPerMB)
}
