package model

import "testing"

func TestTelemetrySample_Strings(t *testing.T) {
	sample := TelemetrySample{
		CPUPercent:      12.34,
		MemoryPercent:   56.78,
		UpBytesPerSec:   1.5 * 1024 * 1024,
		DownBytesPerSec: 0,
	}

	tests := []struct {
		name     string
		result   string
		expected string
	}{
		{"cpu", sample.GetCPUString(), "CPU: 12.3%"},
		{"memory", sample.GetMemoryString(), "MEM: 56.8%"},
		{"up", sample.GetUpString(), "▲ 1.50 MB/s"},
		{"down", sample.GetDownString(), "▼ 0.00 MB/s"},
	}

	for _, test := range tests {
		if test.result != test.expected {
			t.Errorf("%s: got %q, expected %q", test.name, test.result, test.expected)
		}
	}
}
