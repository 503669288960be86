package telemetry

// Package telemetry samples host CPU, memory and network counters for the
// system and network sections of the widget.
