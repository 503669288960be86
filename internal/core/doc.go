package core

// Package core wires the media poller, the telemetry sampler and the settings
// store to a presentation sink. It owns the latest media snapshot and the
// current layout plan and recomputes the plan whenever settings or music
// visibility change.
