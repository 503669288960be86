package model

// Package model defines the values exchanged between the media poller, the
// telemetry sampler, the layout reconciler and the presentation layer. Every
// value is replaced wholesale on update, never mutated in place.
