package model

// PlaybackState represents whether the active media session is playing
type PlaybackState int

const (
	// PlaybackUnknown means there is no session or its state could not be read
	PlaybackUnknown PlaybackState = iota

	// PlaybackPlaying means the session reports active playback
	PlaybackPlaying

	// PlaybackPaused means the session is paused or stopped
	PlaybackPaused
)

// String returns the string representation of PlaybackState
func (ps PlaybackState) String() string {
	switch ps {
	case PlaybackPlaying:
		return "Playing"
	case PlaybackPaused:
		return "Paused"
	default:
		return "Unknown"
	}
}

// IsPlaying reports the optional "is playing" flag carried by the state.
// The second result is false when the state is unknown.
func (ps PlaybackState) IsPlaying() (playing bool, known bool) {
	switch ps {
	case PlaybackPlaying:
		return true, true
	case PlaybackPaused:
		return false, true
	default:
		return false, false
	}
}

// PlaybackStateFromMPRIS maps an MPRIS PlaybackStatus string to a PlaybackState
func PlaybackStateFromMPRIS(status string) PlaybackState {
	switch status {
	case "Playing":
		return PlaybackPlaying
	case "Paused", "Stopped":
		return PlaybackPaused
	default:
		return PlaybackUnknown
	}
}
