package media

import (
	"context"
	"errors"
	"io"

	"github.com/ytget/taskbar-widget/internal/model"
)

// ErrUnavailable marks a media capability that cannot exist for this process.
// Polling stops permanently when Source.Open reports it.
var ErrUnavailable = errors.New("media session capability unavailable")

// Metadata is the raw text metadata reported by a session
type Metadata struct {
	Title    string
	Artist   string
	ArtURL   string // artwork location, if the player publishes one
	TrackURL string // location of the playing track
}

// Source is the OS media session capability
type Source interface {
	// Open prepares the capability. Errors wrapping ErrUnavailable are terminal.
	Open(ctx context.Context) error

	// CurrentSession returns the active session, or nil when nothing is playing
	CurrentSession(ctx context.Context) (Session, error)

	Close() error
}

// Session is one player's media session
type Session interface {
	Metadata(ctx context.Context) (Metadata, error)

	// Thumbnail returns the artwork stream and its reported size (<= 0 if
	// unknown). A nil reader with a nil error means there is no artwork.
	Thumbnail(ctx context.Context) (io.ReadCloser, int64, error)

	PlaybackState(ctx context.Context) (model.PlaybackState, error)
}

// Controller sends transport commands to the active player.
// Commands are fire-and-forget; state feedback comes from the next poll.
type Controller interface {
	Previous(ctx context.Context)
	PlayPause(ctx context.Context)
	Next(ctx context.Context)
}

// MediaPoller defines the interface for the polling service
type MediaPoller interface {
	// SetMediaCallback registers callback A: the snapshot of each cycle
	SetMediaCallback(func(model.MediaSnapshot))

	// SetPlaybackCallback registers callback B: the playback state of each cycle
	SetPlaybackCallback(func(model.PlaybackState))

	Start(ctx context.Context)
	Stop()
	Done() <-chan struct{}
	PollOnce(ctx context.Context) (model.MediaSnapshot, model.PlaybackState)
}
