package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"pkt.systems/pslog"

	"github.com/ytget/taskbar-widget/internal/model"
)

// Default polling parameters
const (
	DefaultInterval          = 2 * time.Second
	DefaultQueryTimeout      = 5 * time.Second
	DefaultAttempts          = 2
	DefaultThumbnailMaxBytes = 4 << 20
)

// Options configures the poller
type Options struct {
	Interval          time.Duration // pause between the end of a cycle and the next start
	QueryTimeout      time.Duration // per-cycle deadline, 0 disables
	Attempts          int           // session query attempts per cycle
	ThumbnailMaxBytes int64         // thumbnails larger than this are dropped
}

func (o Options) withDefaults() Options {
	if o.Interval <= 0 {
		o.Interval = DefaultInterval
	}
	if o.QueryTimeout < 0 {
		o.QueryTimeout = 0
	}
	if o.Attempts < 1 {
		o.Attempts = DefaultAttempts
	}
	if o.ThumbnailMaxBytes <= 0 {
		o.ThumbnailMaxBytes = DefaultThumbnailMaxBytes
	}
	return o
}

// Poller repeatedly queries a Source and delivers snapshots and playback states
type Poller struct {
	source Source
	opts   Options

	mu          sync.Mutex
	running     bool
	unavailable bool
	stop        chan struct{}
	done        chan struct{}
	onMedia     func(model.MediaSnapshot)
	onPlayback  func(model.PlaybackState)

	openMu sync.Mutex
	opened bool

	failing atomic.Bool
}

// NewPoller creates a poller over source
func NewPoller(source Source, opts Options) *Poller {
	done := make(chan struct{})
	close(done)
	return &Poller{
		source: source,
		opts:   opts.withDefaults(),
		done:   done,
	}
}

// SetMediaCallback sets the callback receiving each cycle's snapshot
func (p *Poller) SetMediaCallback(callback func(model.MediaSnapshot)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onMedia = callback
}

// SetPlaybackCallback sets the callback receiving each cycle's playback state
func (p *Poller) SetPlaybackCallback(callback func(model.PlaybackState)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onPlayback = callback
}

// Start launches the polling loop and returns immediately. It is a no-op
// while a loop is running or after the capability was found unavailable.
// A loop that was asked to stop no longer counts as running: Start then
// launches a fresh loop that begins once the old one has exited.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.running && p.stop != nil {
		return
	}
	if p.unavailable {
		pslog.Ctx(ctx).Debug("media poller start ignored", "reason", "capability unavailable")
		return
	}

	prev := p.done
	p.running = true
	p.stop = make(chan struct{})
	p.done = make(chan struct{})
	go p.run(ctx, prev, p.stop, p.done)
}

// Stop asks the loop to exit after its current cycle. It never blocks and
// never interrupts an in-flight query; wait on Done to observe the exit.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
}

// Done returns a channel closed once the loop has exited
func (p *Poller) Done() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.done
}

// Unavailable reports whether polling was disabled for the process lifetime
func (p *Poller) Unavailable() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.unavailable
}

func (p *Poller) run(ctx context.Context, prev <-chan struct{}, stop <-chan struct{}, done chan struct{}) {
	logger := pslog.Ctx(ctx)
	defer func() {
		p.mu.Lock()
		if p.done == done {
			p.running = false
			p.stop = nil
		}
		p.mu.Unlock()
		close(done)
		logger.Debug("media poller stopped")
	}()

	// never overlap a previous loop finishing its in-flight cycle
	select {
	case <-prev:
	case <-stop:
		return
	case <-ctx.Done():
		return
	}

	logger.Debug("media poller started", "interval", p.opts.Interval, "query_timeout", p.opts.QueryTimeout)

	for {
		select {
		case <-stop:
			return
		case <-ctx.Done():
			return
		default:
		}

		if err := p.ensureOpen(ctx); err != nil {
			if errors.Is(err, ErrUnavailable) {
				logger.Warn("media session capability unavailable, polling disabled", "err", err)
				p.mu.Lock()
				p.unavailable = true
				p.mu.Unlock()
				p.deliver(model.EmptySnapshot(), model.PlaybackUnknown)
				return
			}
			p.noteFailure(logger, "media source open failed", err)
			p.deliver(model.EmptySnapshot(), model.PlaybackUnknown)
		} else {
			snap, state := p.PollOnce(ctx)
			p.deliver(snap, state)
		}

		timer := time.NewTimer(p.opts.Interval)
		select {
		case <-stop:
			timer.Stop()
			return
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
	}
}

// PollOnce runs a single query cycle without delivering the result.
// Every failure degrades to the empty snapshot and PlaybackUnknown.
func (p *Poller) PollOnce(ctx context.Context) (model.MediaSnapshot, model.PlaybackState) {
	logger := pslog.Ctx(ctx)

	if p.opts.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.QueryTimeout)
		defer cancel()
	}

	if err := p.ensureOpen(ctx); err != nil {
		p.noteFailure(logger, "media source open failed", err)
		return model.EmptySnapshot(), model.PlaybackUnknown
	}

	session, err := p.currentSession(ctx, logger)
	if err != nil {
		p.noteFailure(logger, "media session query failed", err)
		return model.EmptySnapshot(), model.PlaybackUnknown
	}
	p.noteRecovery(logger)

	if session == nil {
		return model.EmptySnapshot(), model.PlaybackUnknown
	}

	snap := model.MediaSnapshot{}
	var meta Metadata
	if err := guard("metadata", func() error {
		m, err := session.Metadata(ctx)
		meta = m
		return err
	}); err != nil {
		logger.Debug("media metadata read failed", "err", err)
	} else {
		snap.Title = meta.Title
		snap.Artist = meta.Artist
	}
	snap.Thumbnail = p.readThumbnail(ctx, logger, session)

	state := model.PlaybackUnknown
	if err := guard("playback state", func() error {
		s, err := session.PlaybackState(ctx)
		state = s
		return err
	}); err != nil {
		logger.Debug("media playback state read failed", "err", err)
		state = model.PlaybackUnknown
	}

	return snap, state
}

// ensureOpen opens the source once; failures other than ErrUnavailable are retried next cycle
func (p *Poller) ensureOpen(ctx context.Context) error {
	p.openMu.Lock()
	defer p.openMu.Unlock()

	if p.opened {
		return nil
	}
	if err := guard("open", func() error { return p.source.Open(ctx) }); err != nil {
		return err
	}
	p.opened = true
	return nil
}

// currentSession queries the active session with bounded attempts
func (p *Poller) currentSession(ctx context.Context, logger pslog.Logger) (Session, error) {
	var lastErr error

	for attempt := 1; attempt <= p.opts.Attempts; attempt++ {
		var session Session
		err := guard("session query", func() error {
			s, err := p.source.CurrentSession(ctx)
			session = s
			return err
		})
		if err == nil {
			return session, nil
		}

		lastErr = err
		logger.Debug("media session query attempt failed", "attempt", attempt, "err", err)

		if ctx.Err() != nil {
			break
		}
	}

	return nil, lastErr
}

// readThumbnail reads the artwork blob; any failure yields nil without
// affecting the rest of the snapshot
func (p *Poller) readThumbnail(ctx context.Context, logger pslog.Logger, session Session) []byte {
	var data []byte

	err := guard("thumbnail", func() error {
		rc, size, err := session.Thumbnail(ctx)
		if err != nil {
			return err
		}
		if rc == nil {
			return nil
		}
		defer rc.Close()

		max := p.opts.ThumbnailMaxBytes
		if size > max {
			return fmt.Errorf("thumbnail of %d bytes exceeds limit of %d", size, max)
		}
		limit := max + 1
		if size > 0 {
			limit = size
		}

		b, err := io.ReadAll(io.LimitReader(rc, limit))
		if err != nil {
			return err
		}
		if int64(len(b)) > max {
			return fmt.Errorf("thumbnail exceeds limit of %d bytes", max)
		}
		data = b
		return nil
	})
	if err != nil {
		logger.Debug("media thumbnail read failed", "err", err)
		return nil
	}
	if len(data) == 0 {
		return nil
	}
	return data
}

// deliver invokes both callbacks on the calling goroutine
func (p *Poller) deliver(snap model.MediaSnapshot, state model.PlaybackState) {
	p.mu.Lock()
	onMedia, onPlayback := p.onMedia, p.onPlayback
	p.mu.Unlock()

	if onMedia != nil {
		onMedia(snap)
	}
	if onPlayback != nil {
		onPlayback(state)
	}
}

// noteFailure logs the first failure of a streak as a warning and the rest at debug
func (p *Poller) noteFailure(logger pslog.Logger, msg string, err error) {
	if p.failing.Swap(true) {
		logger.Debug(msg, "err", err)
		return
	}
	logger.Warn(msg, "err", err)
}

func (p *Poller) noteRecovery(logger pslog.Logger) {
	if p.failing.Swap(false) {
		logger.Info("media session query recovered")
	}
}

// guard runs fn and converts a panic into an error
func guard(op string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s panicked: %v", op, r)
		}
	}()
	return fn()
}
