package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/godbus/dbus/v5"
	"pkt.systems/pslog"

	"github.com/ytget/taskbar-widget/internal/model"
)

// MPRIS names on the session bus
const (
	mprisBusPrefix      = "org.mpris.MediaPlayer2."
	mprisObjectPath     = dbus.ObjectPath("/org/mpris/MediaPlayer2")
	mprisPlayerIface    = "org.mpris.MediaPlayer2.Player"
	dbusPropertiesGet   = "org.freedesktop.DBus.Properties.Get"
	dbusListNames       = "org.freedesktop.DBus.ListNames"
	mprisPlaybackStatus = "PlaybackStatus"
	mprisMetadata       = "Metadata"
)

// MPRIS transport methods
const (
	methodPrevious  = "Previous"
	methodPlayPause = "PlayPause"
	methodNext      = "Next"
)

const artFetchTimeout = 10 * time.Second

// MPRISSource reads media sessions published by players over MPRIS.
// It serves as both the poller's Source and the widget's Controller.
type MPRISSource struct {
	connect func() (*dbus.Conn, error)
	client  *http.Client

	mu   sync.Mutex
	conn *dbus.Conn
}

// NewMPRISSource creates a source on the user's session bus
func NewMPRISSource() *MPRISSource {
	return &MPRISSource{
		connect: func() (*dbus.Conn, error) { return dbus.ConnectSessionBus() },
		client:  &http.Client{Timeout: artFetchTimeout},
	}
}

// Open connects to the session bus. A machine without a session bus has no
// media session capability at all, so connection failure is terminal.
func (s *MPRISSource) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil && s.conn.Connected() {
		return nil
	}
	conn, err := s.connect()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	s.conn = conn
	pslog.Ctx(ctx).Debug("session bus connected")
	return nil
}

// Close releases the bus connection
func (s *MPRISSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

// bus returns a live connection, reconnecting after the bus dropped us
func (s *MPRISSource) bus() (*dbus.Conn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn != nil && s.conn.Connected() {
		return s.conn, nil
	}
	conn, err := s.connect()
	if err != nil {
		return nil, fmt.Errorf("session bus reconnect failed: %w", err)
	}
	s.conn = conn
	return conn, nil
}

// CurrentSession returns the session of the most relevant player, or nil
// when no player is registered
func (s *MPRISSource) CurrentSession(ctx context.Context) (Session, error) {
	conn, err := s.bus()
	if err != nil {
		return nil, err
	}

	var names []string
	if err := conn.BusObject().CallWithContext(ctx, dbusListNames, 0).Store(&names); err != nil {
		return nil, fmt.Errorf("failed to list bus names: %w", err)
	}

	players := filterPlayers(names)
	if len(players) == 0 {
		return nil, nil
	}

	statuses := make(map[string]string, len(players))
	for _, name := range players {
		status, err := readString(ctx, conn.Object(name, mprisObjectPath), mprisPlaybackStatus)
		if err != nil {
			continue
		}
		statuses[name] = status
	}

	name := pickPlayer(players, statuses)
	return &mprisSession{
		name:   name,
		obj:    conn.Object(name, mprisObjectPath),
		client: s.client,
	}, nil
}

// Previous skips to the previous track of the active player
func (s *MPRISSource) Previous(ctx context.Context) {
	s.send(ctx, methodPrevious)
}

// PlayPause toggles playback of the active player
func (s *MPRISSource) PlayPause(ctx context.Context) {
	s.send(ctx, methodPlayPause)
}

// Next skips to the next track of the active player
func (s *MPRISSource) Next(ctx context.Context) {
	s.send(ctx, methodNext)
}

func (s *MPRISSource) send(ctx context.Context, method string) {
	logger := pslog.Ctx(ctx).With("command", method)

	session, err := s.CurrentSession(ctx)
	if err != nil {
		logger.Warn("media command dropped", "err", err)
		return
	}
	if session == nil {
		logger.Debug("media command dropped", "reason", "no active player")
		return
	}

	ms := session.(*mprisSession)
	call := ms.obj.GoWithContext(ctx, mprisPlayerIface+"."+method, dbus.FlagNoReplyExpected, nil)
	if call.Err != nil {
		logger.Warn("media command failed", "player", ms.name, "err", call.Err)
		return
	}
	logger.Debug("media command sent", "player", ms.name)
}

// mprisSession is one player object. Metadata is cached for the thumbnail read.
type mprisSession struct {
	name   string
	obj    dbus.BusObject
	client *http.Client

	meta   *Metadata
	metaMu sync.Mutex
}

func (m *mprisSession) Metadata(ctx context.Context) (Metadata, error) {
	m.metaMu.Lock()
	defer m.metaMu.Unlock()

	if m.meta != nil {
		return *m.meta, nil
	}

	variant, err := readProperty(ctx, m.obj, mprisMetadata)
	if err != nil {
		return Metadata{}, err
	}
	fields, ok := variant.Value().(map[string]dbus.Variant)
	if !ok {
		return Metadata{}, fmt.Errorf("unexpected metadata signature %s", variant.Signature())
	}

	meta := parseMetadata(fields)
	m.meta = &meta
	return meta, nil
}

func (m *mprisSession) Thumbnail(ctx context.Context) (io.ReadCloser, int64, error) {
	meta, err := m.Metadata(ctx)
	if err != nil {
		return nil, 0, err
	}
	return openArtwork(ctx, m.client, meta)
}

func (m *mprisSession) PlaybackState(ctx context.Context) (model.PlaybackState, error) {
	status, err := readString(ctx, m.obj, mprisPlaybackStatus)
	if err != nil {
		return model.PlaybackUnknown, err
	}
	return model.PlaybackStateFromMPRIS(status), nil
}

func readProperty(ctx context.Context, obj dbus.BusObject, property string) (dbus.Variant, error) {
	var variant dbus.Variant
	err := obj.CallWithContext(ctx, dbusPropertiesGet, 0, mprisPlayerIface, property).Store(&variant)
	if err != nil {
		return dbus.Variant{}, fmt.Errorf("failed to read %s: %w", property, err)
	}
	return variant, nil
}

func readString(ctx context.Context, obj dbus.BusObject, property string) (string, error) {
	variant, err := readProperty(ctx, obj, property)
	if err != nil {
		return "", err
	}
	value, ok := variant.Value().(string)
	if !ok {
		return "", fmt.Errorf("unexpected %s signature %s", property, variant.Signature())
	}
	return value, nil
}

// filterPlayers returns the MPRIS player names in stable order
func filterPlayers(names []string) []string {
	var players []string
	for _, name := range names {
		if strings.HasPrefix(name, mprisBusPrefix) {
			players = append(players, name)
		}
	}
	sort.Strings(players)
	return players
}

// pickPlayer prefers a playing player, then a paused one, then the first
func pickPlayer(players []string, statuses map[string]string) string {
	for _, wanted := range []string{"Playing", "Paused"} {
		for _, name := range players {
			if statuses[name] == wanted {
				return name
			}
		}
	}
	return players[0]
}

// parseMetadata extracts the xesam/mpris fields the widget shows
func parseMetadata(fields map[string]dbus.Variant) Metadata {
	var meta Metadata

	if v, ok := fields["xesam:title"]; ok {
		meta.Title, _ = v.Value().(string)
	}
	if v, ok := fields["xesam:artist"]; ok {
		switch artist := v.Value().(type) {
		case []string:
			meta.Artist = strings.Join(artist, ", ")
		case string:
			meta.Artist = artist
		}
	}
	if v, ok := fields["mpris:artUrl"]; ok {
		meta.ArtURL, _ = v.Value().(string)
	}
	if v, ok := fields["xesam:url"]; ok {
		meta.TrackURL, _ = v.Value().(string)
	}

	return meta
}
