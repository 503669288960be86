package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"pkt.systems/pslog"

	"github.com/ytget/taskbar-widget/internal/platform"
)

// MusicMode controls when the music section is shown
type MusicMode string

const (
	MusicModeAlways MusicMode = "always"
	MusicModeAuto   MusicMode = "auto"
)

// VizPreset biases the shape of the cosmetic visualizer
type VizPreset string

const (
	VizDefault VizPreset = "Default"
	VizBass    VizPreset = "Bass"
	VizTreble  VizPreset = "Treble"
	VizRock    VizPreset = "Rock"
	VizPop     VizPreset = "Pop"
)

// Position is the last docked window position. -1 means screen-relative default.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Settings keys as they appear in the persisted record
const (
	KeyShowTraffic = "show_traffic"
	KeyShowSystem  = "show_system"
	KeyMusicMode   = "music_mode"
	KeyVizPreset   = "viz_preset"
	KeyPosition    = "position"
)

// Default values
const (
	DefaultShowTraffic = true
	DefaultShowSystem  = true
	DefaultMusicMode   = MusicModeAlways
	DefaultVizPreset   = VizDefault
)

// DefaultPosition is the bottom-left corner
var DefaultPosition = Position{X: 0, Y: -1}

var (
	// ErrUnknownKey is returned by Set for a key outside the schema
	ErrUnknownKey = errors.New("unknown settings key")
	// ErrInvalidValue is returned by Set when the value does not fit the key
	ErrInvalidValue = errors.New("invalid settings value")
)

// Values is the full settings record
type Values struct {
	ShowTraffic bool      `json:"show_traffic"`
	ShowSystem  bool      `json:"show_system"`
	MusicMode   MusicMode `json:"music_mode"`
	VizPreset   VizPreset `json:"viz_preset"`
	Position    Position  `json:"position"`
}

// Defaults returns the full default record
func Defaults() Values {
	return Values{
		ShowTraffic: DefaultShowTraffic,
		ShowSystem:  DefaultShowSystem,
		MusicMode:   DefaultMusicMode,
		VizPreset:   DefaultVizPreset,
		Position:    DefaultPosition,
	}
}

// Keys returns the schema keys in persisted order
func Keys() []string {
	return []string{KeyShowTraffic, KeyShowSystem, KeyMusicMode, KeyVizPreset, KeyPosition}
}

// GetMusicModeOptions returns available music modes
func GetMusicModeOptions() []MusicMode {
	return []MusicMode{MusicModeAlways, MusicModeAuto}
}

// GetVizPresetOptions returns available visualizer presets
func GetVizPresetOptions() []VizPreset {
	return []VizPreset{VizDefault, VizBass, VizTreble, VizRock, VizPop}
}

// Valid reports whether the mode is part of the schema
func (m MusicMode) Valid() bool {
	return m == MusicModeAlways || m == MusicModeAuto
}

// Valid reports whether the preset is part of the schema
func (p VizPreset) Valid() bool {
	for _, option := range GetVizPresetOptions() {
		if p == option {
			return true
		}
	}
	return false
}

// normalize replaces out-of-schema enum values with their defaults
func (v Values) normalize() Values {
	if !v.MusicMode.Valid() {
		v.MusicMode = DefaultMusicMode
	}
	if !v.VizPreset.Valid() {
		v.VizPreset = DefaultVizPreset
	}
	return v
}

// Store manages the persisted settings record.
// The in-memory record is authoritative; disk writes are best effort.
type Store struct {
	path   string
	logger pslog.Logger

	mu     sync.RWMutex
	values Values

	// writeMu orders record updates with their disk writes
	writeMu sync.Mutex
}

// Load reads the settings record at path. It never fails: a missing or
// unreadable file yields the defaults, a corrupt one the full default record.
func Load(path string, logger pslog.Logger) *Store {
	s := &Store{
		path:   path,
		logger: logger.With("settings", path),
		values: Defaults(),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("settings read failed, using defaults", "err", err)
		}
		return s
	}

	values, err := decodeValues(data)
	if err != nil {
		s.logger.Warn("settings file corrupt, using defaults", "err", err)
		return s
	}
	s.values = values
	return s
}

// decodeValues overlays the persisted record on the defaults.
// Absent keys keep defaults, unknown keys are ignored.
func decodeValues(data []byte) (Values, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return Values{}, err
	}

	values := Defaults()
	if err := json.Unmarshal(data, &values); err != nil {
		return Values{}, err
	}
	return values.normalize(), nil
}

// Path returns the file backing the store
func (s *Store) Path() string {
	return s.path
}

// Values returns a copy of the full record
func (s *Store) Values() Values {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values
}

// Get returns the value stored under key, or nil for a key outside the schema
func (s *Store) Get(key string) any {
	v := s.Values()
	switch key {
	case KeyShowTraffic:
		return v.ShowTraffic
	case KeyShowSystem:
		return v.ShowSystem
	case KeyMusicMode:
		return v.MusicMode
	case KeyVizPreset:
		return v.VizPreset
	case KeyPosition:
		return v.Position
	default:
		return nil
	}
}

// Set validates and stores value under key, then persists the full record.
// Persistence failures are logged and do not roll back the in-memory value.
func (s *Store) Set(key string, value any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	next := s.values
	if err := assign(&next, key, value); err != nil {
		s.mu.Unlock()
		return err
	}
	s.values = next
	s.mu.Unlock()

	s.persist(next)
	return nil
}

// Reset restores and persists the full default record
func (s *Store) Reset() {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.Lock()
	s.values = Defaults()
	s.mu.Unlock()

	s.persist(Defaults())
}

func assign(v *Values, key string, value any) error {
	switch key {
	case KeyShowTraffic, KeyShowSystem:
		b, ok := value.(bool)
		if !ok {
			return fmt.Errorf("%w: %s expects bool, got %T", ErrInvalidValue, key, value)
		}
		if key == KeyShowTraffic {
			v.ShowTraffic = b
		} else {
			v.ShowSystem = b
		}
	case KeyMusicMode:
		mode, ok := asString[MusicMode](value)
		if !ok || !mode.Valid() {
			return fmt.Errorf("%w: %s=%v", ErrInvalidValue, key, value)
		}
		v.MusicMode = mode
	case KeyVizPreset:
		preset, ok := asString[VizPreset](value)
		if !ok || !preset.Valid() {
			return fmt.Errorf("%w: %s=%v", ErrInvalidValue, key, value)
		}
		v.VizPreset = preset
	case KeyPosition:
		pos, ok := value.(Position)
		if !ok {
			return fmt.Errorf("%w: %s expects Position, got %T", ErrInvalidValue, key, value)
		}
		v.Position = pos
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	return nil
}

func asString[T ~string](value any) (T, bool) {
	switch val := value.(type) {
	case T:
		return val, true
	case string:
		return T(val), true
	default:
		return "", false
	}
}

// persist writes the full record; errors are logged only
func (s *Store) persist(values Values) {
	if s.path == "" {
		return
	}
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		s.logger.Warn("settings encode failed", "err", err)
		return
	}
	if err := platform.WriteFileAtomic(s.path, data); err != nil {
		s.logger.Warn("settings persist failed", "err", err)
	}
}

// ShowTraffic returns whether the network section is enabled
func (s *Store) ShowTraffic() bool {
	return s.Values().ShowTraffic
}

// SetShowTraffic enables or disables the network section
func (s *Store) SetShowTraffic(show bool) {
	_ = s.Set(KeyShowTraffic, show)
}

// ShowSystem returns whether the CPU/memory section is enabled
func (s *Store) ShowSystem() bool {
	return s.Values().ShowSystem
}

// SetShowSystem enables or disables the CPU/memory section
func (s *Store) SetShowSystem(show bool) {
	_ = s.Set(KeyShowSystem, show)
}

// MusicMode returns the configured music mode
func (s *Store) MusicMode() MusicMode {
	return s.Values().MusicMode
}

// SetMusicMode sets the music mode
func (s *Store) SetMusicMode(mode MusicMode) error {
	return s.Set(KeyMusicMode, mode)
}

// VizPreset returns the configured visualizer preset
func (s *Store) VizPreset() VizPreset {
	return s.Values().VizPreset
}

// SetVizPreset sets the visualizer preset
func (s *Store) SetVizPreset(preset VizPreset) error {
	return s.Set(KeyVizPreset, preset)
}

// Position returns the last docked position
func (s *Store) Position() Position {
	return s.Values().Position
}

// SetPosition records the docked position
func (s *Store) SetPosition(pos Position) {
	_ = s.Set(KeyPosition, pos)
}
