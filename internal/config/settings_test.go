package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"pkt.systems/pslog"
)

// logBuffer is a goroutine-safe writer for captured log output
type logBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *logBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *logBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func newTestLogger(w *logBuffer) pslog.Logger {
	return pslog.NewWithOptions(w, pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: pslog.InfoLevel,
	})
}

func newTestStore(t *testing.T) (*Store, string, *logBuffer) {
	t.Helper()
	logs := &logBuffer{}
	path := filepath.Join(t.TempDir(), "settings.json")
	return Load(path, newTestLogger(logs)), path, logs
}

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write settings: %v", err)
	}
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	store, _, logs := newTestStore(t)

	expected := map[string]any{
		KeyShowTraffic: true,
		KeyShowSystem:  true,
		KeyMusicMode:   MusicModeAlways,
		KeyVizPreset:   VizDefault,
		KeyPosition:    Position{X: 0, Y: -1},
	}

	for _, key := range Keys() {
		if got := store.Get(key); got != expected[key] {
			t.Errorf("Get(%q) = %v, expected default %v", key, got, expected[key])
		}
	}

	if store.Values() != Defaults() {
		t.Errorf("Expected full default record, got %+v", store.Values())
	}

	if strings.Contains(logs.String(), "corrupt") {
		t.Error("A missing file should not be reported as corrupt")
	}
}

func TestLoad_PartialFileFallsBackPerKey(t *testing.T) {
	path := writeSettings(t, `{"show_traffic": false}`)
	store := Load(path, newTestLogger(&logBuffer{}))

	if store.Get(KeyShowSystem) != true {
		t.Errorf("Expected show_system default true, got %v", store.Get(KeyShowSystem))
	}
	if store.Get(KeyShowTraffic) != false {
		t.Errorf("Expected show_traffic false, got %v", store.Get(KeyShowTraffic))
	}
	if store.MusicMode() != DefaultMusicMode {
		t.Errorf("Expected default music mode, got %s", store.MusicMode())
	}
}

func TestLoad_UnknownKeysIgnored(t *testing.T) {
	path := writeSettings(t, `{"music_mode": "auto", "eq_preset": "Flat", "opacity": 0.9}`)
	store := Load(path, newTestLogger(&logBuffer{}))

	if store.MusicMode() != MusicModeAuto {
		t.Errorf("Expected music mode auto, got %s", store.MusicMode())
	}
	if store.Get("eq_preset") != nil {
		t.Error("Unknown key should not be readable")
	}
}

func TestLoad_CorruptFileReturnsFullDefaults(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `{"show_traffic": false,`},
		{"wrong type", `{"show_traffic": false, "show_system": "nope"}`},
		{"not an object", `[1, 2, 3]`},
		{"binary", "\x00\x01\x02"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			logs := &logBuffer{}
			store := Load(writeSettings(t, test.content), newTestLogger(logs))

			if store.Values() != Defaults() {
				t.Errorf("Expected full default record, got %+v", store.Values())
			}
			if !strings.Contains(logs.String(), "settings file corrupt") {
				t.Errorf("Expected corrupt warning in logs, got %q", logs.String())
			}
		})
	}
}

func TestLoad_InvalidEnumNormalized(t *testing.T) {
	path := writeSettings(t, `{"music_mode": "sometimes", "viz_preset": "Jazz", "show_system": false}`)
	store := Load(path, newTestLogger(&logBuffer{}))

	if store.MusicMode() != DefaultMusicMode {
		t.Errorf("Expected music mode default, got %s", store.MusicMode())
	}
	if store.VizPreset() != DefaultVizPreset {
		t.Errorf("Expected viz preset default, got %s", store.VizPreset())
	}
	if store.ShowSystem() {
		t.Error("Valid keys next to invalid enums should still load")
	}
}

func TestLoad_PartialPosition(t *testing.T) {
	path := writeSettings(t, `{"position": {"x": 120}}`)
	store := Load(path, newTestLogger(&logBuffer{}))

	expected := Position{X: 120, Y: -1}
	if store.Position() != expected {
		t.Errorf("Expected position %+v, got %+v", expected, store.Position())
	}
}

func TestSet_PersistsFullRecord(t *testing.T) {
	store, path, _ := newTestStore(t)

	if err := store.Set(KeyShowTraffic, false); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Settings were not persisted: %v", err)
	}

	var persisted map[string]any
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatalf("Persisted settings are not JSON: %v", err)
	}
	for _, key := range Keys() {
		if _, ok := persisted[key]; !ok {
			t.Errorf("Persisted record is missing key %q", key)
		}
	}

	reloaded := Load(path, newTestLogger(&logBuffer{}))
	if reloaded.ShowTraffic() {
		t.Error("Reloaded store should see show_traffic=false")
	}
}

func TestSet_ThenGet(t *testing.T) {
	store, _, _ := newTestStore(t)

	tests := []struct {
		key   string
		value any
	}{
		{KeyShowTraffic, false},
		{KeyShowSystem, false},
		{KeyMusicMode, MusicModeAuto},
		{KeyVizPreset, VizRock},
		{KeyPosition, Position{X: 40, Y: 900}},
	}

	for _, test := range tests {
		if err := store.Set(test.key, test.value); err != nil {
			t.Fatalf("Set(%q) failed: %v", test.key, err)
		}
		if got := store.Get(test.key); got != test.value {
			t.Errorf("Get(%q) = %v, expected %v", test.key, got, test.value)
		}
	}
}

func TestSet_AcceptsPlainStringsForEnums(t *testing.T) {
	store, _, _ := newTestStore(t)

	if err := store.Set(KeyMusicMode, "auto"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if store.MusicMode() != MusicModeAuto {
		t.Errorf("Expected auto, got %s", store.MusicMode())
	}
}

func TestSet_RejectsInvalidInput(t *testing.T) {
	store, _, _ := newTestStore(t)

	if err := store.Set("opacity", 0.5); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Expected ErrUnknownKey, got %v", err)
	}
	if err := store.Set(KeyShowSystem, "yes"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Expected ErrInvalidValue for wrong type, got %v", err)
	}
	if err := store.Set(KeyVizPreset, VizPreset("Jazz")); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Expected ErrInvalidValue for unknown preset, got %v", err)
	}

	if store.Values() != Defaults() {
		t.Errorf("Rejected writes must not change the record, got %+v", store.Values())
	}
}

func TestSet_PersistenceFailureKeepsMemoryValue(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create blocker: %v", err)
	}

	logs := &logBuffer{}
	store := Load(filepath.Join(blocker, "settings.json"), newTestLogger(logs))

	if err := store.Set(KeyShowTraffic, false); err != nil {
		t.Fatalf("Persistence failure must not be returned, got %v", err)
	}
	if store.ShowTraffic() {
		t.Error("In-memory value must survive a persistence failure")
	}
	if !strings.Contains(logs.String(), "settings persist failed") {
		t.Errorf("Expected persist failure to be logged, got %q", logs.String())
	}
}

func TestSet_ConcurrentWritesLeaveDiskMatchingMemory(t *testing.T) {
	store, path, _ := newTestStore(t)
	presets := GetVizPresetOptions()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			store.SetShowTraffic(i%2 == 0)
			if err := store.SetVizPreset(presets[i%len(presets)]); err != nil {
				t.Errorf("SetVizPreset failed: %v", err)
			}
		}(i)
	}
	wg.Wait()

	reloaded := Load(path, newTestLogger(&logBuffer{}))
	if reloaded.Values() != store.Values() {
		t.Errorf("Disk record %+v differs from memory %+v", reloaded.Values(), store.Values())
	}
}

func TestTypedAccessors(t *testing.T) {
	store, _, _ := newTestStore(t)

	store.SetShowTraffic(false)
	store.SetShowSystem(false)
	if err := store.SetMusicMode(MusicModeAuto); err != nil {
		t.Fatalf("SetMusicMode failed: %v", err)
	}
	if err := store.SetVizPreset(VizBass); err != nil {
		t.Fatalf("SetVizPreset failed: %v", err)
	}
	store.SetPosition(Position{X: 10, Y: 20})

	expected := Values{
		ShowTraffic: false,
		ShowSystem:  false,
		MusicMode:   MusicModeAuto,
		VizPreset:   VizBass,
		Position:    Position{X: 10, Y: 20},
	}
	if store.Values() != expected {
		t.Errorf("Expected %+v, got %+v", expected, store.Values())
	}
}

func TestReset(t *testing.T) {
	store, path, _ := newTestStore(t)
	store.SetShowSystem(false)

	store.Reset()

	if store.Values() != Defaults() {
		t.Errorf("Expected defaults after reset, got %+v", store.Values())
	}
	reloaded := Load(path, newTestLogger(&logBuffer{}))
	if reloaded.Values() != Defaults() {
		t.Errorf("Expected persisted defaults after reset, got %+v", reloaded.Values())
	}
}

func TestGetVizPresetOptions(t *testing.T) {
	options := GetVizPresetOptions()
	expectedOptions := []VizPreset{VizDefault, VizBass, VizTreble, VizRock, VizPop}

	if len(options) != len(expectedOptions) {
		t.Fatalf("Expected %d presets, got %d", len(expectedOptions), len(options))
	}

	for i, expected := range expectedOptions {
		if options[i] != expected {
			t.Errorf("Preset %d: expected %s, got %s", i, expected, options[i])
		}
	}
}

func TestGetMusicModeOptions(t *testing.T) {
	options := GetMusicModeOptions()
	if len(options) != 2 || options[0] != MusicModeAlways || options[1] != MusicModeAuto {
		t.Errorf("Unexpected music mode options: %v", options)
	}
}
