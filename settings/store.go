// Package settings persists the pointer tunables and gesture bindings in an
// INI file. Tunables are stored as raw slider positions, the integers a
// settings screen writes, and converted to engine units on load.
package settings

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/mobile-next/facepointer/engine"
	"github.com/mobile-next/facepointer/utils"
	"gopkg.in/ini.v1"
)

const (
	pointerSection  = "pointer"
	gesturesSection = "gestures"
	sizeSuffix      = "_size"
)

// multipliers convert a raw slider value into engine units.
var multipliers = map[engine.ConfigKey]float64{
	engine.KeyUpSpeed:               175,
	engine.KeyDownSpeed:             175,
	engine.KeyLeftSpeed:             175,
	engine.KeyRightSpeed:            175,
	engine.KeySmoothPointer:         5,
	engine.KeyHoldTimeMs:            200,
	engine.KeyHoldRadius:            50,
	engine.KeyDragTimeMs:            1,
	engine.KeyTeleportTriggerRadius: 1,
	engine.KeyTeleportLerp:          0.01,
	engine.KeyTeleportMarginTop:     1,
	engine.KeyTeleportMarginBottom:  1,
	engine.KeyTeleportMarginLeft:    1,
	engine.KeyTeleportMarginRight:   1,
}

// uiOrder is the order gestures are listed on the settings screen. Older
// files store a binding as its position in this list.
var uiOrder = []engine.Blendshape{
	engine.OpenMouth, engine.MouthLeft,
	engine.MouthRight, engine.RollLowerMouth,
	engine.RaiseRightEyebrow, engine.RaiseLeftEyebrow,
	engine.LowerRightEyebrow, engine.LowerLeftEyebrow,
	engine.BlendshapeNone,
}

// Multiplier returns the raw-to-engine factor for key.
func Multiplier(key engine.ConfigKey) (float64, error) {
	m, ok := multipliers[key]
	if !ok {
		return 0, fmt.Errorf("%w: %q", engine.ErrUnknownConfigKey, string(key))
	}
	return m, nil
}

// DefaultPath returns the settings file location under the user config dir.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate config dir: %w", err)
	}
	return filepath.Join(dir, "facepointer", "settings.ini"), nil
}

// Store is a settings file held in memory. A missing file behaves as empty.
type Store struct {
	mu   sync.RWMutex
	path string
	file *ini.File
}

// Open loads path, creating an empty store when the file does not exist.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Reload re-reads the backing file.
func (s *Store) Reload() error {
	var file *ini.File
	if _, err := os.Stat(s.path); errors.Is(err, os.ErrNotExist) {
		file = ini.Empty()
	} else {
		file, err = ini.Load(s.path)
		if err != nil {
			return fmt.Errorf("failed to load settings %s: %w", s.path, err)
		}
	}

	s.mu.Lock()
	s.file = file
	s.mu.Unlock()
	utils.Verbose("loaded settings from %s", s.path)
	return nil
}

// Save writes the store back to its file.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings dir: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if err := s.file.SaveTo(s.path); err != nil {
		return fmt.Errorf("failed to save settings %s: %w", s.path, err)
	}
	return nil
}

// Raw returns the stored slider value for key.
func (s *Store) Raw(key engine.ConfigKey) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	section, err := s.file.GetSection(pointerSection)
	if err != nil {
		return 0, false
	}
	k, err := section.GetKey(string(key))
	if err != nil {
		return 0, false
	}
	v, err := k.Int()
	if err != nil {
		utils.Warn("settings: %s has non-integer value %q", key, k.String())
		return 0, false
	}
	return v, true
}

// SetRaw stores a slider value for key.
func (s *Store) SetRaw(key engine.ConfigKey, raw int) error {
	if _, err := Multiplier(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.file.Section(pointerSection).Key(string(key)).SetValue(strconv.Itoa(raw))
	return nil
}

// Value loads one tunable in engine units. Keys never written fall back to
// the engine default.
func (s *Store) Value(key engine.ConfigKey) (float64, error) {
	m, err := Multiplier(key)
	if err != nil {
		return 0, err
	}
	if raw, ok := s.Raw(key); ok {
		return float64(raw) * m, nil
	}
	return engine.DefaultConfig().Value(key)
}

// SetValue stores a tunable given in engine units, rounded to the nearest slider step.
func (s *Store) SetValue(key engine.ConfigKey, value float64) error {
	m, err := Multiplier(key)
	if err != nil {
		return err
	}
	return s.SetRaw(key, int(math.Round(value/m)))
}

// Values loads every tunable in engine units.
func (s *Store) Values() map[engine.ConfigKey]float64 {
	out := make(map[engine.ConfigKey]float64, len(multipliers))
	for _, key := range engine.ConfigKeys() {
		v, err := s.Value(key)
		if err != nil {
			continue
		}
		out[key] = v
	}
	return out
}

// StoredValues loads only the tunables present in the file, in engine units.
func (s *Store) StoredValues() map[engine.ConfigKey]float64 {
	out := make(map[engine.ConfigKey]float64)
	for _, key := range engine.ConfigKeys() {
		m, err := Multiplier(key)
		if err != nil {
			continue
		}
		if raw, ok := s.Raw(key); ok {
			out[key] = float64(raw) * m
		}
	}
	return out
}

// Config returns the default configuration with every stored value applied.
func (s *Store) Config() engine.Config {
	cfg := engine.DefaultConfig()
	for key, v := range s.Values() {
		if err := cfg.Apply(key, v); err != nil {
			utils.Warn("settings: %v", err)
		}
	}
	return cfg
}

// Binding loads the binding for one event. Both the shape and its size must
// be present; anything unreadable is logged and reported as missing.
func (s *Store) Binding(event engine.EventType) (engine.Binding, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bindingLocked(event)
}

func (s *Store) bindingLocked(event engine.EventType) (engine.Binding, bool) {
	section, err := s.file.GetSection(gesturesSection)
	if err != nil {
		return engine.Binding{}, false
	}
	name := event.String()

	shapeKey, err := section.GetKey(name)
	if err != nil {
		return engine.Binding{}, false
	}
	shape, err := parseStoredShape(shapeKey.String())
	if err != nil {
		utils.Warn("settings: %s: %v", name, err)
		return engine.Binding{}, false
	}

	sizeKey, err := section.GetKey(name + sizeSuffix)
	if err != nil {
		utils.Warn("settings: cannot find %s%s", name, sizeSuffix)
		return engine.Binding{}, false
	}
	size, err := sizeKey.Int()
	if err != nil {
		utils.Warn("settings: %s%s has non-integer value %q", name, sizeSuffix, sizeKey.String())
		return engine.Binding{}, false
	}
	return engine.Binding{Shape: shape, Threshold: float64(size) / 100}, true
}

// SetBinding stores a binding as the shape name and a 0..100 size.
func (s *Store) SetBinding(event engine.EventType, b engine.Binding) error {
	if err := engine.NewBindings().Set(event, b); err != nil {
		return err
	}
	size := int(math.Round(max(0, min(b.Threshold, 1)) * 100))

	s.mu.Lock()
	defer s.mu.Unlock()
	section := s.file.Section(gesturesSection)
	section.Key(event.String()).SetValue(b.Shape.String())
	section.Key(event.String() + sizeSuffix).SetValue(strconv.Itoa(size))
	return nil
}

// Bindings loads every stored binding in file order.
func (s *Store) Bindings() *engine.Bindings {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := engine.NewBindings()
	section, err := s.file.GetSection(gesturesSection)
	if err != nil {
		return out
	}
	for _, key := range section.Keys() {
		name := key.Name()
		if strings.HasSuffix(name, sizeSuffix) {
			continue
		}
		event, err := engine.ParseEventType(name)
		if err != nil || event == engine.EventNone {
			utils.Warn("settings: ignoring unknown event %q", name)
			continue
		}
		b, ok := s.bindingLocked(event)
		if !ok {
			continue
		}
		if err := out.Set(event, b); err != nil {
			utils.Warn("settings: %v", err)
		}
	}
	return out
}

// parseStoredShape accepts a shape name or a settings screen position.
func parseStoredShape(value string) (engine.Blendshape, error) {
	if idx, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
		if idx < 0 || idx >= len(uiOrder) {
			return engine.BlendshapeNone, fmt.Errorf("%w: position %d", engine.ErrUnknownBlendshape, idx)
		}
		return uiOrder[idx], nil
	}
	return engine.ParseBlendshape(value)
}
