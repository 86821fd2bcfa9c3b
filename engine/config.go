package engine

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownConfigKey = errors.New("unknown config key")

// ConfigKey names a single tunable, matching the persisted settings key.
type ConfigKey string

const (
	KeyUpSpeed               ConfigKey = "UP_SPEED"
	KeyDownSpeed             ConfigKey = "DOWN_SPEED"
	KeyLeftSpeed             ConfigKey = "LEFT_SPEED"
	KeyRightSpeed            ConfigKey = "RIGHT_SPEED"
	KeySmoothPointer         ConfigKey = "SMOOTH_POINTER"
	KeyHoldTimeMs            ConfigKey = "HOLD_TIME_MS"
	KeyHoldRadius            ConfigKey = "HOLD_RADIUS"
	KeyDragTimeMs            ConfigKey = "DRAG_TIME_MS"
	KeyTeleportTriggerRadius ConfigKey = "TELEPORT_TRIGGER_RADIUS"
	KeyTeleportLerp          ConfigKey = "TELEPORT_LERP"
	KeyTeleportMarginTop     ConfigKey = "TELEPORT_MARGIN_TOP"
	KeyTeleportMarginBottom  ConfigKey = "TELEPORT_MARGIN_BOTTOM"
	KeyTeleportMarginLeft    ConfigKey = "TELEPORT_MARGIN_LEFT"
	KeyTeleportMarginRight   ConfigKey = "TELEPORT_MARGIN_RIGHT"
)

// Margins insets the teleport anchors from the screen edges, in pixels.
type Margins struct {
	Top    float64 `json:"top" yaml:"top"`
	Bottom float64 `json:"bottom" yaml:"bottom"`
	Left   float64 `json:"left" yaml:"left"`
	Right  float64 `json:"right" yaml:"right"`
}

// Config holds the engine tunables in engine units (pixels, milliseconds,
// multipliers). Values are expected to come from bounded UI controls; Apply
// only clamps what would corrupt the arithmetic.
type Config struct {
	UpSpeed    float64 `json:"upSpeed"`
	DownSpeed  float64 `json:"downSpeed"`
	LeftSpeed  float64 `json:"leftSpeed"`
	RightSpeed float64 `json:"rightSpeed"`

	// Smoothing is the window N of the exponential step filter; 0 disables it.
	Smoothing int `json:"smoothing"`

	HoldRadius     float64 `json:"holdRadius"`
	HoldDurationMs int     `json:"holdDurationMs"`
	DragDurationMs int     `json:"dragDurationMs"`

	TeleportTriggerRadius float64 `json:"teleportTriggerRadius"`
	TeleportLerp          float64 `json:"teleportLerp"`
	TeleportMargins       Margins `json:"teleportMargins"`
}

// DefaultConfig returns the tunables a fresh install starts with.
func DefaultConfig() Config {
	return Config{
		UpSpeed:               525,
		DownSpeed:             525,
		LeftSpeed:             525,
		RightSpeed:            525,
		Smoothing:             5,
		HoldRadius:            100,
		HoldDurationMs:        1000,
		DragDurationMs:        250,
		TeleportTriggerRadius: 200,
		TeleportLerp:          0.15,
		TeleportMargins:       Margins{Top: 60, Bottom: 60, Left: 30, Right: 30},
	}
}

// ConfigKeys lists every key Apply understands, sorted.
func ConfigKeys() []ConfigKey {
	keys := []ConfigKey{
		KeyUpSpeed, KeyDownSpeed, KeyLeftSpeed, KeyRightSpeed,
		KeySmoothPointer, KeyHoldTimeMs, KeyHoldRadius, KeyDragTimeMs,
		KeyTeleportTriggerRadius, KeyTeleportLerp,
		KeyTeleportMarginTop, KeyTeleportMarginBottom, KeyTeleportMarginLeft, KeyTeleportMarginRight,
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// ParseConfigKey normalizes a key name and checks that it is known.
func ParseConfigKey(name string) (ConfigKey, error) {
	key := ConfigKey(strings.ToUpper(strings.TrimSpace(name)))
	for _, k := range ConfigKeys() {
		if k == key {
			return key, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownConfigKey, name)
}

// Apply updates a single key, leaving every other value untouched.
func (c *Config) Apply(key ConfigKey, value float64) error {
	switch key {
	case KeyUpSpeed:
		c.UpSpeed = value
	case KeyDownSpeed:
		c.DownSpeed = value
	case KeyLeftSpeed:
		c.LeftSpeed = value
	case KeyRightSpeed:
		c.RightSpeed = value
	case KeySmoothPointer:
		c.Smoothing = int(max(value, 0))
	case KeyHoldTimeMs:
		c.HoldDurationMs = int(max(value, 1))
	case KeyHoldRadius:
		c.HoldRadius = max(value, 0)
	case KeyDragTimeMs:
		c.DragDurationMs = int(max(value, 1))
	case KeyTeleportTriggerRadius:
		c.TeleportTriggerRadius = max(value, 0)
	case KeyTeleportLerp:
		c.TeleportLerp = clamp(value, 0, 1)
	case KeyTeleportMarginTop:
		c.TeleportMargins.Top = value
	case KeyTeleportMarginBottom:
		c.TeleportMargins.Bottom = value
	case KeyTeleportMarginLeft:
		c.TeleportMargins.Left = value
	case KeyTeleportMarginRight:
		c.TeleportMargins.Right = value
	default:
		return fmt.Errorf("%w: %q", ErrUnknownConfigKey, string(key))
	}
	return nil
}

// Value reads a single key.
func (c Config) Value(key ConfigKey) (float64, error) {
	switch key {
	case KeyUpSpeed:
		return c.UpSpeed, nil
	case KeyDownSpeed:
		return c.DownSpeed, nil
	case KeyLeftSpeed:
		return c.LeftSpeed, nil
	case KeyRightSpeed:
		return c.RightSpeed, nil
	case KeySmoothPointer:
		return float64(c.Smoothing), nil
	case KeyHoldTimeMs:
		return float64(c.HoldDurationMs), nil
	case KeyHoldRadius:
		return c.HoldRadius, nil
	case KeyDragTimeMs:
		return float64(c.DragDurationMs), nil
	case KeyTeleportTriggerRadius:
		return c.TeleportTriggerRadius, nil
	case KeyTeleportLerp:
		return c.TeleportLerp, nil
	case KeyTeleportMarginTop:
		return c.TeleportMargins.Top, nil
	case KeyTeleportMarginBottom:
		return c.TeleportMargins.Bottom, nil
	case KeyTeleportMarginLeft:
		return c.TeleportMargins.Left, nil
	case KeyTeleportMarginRight:
		return c.TeleportMargins.Right, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownConfigKey, string(key))
}

// Values returns every key with its current value.
func (c Config) Values() map[ConfigKey]float64 {
	out := make(map[ConfigKey]float64, len(ConfigKeys()))
	for _, k := range ConfigKeys() {
		v, _ := c.Value(k)
		out[k] = v
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
