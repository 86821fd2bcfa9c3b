package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_ApplyClamps(t *testing.T) {
	tests := []struct {
		key   ConfigKey
		value float64
		read  func(Config) float64
		want  float64
	}{
		{KeySmoothPointer, -3, func(c Config) float64 { return float64(c.Smoothing) }, 0},
		{KeyHoldTimeMs, 0, func(c Config) float64 { return float64(c.HoldDurationMs) }, 1},
		{KeyDragTimeMs, -10, func(c Config) float64 { return float64(c.DragDurationMs) }, 1},
		{KeyHoldRadius, -5, func(c Config) float64 { return c.HoldRadius }, 0},
		{KeyTeleportLerp, 3, func(c Config) float64 { return c.TeleportLerp }, 1},
		{KeyTeleportTriggerRadius, -1, func(c Config) float64 { return c.TeleportTriggerRadius }, 0},
		{KeyUpSpeed, 700, func(c Config) float64 { return c.UpSpeed }, 700},
		{KeyTeleportMarginLeft, 12, func(c Config) float64 { return c.TeleportMargins.Left }, 12},
	}

	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			cfg := DefaultConfig()
			require.NoError(t, cfg.Apply(tt.key, tt.value))
			assert.Equal(t, tt.want, tt.read(cfg))

			v, err := cfg.Value(tt.key)
			require.NoError(t, err)
			assert.Equal(t, tt.want, v)
		})
	}
}

func TestConfig_ApplyLeavesOthersUntouched(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Apply(KeyLeftSpeed, 10))

	want := DefaultConfig()
	want.LeftSpeed = 10
	assert.Equal(t, want, cfg)
}

func TestConfig_UnknownKey(t *testing.T) {
	cfg := DefaultConfig()
	assert.ErrorIs(t, cfg.Apply("NOPE", 1), ErrUnknownConfigKey)
	_, err := cfg.Value("NOPE")
	assert.ErrorIs(t, err, ErrUnknownConfigKey)

	_, err = ParseConfigKey("nope")
	assert.ErrorIs(t, err, ErrUnknownConfigKey)

	key, err := ParseConfigKey("hold_radius")
	require.NoError(t, err)
	assert.Equal(t, KeyHoldRadius, key)
}

func TestConfig_Values(t *testing.T) {
	values := DefaultConfig().Values()
	assert.Len(t, values, len(ConfigKeys()))
	assert.Equal(t, 0.15, values[KeyTeleportLerp])
	assert.Equal(t, 60.0, values[KeyTeleportMarginTop])
}
