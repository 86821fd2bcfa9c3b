package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mobile-next/facepointer/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixture = `[pointer]
UP_SPEED = 4
SMOOTH_POINTER = 0
TELEPORT_LERP = 20

[gestures]
SWIPE_LEFT = MOUTH_LEFT
SWIPE_LEFT_size = 40
CURSOR_TOUCH = 0
CURSOR_TOUCH_size = 90
HOME = RAISE_LEFT_EYEBROW
`

func writeFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.ini")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestStore_MissingFileUsesDefaults(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "nope.ini"))
	require.NoError(t, err)

	assert.Equal(t, engine.DefaultConfig(), store.Config())
	assert.Equal(t, 0, store.Bindings().Len())

	_, ok := store.Raw(engine.KeyUpSpeed)
	assert.False(t, ok)
}

func TestStore_RawValuesAreScaled(t *testing.T) {
	store, err := Open(writeFixture(t, fixture))
	require.NoError(t, err)

	v, err := store.Value(engine.KeyUpSpeed)
	require.NoError(t, err)
	assert.Equal(t, 700.0, v)

	v, err = store.Value(engine.KeyDownSpeed)
	require.NoError(t, err)
	assert.Equal(t, 525.0, v, "unset key keeps the default")

	cfg := store.Config()
	assert.Equal(t, 0, cfg.Smoothing)
	assert.InDelta(t, 0.2, cfg.TeleportLerp, 1e-9)

	_, err = store.Value("BOGUS")
	assert.ErrorIs(t, err, engine.ErrUnknownConfigKey)
}

func TestStore_DefaultsMatchSliderPositions(t *testing.T) {
	raw := map[engine.ConfigKey]int{
		engine.KeyUpSpeed:       3,
		engine.KeySmoothPointer: 1,
		engine.KeyHoldTimeMs:    5,
		engine.KeyHoldRadius:    2,
	}
	defaults := engine.DefaultConfig()
	for key, r := range raw {
		m, err := Multiplier(key)
		require.NoError(t, err)
		want, err := defaults.Value(key)
		require.NoError(t, err)
		assert.Equal(t, want, float64(r)*m, key)
	}
}

func TestStore_Bindings(t *testing.T) {
	store, err := Open(writeFixture(t, fixture))
	require.NoError(t, err)

	bindings := store.Bindings()
	assert.Equal(t, []engine.EventType{engine.EventSwipeLeft, engine.EventCursorTouch}, bindings.Events())

	b, ok := bindings.Get(engine.EventCursorTouch)
	require.True(t, ok)
	assert.Equal(t, engine.OpenMouth, b.Shape, "numeric values are settings screen positions")
	assert.InDelta(t, 0.9, b.Threshold, 1e-9)

	_, ok = store.Binding(engine.EventHome)
	assert.False(t, ok, "binding without a size is ignored")
}

func TestStore_SaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.ini")
	store, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, store.SetValue(engine.KeyHoldRadius, 150))
	require.NoError(t, store.SetBinding(engine.EventBack, engine.Binding{Shape: engine.RollLowerMouth, Threshold: 0.35}))
	assert.ErrorIs(t, store.SetRaw("BOGUS", 1), engine.ErrUnknownConfigKey)
	assert.ErrorIs(t, store.SetBinding(engine.EventNone, engine.Binding{Shape: engine.OpenMouth}), engine.ErrUnknownEventType)
	require.NoError(t, store.Save())

	reopened, err := Open(path)
	require.NoError(t, err)

	raw, ok := reopened.Raw(engine.KeyHoldRadius)
	require.True(t, ok)
	assert.Equal(t, 3, raw)

	b, ok := reopened.Binding(engine.EventBack)
	require.True(t, ok)
	assert.Equal(t, engine.Binding{Shape: engine.RollLowerMouth, Threshold: 0.35}, b)
}

func TestParseStoredShape(t *testing.T) {
	tests := []struct {
		value   string
		want    engine.Blendshape
		wantErr bool
	}{
		{"4", engine.RaiseRightEyebrow, false},
		{"8", engine.BlendshapeNone, false},
		{"9", engine.BlendshapeNone, true},
		{"open_mouth", engine.OpenMouth, false},
		{"SMILE", engine.BlendshapeNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := parseStoredShape(tt.value)
			if tt.wantErr {
				assert.ErrorIs(t, err, engine.ErrUnknownBlendshape)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStore_StoredValuesOnlyListsWrittenKeys(t *testing.T) {
	store, err := Open(writeFixture(t, fixture))
	require.NoError(t, err)

	values := store.StoredValues()
	require.Len(t, values, 3)
	assert.Equal(t, 700.0, values[engine.KeyUpSpeed])
	assert.Equal(t, 0.0, values[engine.KeySmoothPointer])
	assert.InDelta(t, 0.2, values[engine.KeyTeleportLerp], 1e-9)
	_, ok := values[engine.KeyDownSpeed]
	assert.False(t, ok)
}
