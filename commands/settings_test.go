package commands

import (
	"path/filepath"
	"testing"

	"github.com/mobile-next/facepointer/engine"
	"github.com/mobile-next/facepointer/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *settings.Store {
	t.Helper()
	store, err := settings.Open(filepath.Join(t.TempDir(), "settings.ini"))
	require.NoError(t, err)
	return store
}

func TestConfigSetCommand_SavesAndScales(t *testing.T) {
	store := newStore(t)

	resp := ConfigSetCommand(store, "up_speed", 2)
	require.Equal(t, "ok", resp.Status, resp.Error)

	entry := resp.Data.(ConfigEntry)
	assert.Equal(t, engine.KeyUpSpeed, entry.Key)
	assert.Equal(t, 350.0, entry.Value)

	reopened, err := settings.Open(store.Path())
	require.NoError(t, err)
	raw, ok := reopened.Raw(engine.KeyUpSpeed)
	require.True(t, ok)
	assert.Equal(t, 2, raw)
}

func TestConfigGetCommand(t *testing.T) {
	store := newStore(t)

	all := ConfigGetCommand(store, "")
	require.Equal(t, "ok", all.Status)
	entries := all.Data.(map[string]interface{})["config"].([]ConfigEntry)
	assert.Len(t, entries, len(engine.ConfigKeys()))

	one := ConfigGetCommand(store, "HOLD_TIME_MS")
	require.Equal(t, "ok", one.Status)
	entries = one.Data.(map[string]interface{})["config"].([]ConfigEntry)
	require.Len(t, entries, 1)
	assert.Nil(t, entries[0].Raw)
	assert.Equal(t, 1000.0, entries[0].Value)

	bad := ConfigGetCommand(store, "NOPE")
	assert.Equal(t, "error", bad.Status)
}

func TestBindCommand(t *testing.T) {
	store := newStore(t)

	resp := BindCommand(store, "CURSOR_TOUCH", "OPEN_MOUTH", 0.4)
	require.Equal(t, "ok", resp.Status, resp.Error)

	b, ok := store.Binding(engine.EventCursorTouch)
	require.True(t, ok)
	assert.Equal(t, engine.OpenMouth, b.Shape)
	assert.InDelta(t, 0.4, b.Threshold, 1e-9)

	tests := []struct {
		name         string
		event, shape string
		threshold    float64
	}{
		{"unknown event", "JUMP", "OPEN_MOUTH", 0.5},
		{"unknown shape", "HOME", "WINK", 0.5},
		{"threshold too high", "HOME", "OPEN_MOUTH", 1.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, "error", BindCommand(store, tt.event, tt.shape, tt.threshold).Status)
		})
	}
}

func TestProfileCommands_RoundTrip(t *testing.T) {
	src := newStore(t)
	require.Equal(t, "ok", ConfigSetCommand(src, "DOWN_SPEED", 5).Status)
	require.Equal(t, "ok", BindCommand(src, "BACK", "MOUTH_RIGHT", 0.3).Status)

	path := filepath.Join(t.TempDir(), "mine.yaml")
	exported := ProfileExportCommand(src, path, "mine")
	require.Equal(t, "ok", exported.Status, exported.Error)

	dst := newStore(t)
	imported := ProfileImportCommand(dst, path)
	require.Equal(t, "ok", imported.Status, imported.Error)

	raw, ok := dst.Raw(engine.KeyDownSpeed)
	require.True(t, ok)
	assert.Equal(t, 5, raw)

	b, ok := dst.Binding(engine.EventBack)
	require.True(t, ok)
	assert.Equal(t, engine.MouthRight, b.Shape)
}

func TestProfileImportCommand_MissingFile(t *testing.T) {
	resp := ProfileImportCommand(newStore(t), filepath.Join(t.TempDir(), "none.yaml"))
	assert.Equal(t, "error", resp.Status)
}
