package settings

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mobile-next/facepointer/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plistProfile = `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">
<plist version="1.0">
<dict>
	<key>config</key>
	<dict>
		<key>LEFT_SPEED</key>
		<real>350</real>
		<key>WARP_FACTOR</key>
		<real>9</real>
	</dict>
	<key>bindings</key>
	<array>
		<dict>
			<key>event</key>
			<string>SHOW_APPS</string>
			<key>shape</key>
			<string>LOWER_LEFT_EYEBROW</string>
			<key>threshold</key>
			<real>0.6</real>
		</dict>
		<dict>
			<key>event</key>
			<string>TELEPORT</string>
			<key>shape</key>
			<string>OPEN_MOUTH</string>
			<key>threshold</key>
			<real>0.5</real>
		</dict>
	</array>
</dict>
</plist>
`

func TestProfile_YAMLRoundTrip(t *testing.T) {
	store, err := Open(writeFixture(t, fixture))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "gaming.yaml")
	require.NoError(t, WriteProfile(path, ExportProfile(store, "gaming")))

	loaded, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "gaming", loaded.Name)
	assert.Equal(t, 700.0, loaded.Config["UP_SPEED"])
	require.Len(t, loaded.Bindings, 2)
	assert.Equal(t, ProfileBinding{Event: "SWIPE_LEFT", Shape: "MOUTH_LEFT", Threshold: 0.4}, loaded.Bindings[0])

	target, err := Open(filepath.Join(t.TempDir(), "other.ini"))
	require.NoError(t, err)
	require.NoError(t, loaded.ApplyTo(target))
	assert.Equal(t, store.Config(), target.Config())
	assert.Equal(t, store.Bindings().Events(), target.Bindings().Events())
}

func TestProfile_ImportPlist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Accessibility.plist")
	require.NoError(t, os.WriteFile(path, []byte(plistProfile), 0o644))

	p, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, "Accessibility", p.Name, "name falls back to the file name")

	store, err := Open(filepath.Join(t.TempDir(), "settings.ini"))
	require.NoError(t, err)
	require.NoError(t, p.ApplyTo(store))

	raw, ok := store.Raw(engine.KeyLeftSpeed)
	require.True(t, ok)
	assert.Equal(t, 2, raw)

	b, ok := store.Binding(engine.EventShowApps)
	require.True(t, ok)
	assert.Equal(t, engine.LowerLeftEyebrow, b.Shape)
	assert.InDelta(t, 0.6, b.Threshold, 1e-9)
	assert.Equal(t, 1, store.Bindings().Len(), "unknown event skipped")
}

func TestProfile_WritePlist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.plist")
	in := Profile{
		Name:     "quiet",
		Config:   map[string]float64{"HOLD_RADIUS": 100},
		Bindings: []ProfileBinding{{Event: "HOME", Shape: "MOUTH_RIGHT", Threshold: 0.7}},
	}
	require.NoError(t, WriteProfile(path, in))

	out, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoadProfile_Errors(t *testing.T) {
	_, err := LoadProfile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("config: [unterminated"), 0o644))
	_, err = LoadProfile(path)
	assert.Error(t, err)
}
