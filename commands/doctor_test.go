package commands

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoctorCommand_ReportsSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")
	require.NoError(t, os.WriteFile(path, []byte("[gestures]\nHOME = OPEN_MOUTH\nHOME_size = 50\n"), 0o644))

	resp := DoctorCommand("test", path)
	require.Equal(t, "ok", resp.Status)

	info := resp.Data.(DoctorInfo)
	assert.Equal(t, "test", info.Version)
	assert.Equal(t, runtime.GOOS, info.OS)
	assert.True(t, info.SettingsExists)
	assert.Equal(t, 1, info.Bindings)
	assert.Empty(t, info.SettingsError)
}

func TestDoctorCommand_MissingSettings(t *testing.T) {
	resp := DoctorCommand("test", filepath.Join(t.TempDir(), "none.ini"))
	require.Equal(t, "ok", resp.Status)

	info := resp.Data.(DoctorInfo)
	assert.False(t, info.SettingsExists)
	assert.Equal(t, 0, info.Bindings)
}
