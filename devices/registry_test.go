package devices

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func registryWith(found []*AndroidDevice, err error) *Registry {
	r := NewRegistry()
	r.discover = func() ([]*AndroidDevice, error) { return found, err }
	return r
}

func TestRegistry_FindByID(t *testing.T) {
	r := registryWith([]*AndroidDevice{NewAndroidDevice("emulator-5554"), NewAndroidDevice("ZY22")}, nil)

	inj, err := r.Find("ZY22")
	require.NoError(t, err)
	assert.Equal(t, "ZY22", inj.ID())

	_, err = r.Find("missing")
	assert.ErrorContains(t, err, "device not found")

	_, err = r.Find("")
	assert.ErrorContains(t, err, "multiple devices found (2)")
	assert.Equal(t, []string{"ZY22", "emulator-5554"}, r.IDs())
}

func TestRegistry_AutoSelectsSingle(t *testing.T) {
	r := registryWith(nil, errors.New("adb not installed"))

	_, err := r.Find("")
	assert.ErrorContains(t, err, "no online devices")

	r.Add(LogDevice{})
	inj, err := r.Find("")
	require.NoError(t, err)
	assert.Equal(t, "dry-run", inj.ID())
}
