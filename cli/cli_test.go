package cli

import (
	"testing"

	"github.com/mobile-next/facepointer/commands"
	"github.com/mobile-next/facepointer/devices"
	"github.com/mobile-next/facepointer/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCoords(t *testing.T) {
	tests := []struct {
		in      string
		n       int
		want    []int
		wantErr bool
	}{
		{"10,20", 2, []int{10, 20}, false},
		{" 1 , 2 ,3,4", 4, []int{1, 2, 3, 4}, false},
		{"10", 2, nil, true},
		{"10,20,30", 2, nil, true},
		{"a,b", 2, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseCoords(tt.in, tt.n)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseScreen(t *testing.T) {
	tests := []struct {
		in      string
		want    types.Size
		wantErr bool
	}{
		{"1080x1920", types.Size{Width: 1080, Height: 1920}, false},
		{"1920X1080", types.Size{Width: 1920, Height: 1080}, false},
		{"1080", types.Size{}, true},
		{"0x100", types.Size{}, true},
		{"axb", types.Size{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseScreen(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegisterInjectors(t *testing.T) {
	defer func() {
		dryRun, remoteAddr, deviceId = false, "", ""
	}()

	dryRun = true
	registry := devices.NewRegistry()
	registerInjectors(registry)
	assert.Equal(t, "dry-run", deviceId)
	assert.Equal(t, []string{"dry-run"}, registry.IDs())

	dryRun = false
	deviceId = ""
	remoteAddr = "12000"
	registry = devices.NewRegistry()
	registerInjectors(registry)
	assert.Equal(t, "http://localhost:12000", deviceId)

	commands.SetRegistry(registry)
	defer commands.SetRegistry(nil)
	inj, err := commands.FindInjector("")
	require.NoError(t, err)
	assert.Equal(t, deviceId, inj.ID())
}

func TestGenerateToken(t *testing.T) {
	a, err := generateToken()
	require.NoError(t, err)
	b, err := generateToken()
	require.NoError(t, err)

	assert.Len(t, a, 2*tokenBytes)
	assert.NotEqual(t, a, b)
}
