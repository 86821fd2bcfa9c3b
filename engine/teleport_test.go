package engine

import (
	"math"
	"testing"

	"github.com/mobile-next/facepointer/types"
	"github.com/stretchr/testify/assert"
)

var portrait = types.Size{Width: 1080, Height: 1920}

func polar(center types.Vec2, radius, degrees float64) types.Vec2 {
	rad := degrees * math.Pi / 180
	// screen y grows downward
	return types.Vec2{X: center.X + radius*math.Cos(rad), Y: center.Y - radius*math.Sin(rad)}
}

func TestTeleportTarget_RejectsSmallTurns(t *testing.T) {
	cfg := DefaultConfig()
	center := portrait.Center()

	for _, radius := range []float64{0, 50, 150, 199.9} {
		for deg := 0.0; deg < 360; deg += 15 {
			got := TeleportTarget(polar(center, radius, deg), portrait, cfg)
			assert.Equal(t, center, got, "radius %.1f angle %.0f", radius, deg)
		}
	}
}

func TestTeleportTarget_Anchors(t *testing.T) {
	cfg := DefaultConfig()
	center := portrait.Center()

	tests := []struct {
		angle float64
		want  types.Vec2
	}{
		{0, types.Vec2{X: 1050, Y: 960}},
		{45, types.Vec2{X: 1050, Y: 60}},
		{90, types.Vec2{X: 540, Y: 60}},
		{135, types.Vec2{X: 30, Y: 60}},
		{180, types.Vec2{X: 30, Y: 960}},
		{225, types.Vec2{X: 30, Y: 1860}},
		{270, types.Vec2{X: 540, Y: 1860}},
		{315, types.Vec2{X: 1050, Y: 1860}},
		// nearest sector wins either side of a boundary
		{22, types.Vec2{X: 1050, Y: 960}},
		{23, types.Vec2{X: 1050, Y: 60}},
		{359, types.Vec2{X: 1050, Y: 960}},
	}

	for _, tt := range tests {
		got := TeleportTarget(polar(center, 300, tt.angle), portrait, cfg)
		assert.InDelta(t, tt.want.X, got.X, 1e-9, "angle %.0f", tt.angle)
		assert.InDelta(t, tt.want.Y, got.Y, 1e-9, "angle %.0f", tt.angle)
	}
}

func TestTeleportAngle_ScreenUpIsNinety(t *testing.T) {
	assert.InDelta(t, 90, TeleportAngle(types.Vec2{X: 0, Y: -10}), 1e-9)
	assert.InDelta(t, 270, TeleportAngle(types.Vec2{X: 0, Y: 10}), 1e-9)
	assert.InDelta(t, 180, TeleportAngle(types.Vec2{X: -10, Y: 0}), 1e-9)
}

func TestSectorFor(t *testing.T) {
	assert.Equal(t, East, SectorFor(0))
	assert.Equal(t, East, SectorFor(337.5))
	assert.Equal(t, SouthEast, SectorFor(337.4))
	assert.Equal(t, North, SectorFor(67.5))
	assert.Equal(t, "NW", NorthWest.String())
}
