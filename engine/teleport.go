package engine

import (
	"math"

	"github.com/mobile-next/facepointer/types"
)

// Direction is one of the eight compass sectors used by teleport navigation.
type Direction int

const (
	East Direction = iota
	NorthEast
	North
	NorthWest
	West
	SouthWest
	South
	SouthEast
)

const sectorDegrees = 360.0 / 8

var directionNames = [...]string{"E", "NE", "N", "NW", "W", "SW", "S", "SE"}

func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return "?"
	}
	return directionNames[d]
}

// TeleportAngle returns the angle of offset in degrees within [0,360),
// counter-clockwise from east with screen y pointing down, so 90 is up.
func TeleportAngle(offset types.Vec2) float64 {
	deg := -math.Atan2(offset.Y, offset.X) * 180 / math.Pi
	deg = math.Mod(deg+360, 360)
	return deg
}

// SectorFor maps an angle to the nearest of the eight compass directions.
func SectorFor(angle float64) Direction {
	idx := int(math.Floor((angle+sectorDegrees/2)/sectorDegrees)) % 8
	if idx < 0 {
		idx += 8
	}
	return Direction(idx)
}

// Anchor returns the screen point a direction teleports to.
func Anchor(d Direction, screen types.Size, m Margins) types.Vec2 {
	w, h := float64(screen.Width), float64(screen.Height)
	c := screen.Center()
	minX, maxX := m.Left, w-m.Right
	minY, maxY := m.Top, h-m.Bottom

	switch d {
	case East:
		return types.Vec2{X: maxX, Y: c.Y}
	case NorthEast:
		return types.Vec2{X: maxX, Y: minY}
	case North:
		return types.Vec2{X: c.X, Y: minY}
	case NorthWest:
		return types.Vec2{X: minX, Y: minY}
	case West:
		return types.Vec2{X: minX, Y: c.Y}
	case SouthWest:
		return types.Vec2{X: minX, Y: maxY}
	case South:
		return types.Vec2{X: c.X, Y: maxY}
	case SouthEast:
		return types.Vec2{X: maxX, Y: maxY}
	}
	return c
}

// TeleportTarget picks where the cursor should head for a given shadow
// position. Shadows closer to the center than the trigger radius return the
// center itself.
func TeleportTarget(shadow types.Vec2, screen types.Size, cfg Config) types.Vec2 {
	c := screen.Center()
	offset := types.Vec2{X: shadow.X - c.X, Y: shadow.Y - c.Y}
	if math.Hypot(offset.X, offset.Y) < cfg.TeleportTriggerRadius {
		return c
	}
	return Anchor(SectorFor(TeleportAngle(offset)), screen, cfg.TeleportMargins)
}
