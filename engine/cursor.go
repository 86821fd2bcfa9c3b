package engine

import "github.com/mobile-next/facepointer/types"

// CursorState integrates filtered motion into a bounded cursor position.
type CursorState struct {
	pos    types.Vec2
	filter *MotionFilter

	teleport bool
	shadow   types.Vec2

	// last screen size that passed validation; zero until one arrives
	screen types.Size
}

// NewCursorState returns a cursor centered on screen. Without a valid screen
// the cursor is centered on the first valid one.
func NewCursorState(screen types.Size) *CursorState {
	c := &CursorState{filter: NewMotionFilter()}
	c.SetScreen(screen)
	return c
}

// SetScreen records a new screen size without moving the cursor, except to
// keep it on screen. It returns false and changes nothing when the size is
// not positive.
func (c *CursorState) SetScreen(screen types.Size) bool {
	if !screen.Valid() {
		return false
	}
	if !c.screen.Valid() {
		c.pos = screen.Center()
	}
	c.screen = screen
	c.pos = clampToScreen(c.pos, screen)
	return true
}

// Update advances the cursor by one tick. It returns false, leaving the
// cursor untouched, when the screen size is not positive.
func (c *CursorState) Update(head types.Vec2, gapFrames int, screen types.Size, cfg Config) bool {
	if !c.SetScreen(screen) {
		return false
	}

	offset := c.filter.Offset(head, gapFrames, cfg)

	if c.teleport {
		c.shadow = clampToScreen(types.Vec2{X: c.shadow.X + offset.X, Y: c.shadow.Y + offset.Y}, screen)
		target := TeleportTarget(c.shadow, screen, cfg)
		l := cfg.TeleportLerp
		c.pos = types.Vec2{
			X: c.pos.X*(1-l) + target.X*l,
			Y: c.pos.Y*(1-l) + target.Y*l,
		}
		// a rotation can shrink the screen under the lerp
		c.pos = clampToScreen(c.pos, screen)
		return true
	}

	c.pos = clampToScreen(types.Vec2{X: c.pos.X + offset.X, Y: c.pos.Y + offset.Y}, screen)
	return true
}

// Position returns the cursor truncated to whole pixels.
func (c *CursorState) Position() types.Point {
	return types.Point{X: int(c.pos.X), Y: int(c.pos.Y)}
}

// Exact returns the continuous cursor position.
func (c *CursorState) Exact() types.Vec2 {
	return c.pos
}

// Recenter moves the cursor to the middle of the last valid screen.
func (c *CursorState) Recenter() {
	c.pos = c.screen.Center()
}

// EnterTeleport switches to teleport navigation with the shadow cursor at the screen center.
func (c *CursorState) EnterTeleport() {
	c.teleport = true
	c.shadow = c.screen.Center()
}

// ExitTeleport returns to direct following; the cursor stays where it settled.
func (c *CursorState) ExitTeleport() {
	c.teleport = false
}

// Teleporting reports whether teleport navigation is active.
func (c *CursorState) Teleporting() bool {
	return c.teleport
}

// Shadow returns the teleport shadow cursor; it is only meaningful while teleporting.
func (c *CursorState) Shadow() types.Vec2 {
	return c.shadow
}

// Screen returns the last valid screen size.
func (c *CursorState) Screen() types.Size {
	return c.screen
}

// Filter exposes the motion filter, mainly for inspection.
func (c *CursorState) Filter() *MotionFilter {
	return c.filter
}

func clampToScreen(p types.Vec2, screen types.Size) types.Vec2 {
	return types.Vec2{
		X: clamp(p.X, 0, float64(screen.Width)),
		Y: clamp(p.Y, 0, float64(screen.Height)),
	}
}
