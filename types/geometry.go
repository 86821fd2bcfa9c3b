package types

// Point is an integer screen coordinate, as handed to renderers and input injectors.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Vec2 is a continuous coordinate or offset.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Size represents width and height dimensions.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// Center returns the middle of the screen.
func (s Size) Center() Vec2 {
	return Vec2{X: float64(s.Width) / 2, Y: float64(s.Height) / 2}
}
