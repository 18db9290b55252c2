package layout

// Point is a position in chart coordinates. Y grows downward.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Box is an axis-aligned rectangle anchored at its top-left corner.
type Box struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.Width }

// Bottom returns the y coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.Height }

// CenterX returns the horizontal center of the box.
func (b Box) CenterX() float64 { return b.X + b.Width/2 }

// CenterY returns the vertical center of the box.
func (b Box) CenterY() float64 { return b.Y + b.Height/2 }

// LeftMid returns the midpoint of the left edge.
func (b Box) LeftMid() Point { return Point{X: b.X, Y: b.CenterY()} }

// RightMid returns the midpoint of the right edge.
func (b Box) RightMid() Point { return Point{X: b.Right(), Y: b.CenterY()} }

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	x, y := min(b.X, o.X), min(b.Y, o.Y)
	return Box{X: x, Y: y, Width: max(b.Right(), o.Right()) - x, Height: max(b.Bottom(), o.Bottom()) - y}
}

// Circle is a circle described by the top-left corner of its bounding square.
type Circle struct {
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Diameter float64 `json:"diameter"`
}

// Radius returns half the diameter.
func (c Circle) Radius() float64 { return c.Diameter / 2 }

// Center returns the center of the circle.
func (c Circle) Center() Point { return Point{X: c.X + c.Diameter/2, Y: c.Y + c.Diameter/2} }

// Bounds returns the bounding square of the circle.
func (c Circle) Bounds() Box { return Box{X: c.X, Y: c.Y, Width: c.Diameter, Height: c.Diameter} }
