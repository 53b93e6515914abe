package layout

import "fmt"

// Point is a position on the reading canvas, in pixels
type Point struct {
	X float64
	Y float64
}

// Size is a width/height pair, in pixels
type Size struct {
	Width  float64
	Height float64
}

// Rect is an axis-aligned region on the canvas
type Rect struct {
	Min Point
	Max Point
}

// Valid reports whether Min is strictly below Max on both axes
func (r Rect) Valid() bool {
	return r.Min.X < r.Max.X && r.Min.Y < r.Max.Y
}

// Contains reports whether p lies strictly inside r. Points on an edge
// are outside.
func (r Rect) Contains(p Point) bool {
	return p.X > r.Min.X && p.X < r.Max.X &&
		p.Y > r.Min.Y && p.Y < r.Max.Y
}

// Width returns the horizontal extent of r
func (r Rect) Width() float64 {
	return r.Max.X - r.Min.X
}

// Height returns the vertical extent of r
func (r Rect) Height() float64 {
	return r.Max.Y - r.Min.Y
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

func (r Rect) String() string {
	return fmt.Sprintf("[%s-%s]", r.Min, r.Max)
}
