// Package geom holds the real-valued sizes, rectangles and affine
// transforms used to place pixels when resizing.
package geom

import "math"

// Size is a width/height pair in points.
type Size struct {
	Width  float64
	Height float64
}

// Transposed returns the size with width and height swapped.
func (s Size) Transposed() Size {
	return Size{Width: s.Height, Height: s.Width}
}

// Scaled multiplies both dimensions by f.
func (s Size) Scaled(f float64) Size {
	return Size{Width: s.Width * f, Height: s.Height * f}
}

// Rect is an axis-aligned rectangle with its origin at X, Y.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// RectOf returns a rectangle of size s at the origin.
func RectOf(s Size) Rect {
	return Rect{Width: s.Width, Height: s.Height}
}

func (r Rect) MaxX() float64 { return r.X + r.Width }
func (r Rect) MaxY() float64 { return r.Y + r.Height }

func (r Rect) Size() Size { return Size{Width: r.Width, Height: r.Height} }

// Integral returns the smallest rectangle with whole-number edges that
// contains r: the origin is rounded down and the far edges up.
func (r Rect) Integral() Rect {
	x0, y0 := math.Floor(r.X), math.Floor(r.Y)
	x1, y1 := math.Ceil(r.MaxX()), math.Ceil(r.MaxY())
	return Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}
}

// Corners returns the four corners of r, counter-clockwise from the origin.
func (r Rect) Corners() [4][2]float64 {
	return [4][2]float64{
		{r.X, r.Y},
		{r.MaxX(), r.Y},
		{r.MaxX(), r.MaxY()},
		{r.X, r.MaxY()},
	}
}
