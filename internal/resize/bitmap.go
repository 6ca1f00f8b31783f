// Package resize redraws bitmaps at a new size while baking their stored
// orientation into the pixels, so every result is upright.
package resize

import (
	"image"
	"math"

	"upright/internal/geom"
	"upright/internal/orient"
)

// Bitmap is an immutable image with a device scale factor and the
// orientation its pixels are stored in. Width and height are in points:
// pixels divided by scale, as displayed.
type Bitmap struct {
	pix         image.Image
	scale       float64
	orientation orient.Orientation
}

// New wraps pix. A scale that is not a positive finite number is treated
// as 1. pix may be nil, in which case any resize fails with ErrNoPixelData.
func New(pix image.Image, scale float64, o orient.Orientation) Bitmap {
	if !(scale > 0) || math.IsInf(scale, 0) {
		scale = 1
	}
	return Bitmap{pix: pix, scale: scale, orientation: o}
}

// Image returns the stored pixels (not orientation corrected).
func (b Bitmap) Image() image.Image { return b.pix }

func (b Bitmap) Scale() float64 {
	if b.scale == 0 {
		return 1
	}
	return b.scale
}

func (b Bitmap) Orientation() orient.Orientation { return b.orientation }

// PixelSize is the size of the stored pixel data.
func (b Bitmap) PixelSize() image.Point {
	if b.pix == nil {
		return image.Point{}
	}
	return b.pix.Bounds().Size()
}

// Size is the displayed size in points. Width and height are swapped
// relative to the stored pixels for transposed orientations.
func (b Bitmap) Size() geom.Size {
	p := b.PixelSize()
	s := geom.Size{Width: float64(p.X), Height: float64(p.Y)}.Scaled(1 / b.Scale())
	if b.orientation.Transposed() {
		return s.Transposed()
	}
	return s
}
