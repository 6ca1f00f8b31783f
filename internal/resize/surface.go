package resize

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"

	"upright/internal/geom"
)

// MaxSurfacePixels bounds the size of a drawing buffer.
const MaxSurfacePixels = 1 << 28

// Surface is a drawing context backed by a pixel buffer. Coordinates are
// y-up with the origin at the bottom-left of the buffer; an image drawn
// into a rectangle has its first row at the rectangle's top (maximum y).
type Surface interface {
	// Concat prepends m to the current transformation matrix.
	Concat(m geom.Affine)
	SetQuality(q Quality)
	// Draw resamples all of src into r, in user space.
	Draw(src image.Image, r geom.Rect) error
	// Image hands over the buffer. The surface is unusable afterwards.
	Image() (*image.RGBA, error)
	// Release frees the buffer. The surface is unusable afterwards.
	Release()
}

// Allocator creates a cleared surface of width x height pixels.
type Allocator func(width, height int) (Surface, error)

var errReleased = errors.New("surface released")

// rgbaSurface draws into an 8-bit premultiplied RGBA buffer with a row
// stride of 4*width. Every source colour model is converted into that
// layout, so paletted, gray, CMYK and YCbCr sources composite the same way.
type rgbaSurface struct {
	buf     *image.RGBA
	ctm     geom.Affine
	quality Quality
}

// NewSurface is the default Allocator.
func NewSurface(width, height int) (Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: invalid size %dx%d", ErrBufferCreationFailed, width, height)
	}
	if int64(width)*int64(height) > MaxSurfacePixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrBufferCreationFailed, width, height, MaxSurfacePixels)
	}
	return &rgbaSurface{
		buf: image.NewRGBA(image.Rect(0, 0, width, height)),
		ctm: geom.Identity,
	}, nil
}

func (s *rgbaSurface) Concat(m geom.Affine) { s.ctm = s.ctm.Concat(m) }

func (s *rgbaSurface) SetQuality(q Quality) { s.quality = q }

func (s *rgbaSurface) Draw(src image.Image, r geom.Rect) error {
	if s.buf == nil {
		return errReleased
	}
	sr := src.Bounds()
	if sr.Empty() || r.Width == 0 || r.Height == 0 {
		return nil
	}
	m := s.sourceToBuffer(sr, r)
	s2d := f64.Aff3{m.A, m.C, m.Tx, m.B, m.D, m.Ty}
	s.quality.interpolator().Transform(s.buf, s2d, src, sr, draw.Over, nil)
	return nil
}

// sourceToBuffer maps source pixel coordinates (y-down) into buffer pixel
// coordinates (y-down) through the destination rect and the CTM.
func (s *rgbaSurface) sourceToBuffer(sr image.Rectangle, r geom.Rect) geom.Affine {
	sx := r.Width / float64(sr.Dx())
	sy := r.Height / float64(sr.Dy())
	place := geom.Affine{
		A:  sx,
		D:  -sy,
		Tx: r.X - float64(sr.Min.X)*sx,
		Ty: r.MaxY() + float64(sr.Min.Y)*sy,
	}
	flip := geom.Affine{A: 1, D: -1, Ty: float64(s.buf.Rect.Dy())}
	return flip.Concat(s.ctm).Concat(place)
}

func (s *rgbaSurface) Image() (*image.RGBA, error) {
	if s.buf == nil {
		return nil, errReleased
	}
	out := s.buf
	s.buf = nil
	return out, nil
}

func (s *rgbaSurface) Release() { s.buf = nil }
