package resize

import (
	"errors"
	"fmt"
	"log"
	"math"

	"upright/internal/geom"
	"upright/internal/orient"
)

// Resizer redraws bitmaps onto surfaces from its Allocator. It holds no
// mutable state and may be used from several goroutines at once.
type Resizer struct {
	Allocator Allocator
}

// Default draws with NewSurface.
var Default = &Resizer{Allocator: NewSurface}

func ResizeContent(src Bitmap, size geom.Size, mode ContentMode, q Quality) (Bitmap, error) {
	return Default.ResizeContent(src, size, mode, q)
}

func Resize(src Bitmap, size geom.Size, q Quality) (Bitmap, error) {
	return Default.Resize(src, size, q)
}

func ResizeTransform(src Bitmap, size geom.Size, m geom.Affine, transposed bool, q Quality) (Bitmap, error) {
	return Default.ResizeTransform(src, size, m, transposed, q)
}

// ResizeContent resizes src to fit in or cover size, keeping its aspect
// ratio, and corrects its orientation.
func (z *Resizer) ResizeContent(src Bitmap, size geom.Size, mode ContentMode, q Quality) (Bitmap, error) {
	target, err := ResolveSize(src.Size(), size, mode)
	if err != nil {
		log.Printf("resize: %v", err)
		return Bitmap{}, err
	}
	return z.Resize(src, target, q)
}

// Resize redraws src at size points, rotating and mirroring the pixels so
// that the result is upright. The orientation transform is built for the
// output buffer's pixel size rather than size in points, so the correction
// stays aligned when src's scale factor is above 1.
func (z *Resizer) Resize(src Bitmap, size geom.Size, q Quality) (Bitmap, error) {
	o := src.Orientation()
	buffer := bufferRect(size, src.Scale())
	m := orient.Transform(o, buffer.Size())
	return z.ResizeTransform(src, size, m, o.Transposed(), q)
}

// ResizeTransform draws src into a new buffer of size points after
// concatenating m to the buffer's coordinate system. When transposed is
// set the destination rectangle swaps width and height, for sources whose
// axes are swapped relative to the result. The result is always Up and
// keeps src's scale factor.
func (z *Resizer) ResizeTransform(src Bitmap, size geom.Size, m geom.Affine, transposed bool, q Quality) (Bitmap, error) {
	buffer := bufferRect(size, src.Scale())
	dst := buffer
	if transposed {
		dst.Width, dst.Height = buffer.Height, buffer.Width
	}

	if src.Image() == nil {
		log.Printf("resize: %v", ErrNoPixelData)
		return Bitmap{}, ErrNoPixelData
	}

	w, h, ok := pixelDims(buffer)
	if !ok {
		err := fmt.Errorf("%w: invalid target size %vx%v", ErrBufferCreationFailed, size.Width, size.Height)
		log.Printf("resize: %v", err)
		return Bitmap{}, err
	}

	surface, err := z.allocate(w, h)
	if err != nil {
		log.Printf("resize: %v", err)
		return Bitmap{}, err
	}
	defer surface.Release()

	surface.Concat(m)
	surface.SetQuality(q)

	if err := surface.Draw(src.Image(), dst); err != nil {
		err = asBufferError(err)
		log.Printf("resize: draw: %v", err)
		return Bitmap{}, err
	}

	pix, err := surface.Image()
	if err != nil {
		err = asBufferError(err)
		log.Printf("resize: extract image: %v", err)
		return Bitmap{}, err
	}

	return New(pix, src.Scale(), orient.Up), nil
}

func (z *Resizer) allocate(w, h int) (Surface, error) {
	alloc := z.Allocator
	if alloc == nil {
		alloc = NewSurface
	}
	s, err := alloc(w, h)
	if err != nil {
		return nil, asBufferError(err)
	}
	if s == nil {
		return nil, fmt.Errorf("%w: allocator returned no surface", ErrBufferCreationFailed)
	}
	return s, nil
}

// bufferRect is the integral pixel rectangle for size points at scale,
// with the scale clamped to at least 1. Sizes within rounding error of a
// whole pixel are not rounded up to the next one.
func bufferRect(size geom.Size, scale float64) geom.Rect {
	scale = math.Max(1, scale)
	s := size.Scaled(scale)
	return geom.RectOf(geom.Size{Width: snap(s.Width), Height: snap(s.Height)}).Integral()
}

func snap(v float64) float64 {
	if r := math.Round(v); math.Abs(v-r) < 1e-9 {
		return r
	}
	return v
}

func pixelDims(r geom.Rect) (int, int, bool) {
	if !(r.Width >= 1 && r.Height >= 1) || math.IsInf(r.Width, 0) || math.IsInf(r.Height, 0) {
		return 0, 0, false
	}
	if r.Width > math.MaxInt32 || r.Height > math.MaxInt32 {
		return 0, 0, false
	}
	return int(r.Width), int(r.Height), true
}

func asBufferError(err error) error {
	if errors.Is(err, ErrBufferCreationFailed) {
		return err
	}
	return fmt.Errorf("%w: %v", ErrBufferCreationFailed, err)
}
