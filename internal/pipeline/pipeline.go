package pipeline

import (
	"bytes"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/disintegration/imaging"

	"upright/internal/geom"
	"upright/internal/resize"
)

// Options controls Process. Width and Height form the target box in
// points; when one is zero it follows the source aspect ratio, when both
// are zero the displayed source size is kept.
type Options struct {
	Width, Height float64
	// Mode is Fit or Fill for aspect-preserving resizes, or Stretch to
	// draw at exactly Width x Height. Other modes are rejected.
	Mode resize.ContentMode
	// Crop trims a Fill result to the target box, keeping the center.
	Crop    bool
	Quality resize.Quality
	Scale   float64
	Format  string
	Encode  EncodeOptions

	MaxBytes int64
}

// Result is an upright, resized and encoded image.
type Result struct {
	Bitmap resize.Bitmap
	Data   []byte
	Format string
	Width  int
	Height int
}

// ContentType is the MIME type of Data.
func (r *Result) ContentType() string { return ContentType(r.Format) }

// Process runs the full pipeline: validate+decode -> exif -> resize -> crop -> encode
func Process(upload io.ReadSeeker, opts Options) (*Result, error) {
	format, err := NormalizeFormat(opts.Format)
	if err != nil {
		return nil, err
	}
	maxBytes := opts.MaxBytes
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}

	src, _, err := Load(upload, maxBytes, opts.Scale)
	if err != nil {
		return nil, fmt.Errorf("validate decode: %w", err)
	}

	out, err := Resize(src, opts)
	if err != nil {
		return nil, fmt.Errorf("resize: %w", err)
	}

	var buf bytes.Buffer
	if err := Encode(out.Image(), &buf, format, opts.Encode); err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}

	p := out.PixelSize()
	return &Result{
		Bitmap: out,
		Data:   buf.Bytes(),
		Format: format,
		Width:  p.X,
		Height: p.Y,
	}, nil
}

// ParseMode accepts the content modes the pipeline supports: "fit",
// "fill" and "stretch" (alias "exact"). The empty string is Fit.
func ParseMode(s string) (resize.ContentMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fit":
		return resize.Fit, nil
	case "fill":
		return resize.Fill, nil
	case "stretch", "exact":
		return resize.Stretch, nil
	}
	return 0, fmt.Errorf("%w: %q", resize.ErrUnsupportedContentMode, s)
}

// Resize applies the size, mode and crop settings of opts to src. Outputs
// wider or taller than MaxDimension pixels fail with ErrOutputTooLarge
// before any buffer is allocated.
func Resize(src resize.Bitmap, opts Options) (resize.Bitmap, error) {
	box := targetBox(src.Size(), opts.Width, opts.Height)

	size := box
	if opts.Mode != resize.Stretch {
		// unsupported modes are reported by ResizeContent below
		if s, err := resize.ResolveSize(src.Size(), box, opts.Mode); err == nil {
			size = s
		}
	}
	if err := checkOutput(size, src.Scale()); err != nil {
		return resize.Bitmap{}, err
	}

	var (
		out resize.Bitmap
		err error
	)
	if opts.Mode == resize.Stretch {
		out, err = resize.Resize(src, box, opts.Quality)
	} else {
		out, err = resize.ResizeContent(src, box, opts.Mode, opts.Quality)
	}
	if err != nil {
		return resize.Bitmap{}, err
	}

	if opts.Crop && opts.Mode == resize.Fill {
		out = Crop(out, box)
	}
	return out, nil
}

// Crop trims b to size points around its center. Sizes larger than b are
// clamped to b.
func Crop(b resize.Bitmap, size geom.Size) resize.Bitmap {
	scale := math.Max(1, b.Scale())
	px := geom.RectOf(size.Scaled(scale)).Integral()
	have := b.PixelSize()
	w, h := min(int(px.Width), have.X), min(int(px.Height), have.Y)
	if w <= 0 || h <= 0 || (w == have.X && h == have.Y) {
		return b
	}
	return resize.New(imaging.CropCenter(b.Image(), w, h), b.Scale(), b.Orientation())
}

// checkOutput rejects sizes whose pixel buffer would exceed MaxDimension
// on either axis.
func checkOutput(size geom.Size, scale float64) error {
	px := size.Scaled(math.Max(1, scale))
	w, h := math.Ceil(px.Width-1e-9), math.Ceil(px.Height-1e-9)
	if w > MaxDimension || h > MaxDimension {
		return fmt.Errorf("%w: %.0fx%.0f pixels, limit %d", ErrOutputTooLarge, w, h, MaxDimension)
	}
	return nil
}

func targetBox(src geom.Size, w, h float64) geom.Size {
	switch {
	case w <= 0 && h <= 0:
		return src
	case w <= 0:
		return geom.Size{Width: h * src.Width / src.Height, Height: h}
	case h <= 0:
		return geom.Size{Width: w, Height: w * src.Height / src.Width}
	}
	return geom.Size{Width: w, Height: h}
}
