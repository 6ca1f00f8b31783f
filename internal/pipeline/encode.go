package pipeline

import (
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"strings"

	webp "github.com/chai2010/webp"
	"github.com/gen2brain/avif"
)

// DefaultWebPQuality is the standard quality used for lossy WebP encoding.
const DefaultWebPQuality = 80

// DefaultAVIFQuality is the standard quality used for AVIF encoding.
const DefaultAVIFQuality = 60

// DefaultAVIFSpeed is the standard speed used for AVIF encoding.
const DefaultAVIFSpeed = 6

// DefaultJPEGQuality is used for JPEG output.
const DefaultJPEGQuality = 90

// EncodeOptions carries per-format encoder settings. Zero values select
// the defaults above.
type EncodeOptions struct {
	WebPQuality int
	AVIFQuality int
	AVIFSpeed   int
	JPEGQuality int
}

// EncodeWebP encodes img to WebP written to w with given quality (0-100).
// It logs the final encoded size. Returns an error from the encoder or writer.
func EncodeWebP(img image.Image, w io.Writer, quality int) error {
	if img == nil {
		return errors.New("nil image")
	}
	if w == nil {
		return errors.New("nil writer")
	}
	if quality < 0 {
		quality = 0
	}
	if quality > 100 {
		quality = 100
	}

	c := &countingWriter{w: w}
	opts := &webp.Options{Quality: float32(quality)}
	if err := webp.Encode(c, img, opts); err != nil {
		return err
	}

	log.Printf("webp encoded size=%d quality=%d", c.n, quality)
	return nil
}

// EncodeAVIF encodes img to AVIF written to w with given quality (0-100) and speed (0-10).
// It logs the final encoded size. Returns an error from the encoder or writer.
func EncodeAVIF(img image.Image, w io.Writer, quality, speed int) error {
	if img == nil {
		return errors.New("nil image")
	}
	if w == nil {
		return errors.New("nil writer")
	}
	if quality <= 0 {
		quality = DefaultAVIFQuality
	}
	if quality > 100 {
		quality = 100
	}
	if speed <= 0 {
		speed = DefaultAVIFSpeed
	}
	if speed > 10 {
		speed = 10
	}

	c := &countingWriter{w: w}
	if err := avif.Encode(c, img, avif.Options{Quality: quality, QualityAlpha: quality, Speed: speed}); err != nil {
		return err
	}

	log.Printf("avif encoded size=%d quality=%d speed=%d", c.n, quality, speed)
	return nil
}

// NormalizeFormat maps a format name or MIME type to one of "webp",
// "avif", "png" or "jpeg".
func NormalizeFormat(format string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	f = strings.TrimPrefix(f, "image/")
	f = strings.TrimPrefix(f, ".")
	switch f {
	case "webp", "avif", "png", "jpeg":
		return f, nil
	case "jpg":
		return "jpeg", nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// ContentType returns the MIME type for a normalized format.
func ContentType(format string) string {
	return "image/" + format
}

// Encode writes img to w in format.
func Encode(img image.Image, w io.Writer, format string, opts EncodeOptions) error {
	f, err := NormalizeFormat(format)
	if err != nil {
		return err
	}
	switch f {
	case "webp":
		q := opts.WebPQuality
		if q == 0 {
			q = DefaultWebPQuality
		}
		return EncodeWebP(img, w, q)
	case "avif":
		return EncodeAVIF(img, w, opts.AVIFQuality, opts.AVIFSpeed)
	case "jpeg":
		q := opts.JPEGQuality
		if q <= 0 || q > 100 {
			q = DefaultJPEGQuality
		}
		return jpeg.Encode(w, img, &jpeg.Options{Quality: q})
	default:
		return png.Encode(w, img)
	}
}

// countingWriter wraps an io.Writer and counts bytes written.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	m, err := c.w.Write(p)
	c.n += int64(m)
	return m, err
}
