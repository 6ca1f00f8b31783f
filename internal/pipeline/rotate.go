package pipeline

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"upright/internal/orient"
	"upright/internal/resize"
	"upright/internal/storage"
)

// MaxRotateBytes bounds the size of files RotateFile will load.
const MaxRotateBytes = 64 << 20

// quarterTurns maps a counter-clockwise angle to the orientation whose
// correction performs that rotation.
var quarterTurns = map[int]orient.Orientation{
	90:  orient.Left,
	180: orient.Down,
	270: orient.Right,
	-90: orient.Right,
}

// Rotate redraws the stored pixels of b rotated counter-clockwise by angle degrees (90, 180,
// 270 or -90).
func Rotate(b resize.Bitmap, angle int) (resize.Bitmap, error) {
	o, ok := quarterTurns[angle]
	if !ok {
		return resize.Bitmap{}, ErrInvalidAngle
	}
	stored := resize.New(b.Image(), b.Scale(), o)
	return resize.Resize(stored, stored.Size(), resize.QualityNone)
}

// RotateUpright applies b's orientation and then rotates the upright
// pixels counter-clockwise by angle, so angle is relative to the image as
// displayed.
func RotateUpright(b resize.Bitmap, angle int) (resize.Bitmap, error) {
	if _, ok := quarterTurns[angle]; !ok {
		return resize.Bitmap{}, ErrInvalidAngle
	}
	if b.Orientation() != orient.Up {
		upright, err := resize.Resize(b, b.Size(), resize.QualityNone)
		if err != nil {
			return resize.Bitmap{}, err
		}
		b = upright
	}
	return Rotate(b, angle)
}

// RotateFile rotates the image at path counter-clockwise by angle (90,
// 180, 270 or -90) as displayed, honouring its Exif orientation, and
// rewrites it in place in the same format without the orientation tag.
// Formats that cannot be written back fail with ErrUnknownFormat and leave
// the file untouched. Returns new dimensions and file size.
func RotateFile(path string, angle int) (int, int, int64, error) {
	if _, ok := quarterTurns[angle]; !ok {
		return 0, 0, 0, ErrInvalidAngle
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	ct, err := DetectFormat(f)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to read image: %w", err)
	}
	if !strings.HasPrefix(ct, "image/") {
		return 0, 0, 0, ErrNotAnImage
	}
	format, err := NormalizeFormat(strings.TrimPrefix(ct, "image/"))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("cannot rewrite %s: %w", ct, err)
	}

	src, _, err := Load(f, MaxRotateBytes, 1)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}
	f.Close()

	rotated, err := RotateUpright(src, angle)
	if err != nil {
		return 0, 0, 0, err
	}

	var buf bytes.Buffer
	if err := Encode(rotated.Image(), &buf, format, EncodeOptions{}); err != nil {
		return 0, 0, 0, fmt.Errorf("failed to encode %s: %w", format, err)
	}
	n, err := storage.AtomicWrite(path, &buf)
	if err != nil {
		return 0, 0, 0, err
	}

	p := rotated.PixelSize()
	return p.X, p.Y, n, nil
}
