package pipeline

import (
	"fmt"
	"io"

	"upright/internal/orient"
	"upright/internal/resize"
)

// Load decodes an image from rs and tags it with the orientation from its
// Exif data, if any. The pixels are left as stored; resizing applies the
// correction.
func Load(rs io.ReadSeeker, maxBytes int64, scale float64) (resize.Bitmap, string, error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return resize.Bitmap{}, "", fmt.Errorf("rewind: %w", err)
	}
	img, ct, err := ValidateAndDecode(rs, maxBytes)
	if err != nil {
		return resize.Bitmap{}, ct, err
	}

	o, err := orient.ReadEXIF(rs)
	if err != nil {
		return resize.Bitmap{}, ct, fmt.Errorf("read exif: %w", err)
	}

	return resize.New(img, scale, o), ct, nil
}
