package orient

import (
	"io"

	"github.com/rwcarlsen/goexif/exif"
)

// ReadEXIF reads the Exif Orientation tag from r. Inputs without Exif data
// or without an orientation tag are reported as Up with no error; only a
// failure to rewind r is returned.
func ReadEXIF(r io.ReadSeeker) (Orientation, error) {
	if r == nil {
		return Up, nil
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return Up, err
	}

	x, err := exif.Decode(r)
	if err != nil {
		// non-JPEG input or no Exif segment
		return Up, nil
	}

	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return Up, nil
	}
	v, err := tag.Int(0)
	if err != nil {
		return Up, nil
	}

	return FromEXIF(v), nil
}
