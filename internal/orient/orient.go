// Package orient describes how a stored bitmap must be rotated and/or
// mirrored to display upright, and builds the affine transform that bakes
// that correction into a redraw.
package orient

import (
	"fmt"
	"math"
	"strings"

	"upright/internal/geom"
)

// Orientation is one of the eight quarter-turn/mirror combinations a
// bitmap can be stored in. The zero value is Up.
type Orientation int

const (
	Up Orientation = iota
	Down
	Left
	Right
	UpMirrored
	DownMirrored
	LeftMirrored
	RightMirrored
)

var names = [...]string{
	Up:            "up",
	Down:          "down",
	Left:          "left",
	Right:         "right",
	UpMirrored:    "up-mirrored",
	DownMirrored:  "down-mirrored",
	LeftMirrored:  "left-mirrored",
	RightMirrored: "right-mirrored",
}

// exifTags maps each orientation to its Exif Orientation tag value.
var exifTags = [...]int{
	Up:            1,
	UpMirrored:    2,
	Down:          3,
	DownMirrored:  4,
	LeftMirrored:  5,
	Right:         6,
	RightMirrored: 7,
	Left:          8,
}

func (o Orientation) Valid() bool { return o >= Up && o <= RightMirrored }

func (o Orientation) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Orientation(%d)", int(o))
	}
	return names[o]
}

// EXIF returns the Exif Orientation tag value (1-8) for o.
func (o Orientation) EXIF() int {
	if !o.Valid() {
		return 1
	}
	return exifTags[o]
}

// FromEXIF converts an Exif Orientation tag value. Values outside 1-8 are
// treated as Up.
func FromEXIF(v int) Orientation {
	for o, e := range exifTags {
		if e == v {
			return Orientation(o)
		}
	}
	return Up
}

// ParseOrientation accepts either a name ("left-mirrored") or an Exif tag
// value ("5").
func ParseOrientation(s string) (Orientation, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for o, n := range names {
		if n == s {
			return Orientation(o), nil
		}
	}
	if len(s) == 1 && s[0] >= '1' && s[0] <= '8' {
		return FromEXIF(int(s[0] - '0')), nil
	}
	return Up, fmt.Errorf("unknown orientation %q", s)
}

// Transposed reports whether the stored bitmap's axes are swapped relative
// to the upright image, so the draw destination must swap width and
// height before the rotation is applied.
func (o Orientation) Transposed() bool {
	return o.Valid() && corrections[o].transposed
}

type turn int

const (
	noTurn turn = iota
	halfTurn
	quarterTurn        // π/2
	reverseQuarterTurn // -π/2
)

var corrections = [...]struct {
	turn       turn
	mirrored   bool
	transposed bool
}{
	Up:            {noTurn, false, false},
	Down:          {halfTurn, false, false},
	Left:          {quarterTurn, false, true},
	Right:         {reverseQuarterTurn, false, true},
	UpMirrored:    {noTurn, true, false},
	DownMirrored:  {halfTurn, true, false},
	LeftMirrored:  {quarterTurn, true, true},
	RightMirrored: {reverseQuarterTurn, true, true},
}

// Transform returns the transform that, concatenated to a drawing
// context of the given size, draws a bitmap stored with orientation o
// upright. The context is y-up with its origin at the bottom-left.
func Transform(o Orientation, size geom.Size) geom.Affine {
	t := geom.Identity
	if !o.Valid() {
		return t
	}
	c := corrections[o]
	w, h := size.Width, size.Height

	switch c.turn {
	case halfTurn:
		t = t.Translated(w, h).Rotated(math.Pi)
	case quarterTurn:
		t = t.Translated(w, 0).Rotated(math.Pi / 2)
	case reverseQuarterTurn:
		t = t.Translated(0, h).Rotated(-math.Pi / 2)
	}

	if c.mirrored {
		if c.transposed {
			t = t.Translated(h, 0)
		} else {
			t = t.Translated(w, 0)
		}
		t = t.Scaled(-1, 1)
	}
	return t
}
