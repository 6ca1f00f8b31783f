package orient

import (
	"bytes"
	"image"
	"image/png"
	"math"
	"testing"

	"upright/internal/geom"
	"upright/internal/testutil"
)

var all = []Orientation{Up, Down, Left, Right, UpMirrored, DownMirrored, LeftMirrored, RightMirrored}

func TestTransform_MapsDestinationOntoTarget(t *testing.T) {
	target := geom.Size{Width: 80, Height: 30}
	box := geom.RectOf(target)

	for _, o := range all {
		t.Run(o.String(), func(t *testing.T) {
			dst := box
			if o.Transposed() {
				dst = geom.RectOf(target.Transposed())
			}
			m := Transform(o, target)

			// every corner must land on a corner of the target box
			for _, c := range dst.Corners() {
				x, y := m.Apply(c[0], c[1])
				if !onCorner(x, y, box) {
					t.Errorf("corner %v mapped to (%v,%v), not a corner of %+v", c, x, y, box)
				}
			}

			// and the four corners must be distinct, i.e. no collapse or skew
			if got := m.ApplyRect(dst); !sameRect(got, box) {
				t.Errorf("bounds %+v, want %+v", got, box)
			}
			if det := math.Abs(m.A*m.D - m.B*m.C); det != 1 {
				t.Errorf("determinant %v, want magnitude 1", det)
			}
		})
	}
}

func onCorner(x, y float64, r geom.Rect) bool {
	for _, c := range r.Corners() {
		if math.Abs(x-c[0]) < 1e-9 && math.Abs(y-c[1]) < 1e-9 {
			return true
		}
	}
	return false
}

func sameRect(a, b geom.Rect) bool {
	return math.Abs(a.X-b.X) < 1e-9 && math.Abs(a.Y-b.Y) < 1e-9 &&
		math.Abs(a.Width-b.Width) < 1e-9 && math.Abs(a.Height-b.Height) < 1e-9
}

func TestTransform_Left(t *testing.T) {
	m := Transform(Left, geom.Size{Width: 50, Height: 100})
	want := geom.Identity.Translated(50, 0).Rotated(math.Pi / 2)
	if m != want {
		t.Fatalf("Transform(Left) = %+v, want %+v", m, want)
	}
	if !Left.Transposed() {
		t.Fatal("Left must draw transposed")
	}
}

func TestTransform_UpIsIdentity(t *testing.T) {
	if m := Transform(Up, geom.Size{Width: 10, Height: 10}); !m.IsIdentity() {
		t.Fatalf("Transform(Up) = %+v, want identity", m)
	}
	if m := Transform(Orientation(42), geom.Size{Width: 10, Height: 10}); !m.IsIdentity() {
		t.Fatalf("invalid orientation should give identity, got %+v", m)
	}
}

func TestTransposed(t *testing.T) {
	want := map[Orientation]bool{
		Up: false, Down: false, UpMirrored: false, DownMirrored: false,
		Left: true, Right: true, LeftMirrored: true, RightMirrored: true,
	}
	for o, w := range want {
		if got := o.Transposed(); got != w {
			t.Errorf("%v.Transposed() = %v, want %v", o, got, w)
		}
	}
}

func TestEXIFRoundTrip(t *testing.T) {
	seen := map[int]bool{}
	for _, o := range all {
		v := o.EXIF()
		if v < 1 || v > 8 || seen[v] {
			t.Fatalf("%v has bad or duplicate exif value %d", o, v)
		}
		seen[v] = true
		if back := FromEXIF(v); back != o {
			t.Errorf("FromEXIF(%d) = %v, want %v", v, back, o)
		}
	}
	if FromEXIF(0) != Up || FromEXIF(9) != Up {
		t.Error("out of range exif values must map to Up")
	}
	if Right.EXIF() != 6 || Left.EXIF() != 8 {
		t.Errorf("Right=%d Left=%d, want 6 and 8", Right.EXIF(), Left.EXIF())
	}
}

func TestParseOrientation(t *testing.T) {
	tests := []struct {
		in      string
		want    Orientation
		wantErr bool
	}{
		{"up", Up, false},
		{" Left-Mirrored ", LeftMirrored, false},
		{"6", Right, false},
		{"8", Left, false},
		{"sideways", Up, true},
		{"9", Up, true},
	}
	for _, tt := range tests {
		got, err := ParseOrientation(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOrientation(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOrientation(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestReadEXIF_Orientation(t *testing.T) {
	for _, v := range []uint16{1, 3, 6, 8} {
		data := testutil.JPEGWithOrientation(t, 8, 4, v)
		o, err := ReadEXIF(bytes.NewReader(data))
		if err != nil {
			t.Fatalf("ReadEXIF: %v", err)
		}
		if o != FromEXIF(int(v)) {
			t.Errorf("exif %d read as %v", v, o)
		}
	}
}

func TestReadEXIF_NoEXIF(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 3))); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	o, err := ReadEXIF(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadEXIF returned error for PNG: %v", err)
	}
	if o != Up {
		t.Fatalf("expected Up for PNG, got %v", o)
	}

	o, err = ReadEXIF(bytes.NewReader([]byte("not a valid image")))
	if err != nil || o != Up {
		t.Fatalf("expected Up without error for corrupt input, got %v, %v", o, err)
	}

	if o, err := ReadEXIF(nil); err != nil || o != Up {
		t.Fatalf("expected Up for nil reader, got %v, %v", o, err)
	}
}
