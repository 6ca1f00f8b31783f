package geom

import (
	"math"
	"testing"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < eps }

func TestAffine_BuilderOrder(t *testing.T) {
	// translate then rotate: the rotation is applied to the point first.
	m := Identity.Translated(10, 0).Rotated(math.Pi / 2)
	x, y := m.Apply(1, 0)
	if !near(x, 10) || !near(y, 1) {
		t.Fatalf("expected (10,1), got (%v,%v)", x, y)
	}

	// the reverse order shifts first.
	m = Identity.Rotated(math.Pi / 2).Translated(10, 0)
	x, y = m.Apply(1, 0)
	if !near(x, 0) || !near(y, 11) {
		t.Fatalf("expected (0,11), got (%v,%v)", x, y)
	}
}

func TestRotation_QuarterTurnsAreExact(t *testing.T) {
	tests := []struct {
		angle      float64
		a, b, c, d float64
	}{
		{0, 1, 0, 0, 1},
		{math.Pi / 2, 0, 1, -1, 0},
		{math.Pi, -1, 0, 0, -1},
		{-math.Pi / 2, 0, -1, 1, 0},
		{3 * math.Pi / 2, 0, -1, 1, 0},
		{2 * math.Pi, 1, 0, 0, 1},
	}
	for _, tt := range tests {
		r := Rotation(tt.angle)
		if r.A != tt.a || r.B != tt.b || r.C != tt.c || r.D != tt.d {
			t.Errorf("Rotation(%v) = %+v, want a=%v b=%v c=%v d=%v", tt.angle, r, tt.a, tt.b, tt.c, tt.d)
		}
	}
}

func TestRotation_Arbitrary(t *testing.T) {
	r := Rotation(math.Pi / 4)
	x, y := r.Apply(1, 0)
	if !near(x, math.Sqrt2/2) || !near(y, math.Sqrt2/2) {
		t.Fatalf("unexpected rotation result (%v,%v)", x, y)
	}
}

func TestAffine_Invert(t *testing.T) {
	m := Identity.Translated(30, -4).Rotated(0.3).Scaled(2, -0.5)
	inv, ok := m.Invert()
	if !ok {
		t.Fatal("expected invertible transform")
	}
	for _, p := range [][2]float64{{0, 0}, {1, 2}, {-7, 13.5}} {
		x, y := m.Apply(p[0], p[1])
		bx, by := inv.Apply(x, y)
		if !near(bx, p[0]) || !near(by, p[1]) {
			t.Errorf("round trip of %v gave (%v,%v)", p, bx, by)
		}
	}
	if id := m.Concat(inv); !near(id.A, 1) || !near(id.D, 1) || !near(id.B, 0) || !near(id.C, 0) || !near(id.Tx, 0) || !near(id.Ty, 0) {
		t.Errorf("m*inv = %+v, want identity", id)
	}

	if _, ok := Scaling(0, 1).Invert(); ok {
		t.Fatal("expected singular transform to fail inversion")
	}
}

func TestAffine_ApplyRect(t *testing.T) {
	r := Rect{Width: 100, Height: 50}
	got := Identity.Translated(50, 0).Rotated(math.Pi / 2).ApplyRect(r)
	want := Rect{X: 0, Y: 0, Width: 50, Height: 100}
	if got != want {
		t.Fatalf("ApplyRect = %+v, want %+v", got, want)
	}
}

func TestRect_Integral(t *testing.T) {
	tests := []struct {
		in, want Rect
	}{
		{Rect{Width: 50, Height: 25}, Rect{Width: 50, Height: 25}},
		{Rect{Width: 33.3, Height: 10.01}, Rect{Width: 34, Height: 11}},
		{Rect{X: 0.5, Y: 1.2, Width: 2, Height: 2}, Rect{X: 0, Y: 1, Width: 3, Height: 3}},
	}
	for _, tt := range tests {
		if got := tt.in.Integral(); got != tt.want {
			t.Errorf("Integral(%+v) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestSize_Transposed(t *testing.T) {
	s := Size{Width: 3, Height: 7}.Transposed()
	if s.Width != 7 || s.Height != 3 {
		t.Fatalf("unexpected transposed size %+v", s)
	}
}
