package geom

import "math"

// Affine is a 2D affine transform:
//
//	x' = A*x + C*y + Tx
//	y' = B*x + D*y + Ty
//
// The builder methods (Translated, Rotated, Scaled) prepend their step, so
// the step added last is the first one applied to a point. This is the
// order a drawing context uses when the transform is concatenated to its
// current transformation matrix.
type Affine struct {
	A, B, C, D float64
	Tx, Ty     float64
}

// Identity leaves every point unchanged.
var Identity = Affine{A: 1, D: 1}

// Translation returns a transform that shifts points by (tx, ty).
func Translation(tx, ty float64) Affine {
	return Affine{A: 1, D: 1, Tx: tx, Ty: ty}
}

// Scaling returns a transform that scales points about the origin.
func Scaling(sx, sy float64) Affine {
	return Affine{A: sx, D: sy}
}

// Rotation returns a counter-clockwise rotation by angle radians about the
// origin (in a y-up coordinate system). Multiples of a quarter turn use
// exact sine and cosine values so that orientation corrections stay
// aligned to the pixel grid.
func Rotation(angle float64) Affine {
	sin, cos := sincos(angle)
	return Affine{A: cos, B: sin, C: -sin, D: cos}
}

func sincos(angle float64) (float64, float64) {
	q := angle / (math.Pi / 2)
	if n := math.Round(q); math.Abs(q-n) < 1e-12 {
		switch int(math.Mod(math.Mod(n, 4)+4, 4)) {
		case 0:
			return 0, 1
		case 1:
			return 1, 0
		case 2:
			return 0, -1
		case 3:
			return -1, 0
		}
	}
	return math.Sincos(angle)
}

// Concat returns the transform that applies m first and then t.
func (t Affine) Concat(m Affine) Affine {
	return Affine{
		A:  t.A*m.A + t.C*m.B,
		B:  t.B*m.A + t.D*m.B,
		C:  t.A*m.C + t.C*m.D,
		D:  t.B*m.C + t.D*m.D,
		Tx: t.A*m.Tx + t.C*m.Ty + t.Tx,
		Ty: t.B*m.Tx + t.D*m.Ty + t.Ty,
	}
}

func (t Affine) Translated(tx, ty float64) Affine { return t.Concat(Translation(tx, ty)) }
func (t Affine) Rotated(angle float64) Affine     { return t.Concat(Rotation(angle)) }
func (t Affine) Scaled(sx, sy float64) Affine     { return t.Concat(Scaling(sx, sy)) }

// Apply maps the point (x, y).
func (t Affine) Apply(x, y float64) (float64, float64) {
	return t.A*x + t.C*y + t.Tx, t.B*x + t.D*y + t.Ty
}

// ApplyRect returns the bounding box of r after mapping its corners.
func (t Affine) ApplyRect(r Rect) Rect {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range r.Corners() {
		x, y := t.Apply(c[0], c[1])
		minX, maxX = math.Min(minX, x), math.Max(maxX, x)
		minY, maxY = math.Min(minY, y), math.Max(maxY, y)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Invert returns the inverse transform. It reports false when t is
// singular.
func (t Affine) Invert() (Affine, bool) {
	det := t.A*t.D - t.B*t.C
	if det == 0 || math.IsNaN(det) || math.IsInf(det, 0) {
		return Affine{}, false
	}
	return Affine{
		A:  t.D / det,
		B:  -t.B / det,
		C:  -t.C / det,
		D:  t.A / det,
		Tx: (t.C*t.Ty - t.D*t.Tx) / det,
		Ty: (t.B*t.Tx - t.A*t.Ty) / det,
	}, true
}

func (t Affine) IsIdentity() bool { return t == Identity }
