package geom

import "math"

// Matrix is a 2D affine transform in SVG order:
//
//	| A  C  E |
//	| B  D  F |
//	| 0  0  1 |
//
// so that x' = A*x + C*y + E and y' = B*x + D*y + F, matching
// the argument order of the SVG matrix(a,b,c,d,e,f) function.
type Matrix struct {
	A, B, C, D, E, F float64
}

// Identity is the transform that leaves points unchanged.
var Identity = Matrix{A: 1, D: 1}

// Translate returns a translation by (tx, ty).
func Translate(tx, ty float64) Matrix {
	return Matrix{A: 1, D: 1, E: tx, F: ty}
}

// Scale returns a scale by (sx, sy).
func Scale(sx, sy float64) Matrix {
	return Matrix{A: sx, D: sy}
}

// Rotate returns a rotation by deg degrees about the origin.
func Rotate(deg float64) Matrix {
	sin, cos := math.Sincos(ToRadians(deg))
	return Matrix{A: cos, B: sin, C: -sin, D: cos}
}

// RotateAbout returns a rotation by deg degrees about (cx, cy).
func RotateAbout(deg, cx, cy float64) Matrix {
	return Translate(cx, cy).Multiply(Rotate(deg)).Multiply(Translate(-cx, -cy))
}

// SkewX returns a horizontal skew by deg degrees.
func SkewX(deg float64) Matrix {
	return Matrix{A: 1, C: math.Tan(ToRadians(deg)), D: 1}
}

// SkewY returns a vertical skew by deg degrees.
func SkewY(deg float64) Matrix {
	return Matrix{A: 1, B: math.Tan(ToRadians(deg)), D: 1}
}

// Multiply returns m × n: n is applied to a point first, then m.
func (m Matrix) Multiply(n Matrix) Matrix {
	return Matrix{
		A: m.A*n.A + m.C*n.B,
		B: m.B*n.A + m.D*n.B,
		C: m.A*n.C + m.C*n.D,
		D: m.B*n.C + m.D*n.D,
		E: m.A*n.E + m.C*n.F + m.E,
		F: m.B*n.E + m.D*n.F + m.F,
	}
}

// Apply transforms p by m.
func (m Matrix) Apply(p Vector2) Vector2 {
	return Vector2{
		X: m.A*p.X + m.C*p.Y + m.E,
		Y: m.B*p.X + m.D*p.Y + m.F,
	}
}

// IsIdentity reports whether m leaves every point unchanged.
func (m Matrix) IsIdentity() bool {
	return m == Identity
}
