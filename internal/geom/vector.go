// Package geom holds the planar math used to flatten SVG geometry:
// vectors, affine matrices and parametric curve evaluators.
package geom

import (
	"errors"
	"math"
)

// ErrVectorLength is returned by FromSlice when the input is not a pair.
var ErrVectorLength = errors.New("vector slice length must be 2")

// Vector2 is an immutable 2D point or direction in SVG user space.
type Vector2 struct {
	X float64
	Y float64
}

// Vec is shorthand for Vector2{x, y}.
func Vec(x, y float64) Vector2 {
	return Vector2{X: x, Y: y}
}

// FromSlice builds a vector from a two element slice.
func FromSlice(s []float64) (Vector2, error) {
	if len(s) != 2 {
		return Vector2{}, ErrVectorLength
	}
	return Vector2{X: s[0], Y: s[1]}, nil
}

// Dot returns the dot product of u and v.
func Dot(u, v Vector2) float64 {
	return u.X*v.X + u.Y*v.Y
}

// Distance returns the euclidean distance between u and v.
func Distance(u, v Vector2) float64 {
	return v.Subtract(u).Magnitude()
}

// AngleBetween returns the signed angle in radians from a to b.
// The sign follows the 2D cross product; the magnitude is acos of the
// normalized dot product, so the result lies in (-Pi, Pi]. A zero vector
// yields 0.
func AngleBetween(a, b Vector2) float64 {
	p := a.X*b.X + a.Y*b.Y
	n := math.Sqrt((a.X*a.X + a.Y*a.Y) * (b.X*b.X + b.Y*b.Y))
	if n == 0 {
		return 0
	}
	sign := 1.0
	if a.X*b.Y-a.Y*b.X < 0 {
		sign = -1
	}
	// rounding can push nearly parallel ratios just past ±1
	return sign * math.Acos(Clamp(p/n, -1, 1))
}

// Add returns v + u.
func (v Vector2) Add(u Vector2) Vector2 {
	return Vector2{X: v.X + u.X, Y: v.Y + u.Y}
}

// Subtract returns v - u.
func (v Vector2) Subtract(u Vector2) Vector2 {
	return Vector2{X: v.X - u.X, Y: v.Y - u.Y}
}

// AddScalar adds n to both components.
func (v Vector2) AddScalar(n float64) Vector2 {
	return Vector2{X: v.X + n, Y: v.Y + n}
}

// SubtractScalar subtracts n from both components.
func (v Vector2) SubtractScalar(n float64) Vector2 {
	return Vector2{X: v.X - n, Y: v.Y - n}
}

// MultiplyByScalar scales v by n.
func (v Vector2) MultiplyByScalar(n float64) Vector2 {
	return Vector2{X: v.X * n, Y: v.Y * n}
}

// Negate returns -v.
func (v Vector2) Negate() Vector2 {
	return Vector2{X: -v.X, Y: -v.Y}
}

// Magnitude returns the length of v.
func (v Vector2) Magnitude() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// Normalize returns a unit vector pointing the same way as v.
// The zero vector normalizes to itself.
func (v Vector2) Normalize() Vector2 {
	m := v.Magnitude()
	if m == 0 {
		return Vector2{}
	}
	return Vector2{X: v.X / m, Y: v.Y / m}
}

// Perpendicular returns v turned by a quarter turn.
func (v Vector2) Perpendicular(clockwise bool) Vector2 {
	if clockwise {
		return Vector2{X: v.Y, Y: -v.X}
	}
	return Vector2{X: -v.Y, Y: v.X}
}

// Rotate returns v rotated by deg degrees.
func (v Vector2) Rotate(deg float64) Vector2 {
	rad := ToRadians(deg)
	sin, cos := math.Sincos(rad)
	return Vector2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Slice returns v as []float64{x, y}.
func (v Vector2) Slice() []float64 {
	return []float64{v.X, v.Y}
}
