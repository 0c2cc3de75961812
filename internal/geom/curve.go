package geom

import (
	"errors"
	"math"
)

var (
	// ErrInvalidThreshold is returned when the subdivision angle is not positive.
	ErrInvalidThreshold = errors.New("subdivide threshold must be greater than zero")

	// ErrInvalidRange is returned when a flattening bound is outside [0,1].
	ErrInvalidRange = errors.New("curve start and end must be between 0 and 1")
)

// maxSubdivisions bounds DrawCurve recursion for curves whose angle test
// never settles (cusps, NaN directions).
const maxSubdivisions = 20

// Curve evaluates a parametric curve at t in [0,1].
type Curve func(t float64) Vector2

// Clamp limits n to [lo, hi].
func Clamp(n, lo, hi float64) float64 {
	return math.Min(math.Max(lo, n), hi)
}

// Lerp interpolates linearly between a and b.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// ToRadians converts degrees to radians.
func ToRadians(deg float64) float64 {
	return (math.Pi / 180) * deg
}

// ToDegrees converts radians to degrees.
func ToDegrees(rad float64) float64 {
	return (180 / math.Pi) * rad
}

// PointOnLine returns the point t along p0→p1, t clamped to [0,1].
func PointOnLine(p0, p1 Vector2, t float64) Vector2 {
	t = Clamp(t, 0, 1)
	return Vector2{
		X: Lerp(p0.X, p1.X, t),
		Y: Lerp(p0.Y, p1.Y, t),
	}
}

// PointOnEllipse returns the point at angle 2*Pi*t on an axis aligned ellipse.
func PointOnEllipse(center Vector2, rx, ry, t float64) Vector2 {
	theta := math.Pi * 2 * t
	return Vector2{
		X: center.X + rx*math.Cos(theta),
		Y: center.Y + ry*math.Sin(theta),
	}
}

// PointOnCubicBezier evaluates a cubic Bezier curve in Bernstein form.
func PointOnCubicBezier(p0, p1, p2, p3 Vector2, t float64) Vector2 {
	t = Clamp(t, 0, 1)
	f := func(x0, x1, x2, x3 float64) float64 {
		n := 1 - t
		return n*n*n*x0 + 3*n*n*t*x1 + 3*n*t*t*x2 + t*t*t*x3
	}
	return Vector2{
		X: f(p0.X, p1.X, p2.X, p3.X),
		Y: f(p0.Y, p1.Y, p2.Y, p3.Y),
	}
}

// PointOnQuadraticBezier evaluates a quadratic Bezier curve in Bernstein form.
func PointOnQuadraticBezier(p0, p1, p2 Vector2, t float64) Vector2 {
	t = Clamp(t, 0, 1)
	f := func(x0, x1, x2 float64) float64 {
		n := 1 - t
		return n*n*x0 + 2*n*t*x1 + t*t*x2
	}
	return Vector2{
		X: f(p0.X, p1.X, p2.X),
		Y: f(p0.Y, p1.Y, p2.Y),
	}
}

// PointOnEllipticalArc evaluates an SVG elliptical arc given in endpoint
// parameterization. See https://www.w3.org/TR/SVG/implnote.html#ArcConversionEndpointToCenter
func PointOnEllipticalArc(p0, p1 Vector2, rx, ry, xAxisRotation float64, largeArc, sweep bool, t float64) Vector2 {
	rx = math.Abs(rx)
	ry = math.Abs(ry)
	rot := ToRadians(math.Mod(xAxisRotation, 360))
	t = Clamp(t, 0, 1)

	// Identical endpoints omit the arc entirely.
	if p0.X == p1.X && p0.Y == p1.Y {
		return p0
	}
	// A zero radius degrades to a straight segment.
	if rx == 0 || ry == 0 {
		return PointOnLine(p0, p1, t)
	}

	sin, cos := math.Sincos(rot)
	dx := (p0.X - p1.X) * 0.5
	dy := (p0.Y - p1.Y) * 0.5
	tp := Vector2{
		X: cos*dx + sin*dy,
		Y: -sin*dx + cos*dy,
	}

	// Scale radii up when they cannot span the endpoints.
	radiiCheck := (tp.X*tp.X)/(rx*rx) + (tp.Y*tp.Y)/(ry*ry)
	if radiiCheck > 1 {
		root := math.Sqrt(radiiCheck)
		rx *= root
		ry *= root
	}

	rx2, ry2 := rx*rx, ry*ry
	num := rx2*ry2 - rx2*tp.Y*tp.Y - ry2*tp.X*tp.X
	den := rx2*tp.Y*tp.Y + ry2*tp.X*tp.X
	// Precision can push the radicand slightly negative.
	radicand := math.Max(num/den, 0)
	coef := math.Sqrt(radicand)
	if largeArc == sweep {
		coef = -coef
	}
	tc := Vector2{
		X: coef * ((rx * tp.Y) / ry),
		Y: coef * (-(ry * tp.X) / rx),
	}

	center := Vector2{
		X: cos*tc.X - sin*tc.Y + (p0.X+p1.X)/2,
		Y: sin*tc.X + cos*tc.Y + (p0.Y+p1.Y)/2,
	}

	startVector := Vector2{
		X: (tp.X - tc.X) / rx,
		Y: (tp.Y - tc.Y) / ry,
	}
	startAngle := AngleBetween(Vector2{X: 1}, startVector)
	endVector := Vector2{
		X: (-tp.X - tc.X) / rx,
		Y: (-tp.Y - tc.Y) / ry,
	}
	sweepAngle := AngleBetween(startVector, endVector)

	if !sweep && sweepAngle > 0 {
		sweepAngle -= 2 * math.Pi
	} else if sweep && sweepAngle < 0 {
		sweepAngle += 2 * math.Pi
	}
	sweepAngle = math.Mod(sweepAngle, 2*math.Pi)

	angle := startAngle + sweepAngle*t
	ex := rx * math.Cos(angle)
	ey := ry * math.Sin(angle)

	return Vector2{
		X: cos*ex - sin*ey + center.X,
		Y: sin*ex + cos*ey + center.Y,
	}
}

// DrawCurve flattens curve over [start, end] into a polyline. A span is
// bisected while the angle between start→middle and start→end exceeds
// threshold degrees. The full [0,1] span is always split once so that
// closed curves, whose endpoints coincide, still produce a ring.
func DrawCurve(curve Curve, threshold, start, end float64) ([]Vector2, error) {
	if threshold <= 0 {
		return nil, ErrInvalidThreshold
	}
	if start < 0 || start > 1 || end < 0 || end > 1 {
		return nil, ErrInvalidRange
	}
	return drawCurve(curve, threshold, start, end, 0), nil
}

// FlattenFull is DrawCurve over the full [0,1] span.
func FlattenFull(curve Curve, threshold float64) ([]Vector2, error) {
	return DrawCurve(curve, threshold, 0, 1)
}

func drawCurve(curve Curve, threshold, start, end float64, depth int) []Vector2 {
	middle := Lerp(start, end, 0.5)
	startPoint := curve(start)
	midPoint := curve(middle)
	endPoint := curve(end)

	toMid := midPoint.Subtract(startPoint)
	toEnd := endPoint.Subtract(startPoint)
	angle := ToDegrees(math.Abs(AngleBetween(toMid, toEnd)))

	forced := start == 0 && end == 1
	if depth < maxSubdivisions && (forced || angle > threshold) {
		left := drawCurve(curve, threshold, start, middle, depth+1)
		right := drawCurve(curve, threshold, middle, end, depth+1)
		return append(left, right[1:]...)
	}
	return []Vector2{startPoint, endPoint}
}
