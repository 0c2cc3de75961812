package geom

import (
	"errors"
	"math"
	"testing"
)

func arc1(t float64) Vector2 {
	return PointOnEllipticalArc(Vec(40, 50), Vec(120, 80), 3, 1, 0, false, false, t)
}

func arc2(t float64) Vector2 {
	return PointOnEllipticalArc(Vec(250, 100), Vec(250, 200), 120, 80, 45, true, true, t)
}

func arc3(t float64, largeArc, sweep bool) Vector2 {
	return PointOnEllipticalArc(Vec(250, 100), Vec(250, 200), 120, 80, 0, largeArc, sweep, t)
}

func TestClampLerp(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"clamp inside", Clamp(0.5, 0, 1), 0.5},
		{"clamp low", Clamp(-1, 0, 1), 0},
		{"clamp high", Clamp(2, 0, 1), 1},
		{"lerp mid", Lerp(1, 3, 0.5), 2},
		{"lerp end", Lerp(0, 10, 1), 10},
		{"lerp symmetric", Lerp(-3, 3, 0.5), 0},
		{"to radians", ToRadians(180), math.Pi},
		{"to radians negative", ToRadians(-360), -2 * math.Pi},
		{"to degrees", ToDegrees(math.Pi), 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !almostEqual(tt.got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, tt.got)
			}
		})
	}
}

func TestPointOnLine(t *testing.T) {
	a, b := Vec(1, 3), Vec(3, 1)
	assertVec(t, PointOnLine(a, b, 0), 1, 3)
	assertVec(t, PointOnLine(a, b, 0.5), 2, 2)
	assertVec(t, PointOnLine(a, b, 1), 3, 1)
	assertVec(t, PointOnLine(a, b, -1), 1, 3)
	assertVec(t, PointOnLine(a, b, 2), 3, 1)
}

func TestPointOnEllipse(t *testing.T) {
	c := Vec(0, 0)
	assertVec(t, PointOnEllipse(c, 1, 1, 0), 1, 0)
	assertVec(t, PointOnEllipse(c, 1, 1, 0.25), 0, 1)
	assertVec(t, PointOnEllipse(c, 1, 1, 0.5), -1, 0)
	assertVec(t, PointOnEllipse(c, 1, 1, 0.75), 0, -1)
	assertVec(t, PointOnEllipse(c, 1, 1, 1), 1, 0)

	start := PointOnEllipse(Vec(4, 5), 3, 2, 0)
	end := PointOnEllipse(Vec(4, 5), 3, 2, 1)
	assertVec(t, end, start.X, start.Y)
	assertVec(t, start, 7, 5)
}

func TestPointOnBezier(t *testing.T) {
	p0, p1, p2, p3 := Vec(0, 0), Vec(0, 1), Vec(1, 0), Vec(1, 1)
	assertVec(t, PointOnCubicBezier(p0, p1, p2, p3, 0), 0, 0)
	assertVec(t, PointOnCubicBezier(p0, p1, p2, p3, 0.5), 0.5, 0.5)
	assertVec(t, PointOnCubicBezier(p0, p1, p2, p3, 1), 1, 1)
	assertVec(t, PointOnCubicBezier(p0, p1, p2, p3, 7), 1, 1)

	q0, q1, q2 := Vec(0, 0), Vec(0.5, 0.5), Vec(1, 1)
	assertVec(t, PointOnQuadraticBezier(q0, q1, q2, 0), 0, 0)
	assertVec(t, PointOnQuadraticBezier(q0, q1, q2, 0.5), 0.5, 0.5)
	assertVec(t, PointOnQuadraticBezier(q0, q1, q2, 1), 1, 1)
	assertVec(t, PointOnQuadraticBezier(q0, q1, q2, -1), 0, 0)
}

func TestPointOnEllipticalArc(t *testing.T) {
	t.Run("endpoints", func(t *testing.T) {
		assertVec(t, arc1(0), 40, 50)
		assertVec(t, arc2(0), 250, 100)
		assertVec(t, arc3(0, false, false), 250, 100)
		assertVec(t, arc1(1), 120, 80)
		assertVec(t, arc2(1), 250, 200)
		assertVec(t, arc3(1, false, false), 250, 200)
	})

	t.Run("samples", func(t *testing.T) {
		assertVec(t, arc1(0.35), 21.7450864219, 70.07022949308)
		assertVec(t, arc1(0.82), 89.660911246025, 84.80927614891685)
		assertVec(t, arc2(0.5), 438.38624784078576, 222.45624916953307)
	})

	t.Run("flags", func(t *testing.T) {
		assertVec(t, arc3(0.5, false, false), 223.67496997597596, 150)
		assertVec(t, arc3(0.5, false, true), 276.32503002402404, 150)
		assertVec(t, arc3(0.5, true, true), 463.67496997597596, 150)
		assertVec(t, arc3(0.5, true, false), 36.325030024024045, 150)
	})

	t.Run("zero radius is a line", func(t *testing.T) {
		got := PointOnEllipticalArc(Vec(0, 0), Vec(10, 20), 0, 80, 45, true, true, 0.5)
		assertVec(t, got, 5, 10)
		got = PointOnEllipticalArc(Vec(0, 0), Vec(10, 20), 120, 0, 45, true, true, 0.5)
		assertVec(t, got, 5, 10)
	})

	t.Run("identical endpoints", func(t *testing.T) {
		got := PointOnEllipticalArc(Vec(3, 4), Vec(3, 4), 10, 10, 0, true, true, 0.5)
		assertVec(t, got, 3, 4)
	})
}

func TestDrawCurve(t *testing.T) {
	circle := func(t float64) Vector2 { return PointOnEllipse(Vec(0, 0), 1, 1, t) }

	t.Run("bounds", func(t *testing.T) {
		points, err := DrawCurve(circle, 1, 0, 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		first, last := points[0], points[len(points)-1]
		assertVec(t, first, 1, 0)
		assertVec(t, last, 1, 0)
	})

	t.Run("ordered quarter turns", func(t *testing.T) {
		points, err := FlattenFull(circle, 33)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := []Vector2{Vec(1, 0), Vec(0, 1), Vec(-1, 0), Vec(0, -1), Vec(1, 0)}
		if len(points) != len(want) {
			t.Fatalf("expected %d points, got %d", len(want), len(points))
		}
		for i, p := range points {
			assertVec(t, p, want[i].X, want[i].Y)
		}
	})

	t.Run("coarse threshold keeps endpoints", func(t *testing.T) {
		p0, p1, p2 := Vec(0, 0), Vec(2, 8), Vec(4, 0)
		points, err := FlattenFull(func(t float64) Vector2 {
			return PointOnQuadraticBezier(p0, p1, p2, t)
		}, 90)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(points) < 2 {
			t.Fatalf("expected at least 2 points, got %d", len(points))
		}
		assertVec(t, points[0], 0, 0)
		assertVec(t, points[len(points)-1], 4, 0)
	})

	t.Run("sub range", func(t *testing.T) {
		points, err := DrawCurve(circle, 5, 0.25, 0.5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertVec(t, points[0], 0, 1)
		assertVec(t, points[len(points)-1], -1, 0)
	})

	t.Run("degenerate curve terminates", func(t *testing.T) {
		points, err := FlattenFull(func(float64) Vector2 { return Vec(2, 2) }, 5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(points) < 2 {
			t.Fatalf("expected at least 2 points, got %d", len(points))
		}
	})

	t.Run("contract violations", func(t *testing.T) {
		if _, err := DrawCurve(circle, 0, 0, 1); !errors.Is(err, ErrInvalidThreshold) {
			t.Errorf("expected ErrInvalidThreshold, got %v", err)
		}
		if _, err := DrawCurve(circle, -2, 0, 1); !errors.Is(err, ErrInvalidThreshold) {
			t.Errorf("expected ErrInvalidThreshold, got %v", err)
		}
		if _, err := DrawCurve(circle, 5, -0.1, 1); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("expected ErrInvalidRange, got %v", err)
		}
		if _, err := DrawCurve(circle, 5, 0, 1.5); !errors.Is(err, ErrInvalidRange) {
			t.Errorf("expected ErrInvalidRange, got %v", err)
		}
	})
}

func TestPointOnEllipticalArcScaledRadii(t *testing.T) {
	// radii far too small for the endpoints are scaled up to a half ellipse
	starts := []Vector2{Vec(37.37, 0.55), Vec(0.74, 2.09), Vec(12, 3), Vec(0, 0)}
	for _, p0 := range starts {
		for x := 0; x < 200; x += 7 {
			for y := 0; y < 50; y += 3 {
				p1 := Vec(float64(x)+0.91, float64(y)+0.65)
				for _, tt := range []float64{0, 0.25, 0.5, 0.75, 1} {
					got := PointOnEllipticalArc(p0, p1, 0.5, 0.3, 30, false, true, tt)
					if math.IsNaN(got.X) || math.IsNaN(got.Y) {
						t.Fatalf("NaN at t=%v for p0=%v p1=%v", tt, p0, p1)
					}
				}
				if end := PointOnEllipticalArc(p0, p1, 0.5, 0.3, 30, false, true, 1); Distance(end, p1) > 1e-6 {
					t.Errorf("Expected arc to end at %v, got %v", p1, end)
				}
			}
		}
	}
}
