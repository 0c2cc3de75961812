package geom

import "testing"

func TestMatrixApply(t *testing.T) {
	tests := []struct {
		name  string
		m     Matrix
		in    Vector2
		wantX float64
		wantY float64
	}{
		{"identity", Identity, Vec(3, 4), 3, 4},
		{"translate", Translate(10, -5), Vec(1, 1), 11, -4},
		{"scale", Scale(2, 3), Vec(1, 1), 2, 3},
		{"rotate 90", Rotate(90), Vec(1, 0), 0, 1},
		{"rotate about", RotateAbout(180, 5, 5), Vec(0, 5), 10, 5},
		{"skew x 45", SkewX(45), Vec(0, 1), 1, 1},
		{"skew y 45", SkewY(45), Vec(1, 0), 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertVec(t, tt.m.Apply(tt.in), tt.wantX, tt.wantY)
		})
	}
}

func TestMatrixMultiplyOrder(t *testing.T) {
	// translate then scale, written as SVG "translate(10,0) scale(2)":
	// the scale applies to the point first.
	m := Translate(10, 0).Multiply(Scale(2, 2))
	assertVec(t, m.Apply(Vec(1, 1)), 12, 2)

	n := Scale(2, 2).Multiply(Translate(10, 0))
	assertVec(t, n.Apply(Vec(1, 1)), 22, 2)
}

func TestMatrixIsIdentity(t *testing.T) {
	if !Identity.IsIdentity() {
		t.Error("Identity should report identity")
	}
	if Translate(1, 0).IsIdentity() {
		t.Error("translation should not report identity")
	}
	if !Translate(0, 0).Multiply(Scale(1, 1)).IsIdentity() {
		t.Error("neutral composition should report identity")
	}
}
