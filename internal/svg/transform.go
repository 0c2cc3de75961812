package svg

import (
	"fmt"
	"strings"

	"github.com/tdewolff/parse/v2/strconv"
	"github.com/woozymasta/svgeo/internal/geom"
)

// TransformError reports a malformed transform attribute.
type TransformError struct {
	Value  string
	Reason string
}

func (e *TransformError) Error() string {
	return fmt.Sprintf("bad transform %q: %s", e.Value, e.Reason)
}

// ParseTransform parses an SVG transform list into a single matrix.
// Functions compose left to right as written, so the rightmost one is
// applied to a point first.
func ParseTransform(s string) (geom.Matrix, error) {
	b := []byte(s)
	m := geom.Identity

	i := 0
	for {
		i = skipSeparators(b, i)
		if i >= len(b) {
			break
		}

		start := i
		for i < len(b) && (b[i] >= 'a' && b[i] <= 'z' || b[i] >= 'A' && b[i] <= 'Z') {
			i++
		}
		name := strings.ToLower(string(b[start:i]))
		if name == "" {
			return m, &TransformError{Value: s, Reason: fmt.Sprintf("expected function name at %d", start)}
		}

		i = skipSpaces(b, i)
		if i >= len(b) || b[i] != '(' {
			return m, &TransformError{Value: s, Reason: fmt.Sprintf("expected '(' after %s", name)}
		}
		i++

		var args []float64
		for {
			i = skipSeparators(b, i)
			if i >= len(b) {
				return m, &TransformError{Value: s, Reason: "unterminated argument list"}
			}
			if b[i] == ')' {
				i++
				break
			}
			v, n := strconv.ParseFloat(b[i:])
			if n == 0 {
				return m, &TransformError{Value: s, Reason: fmt.Sprintf("invalid argument at %d", i)}
			}
			args = append(args, v)
			i += n
		}

		t, err := transformFunc(name, args)
		if err != nil {
			return m, &TransformError{Value: s, Reason: err.Error()}
		}
		m = m.Multiply(t)
	}

	return m, nil
}

func transformFunc(name string, args []float64) (geom.Matrix, error) {
	n := len(args)
	switch name {
	case "matrix":
		if n == 6 {
			return geom.Matrix{A: args[0], B: args[1], C: args[2], D: args[3], E: args[4], F: args[5]}, nil
		}
	case "translate":
		switch n {
		case 1:
			return geom.Translate(args[0], 0), nil
		case 2:
			return geom.Translate(args[0], args[1]), nil
		}
	case "scale":
		switch n {
		case 1:
			return geom.Scale(args[0], args[0]), nil
		case 2:
			return geom.Scale(args[0], args[1]), nil
		}
	case "rotate":
		switch n {
		case 1:
			return geom.Rotate(args[0]), nil
		case 3:
			return geom.RotateAbout(args[0], args[1], args[2]), nil
		}
	case "skewx":
		if n == 1 {
			return geom.SkewX(args[0]), nil
		}
	case "skewy":
		if n == 1 {
			return geom.SkewY(args[0]), nil
		}
	default:
		return geom.Identity, fmt.Errorf("unknown function %s", name)
	}
	return geom.Identity, fmt.Errorf("%s takes a different number of arguments than %d", name, n)
}
