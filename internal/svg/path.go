package svg

import (
	"fmt"

	"github.com/tdewolff/parse/v2/strconv"
	"github.com/woozymasta/svgeo/internal/geom"
)

// PathError reports malformed path data.
type PathError struct {
	Reason string
	Pos    int
}

func (e *PathError) Error() string {
	return fmt.Sprintf("bad path data at position %d: %s", e.Pos, e.Reason)
}

// Command is one absolute path segment. The set of implementations is
// closed: MoveTo, LineTo, CubicTo, QuadTo, ArcTo and ClosePath.
type Command interface {
	// Code is the upper-case SVG command letter the segment came from.
	Code() byte
	// Start is the current point before the segment.
	Start() geom.Vector2
	// End is the current point after the segment.
	End() geom.Vector2
	segment()
}

type MoveTo struct {
	From, To geom.Vector2
}

// LineTo covers L, H and V; Op keeps the source letter.
type LineTo struct {
	From, To geom.Vector2
	Op       byte
}

// CubicTo covers C and S. Control1 is only meaningful for C; the first
// handle of S depends on the previous segment and is resolved by the caller.
type CubicTo struct {
	From, Control1, Control2, To geom.Vector2
	Op                           byte
}

// QuadTo covers Q and T. Control is only meaningful for Q.
type QuadTo struct {
	From, Control, To geom.Vector2
	Op                byte
}

type ArcTo struct {
	From, To      geom.Vector2
	RX, RY        float64
	XAxisRotation float64
	LargeArc      bool
	Sweep         bool
}

// ClosePath ends a subpath; To is the subpath's first point.
type ClosePath struct {
	From, To geom.Vector2
}

func (c MoveTo) Code() byte             { return 'M' }
func (c MoveTo) Start() geom.Vector2    { return c.From }
func (c MoveTo) End() geom.Vector2      { return c.To }
func (MoveTo) segment()                 {}
func (c LineTo) Code() byte             { return c.Op }
func (c LineTo) Start() geom.Vector2    { return c.From }
func (c LineTo) End() geom.Vector2      { return c.To }
func (LineTo) segment()                 {}
func (c CubicTo) Code() byte            { return c.Op }
func (c CubicTo) Start() geom.Vector2   { return c.From }
func (c CubicTo) End() geom.Vector2     { return c.To }
func (CubicTo) segment()                {}
func (c QuadTo) Code() byte             { return c.Op }
func (c QuadTo) Start() geom.Vector2    { return c.From }
func (c QuadTo) End() geom.Vector2      { return c.To }
func (QuadTo) segment()                 {}
func (c ArcTo) Code() byte              { return 'A' }
func (c ArcTo) Start() geom.Vector2     { return c.From }
func (c ArcTo) End() geom.Vector2       { return c.To }
func (ArcTo) segment()                  {}
func (c ClosePath) Code() byte          { return 'Z' }
func (c ClosePath) Start() geom.Vector2 { return c.From }
func (c ClosePath) End() geom.Vector2   { return c.To }
func (ClosePath) segment()              {}

var argCounts = map[byte]int{
	'M': 2,
	'Z': 0,
	'L': 2,
	'H': 1,
	'V': 1,
	'C': 6,
	'S': 4,
	'Q': 4,
	'T': 2,
	'A': 7,
}

// ParsePath parses the d attribute of a path element into absolute
// commands. Implicit repeats are expanded, a moveto followed by extra
// coordinate pairs continues as lineto.
func ParsePath(d string) ([]Command, error) {
	b := []byte(d)
	i := skipSeparators(b, 0)
	if i == len(b) {
		return nil, nil
	}
	if _, ok := argCounts[upper(b[i])]; !ok {
		return nil, &PathError{Pos: i, Reason: "path must start with a command"}
	}

	var (
		cmds         []Command
		cur, subpath geom.Vector2
		op           byte
		args         [7]float64
	)

	for {
		i = skipSeparators(b, i)
		if i >= len(b) {
			break
		}

		if _, ok := argCounts[upper(b[i])]; ok {
			op = b[i]
			i++
		} else if op == 0 || upper(op) == 'Z' {
			return nil, &PathError{Pos: i, Reason: fmt.Sprintf("unexpected character %q", b[i])}
		}

		OP := upper(op)
		for j := 0; j < argCounts[OP]; j++ {
			i = skipSeparators(b, i)
			if OP == 'A' && (j == 3 || j == 4) {
				if i < len(b) && (b[i] == '0' || b[i] == '1') {
					args[j] = float64(b[i] - '0')
					i++
					continue
				}
				return nil, &PathError{Pos: i, Reason: "arc flags must be 0 or 1"}
			}
			v, n := strconv.ParseFloat(b[i:])
			if n == 0 {
				return nil, &PathError{Pos: i, Reason: fmt.Sprintf("expected %d numbers after %q", argCounts[OP], op)}
			}
			args[j] = v
			i += n
		}

		var origin geom.Vector2
		if op != OP {
			origin = cur
		}
		abs := func(x, y float64) geom.Vector2 {
			return geom.Vec(origin.X+x, origin.Y+y)
		}

		switch OP {
		case 'M':
			to := abs(args[0], args[1])
			cmds = append(cmds, MoveTo{From: cur, To: to})
			cur, subpath = to, to
			if op == 'm' {
				op = 'l'
			} else {
				op = 'L'
			}
		case 'L':
			to := abs(args[0], args[1])
			cmds = append(cmds, LineTo{Op: 'L', From: cur, To: to})
			cur = to
		case 'H':
			to := geom.Vec(origin.X+args[0], cur.Y)
			cmds = append(cmds, LineTo{Op: 'H', From: cur, To: to})
			cur = to
		case 'V':
			to := geom.Vec(cur.X, origin.Y+args[0])
			cmds = append(cmds, LineTo{Op: 'V', From: cur, To: to})
			cur = to
		case 'C':
			c := CubicTo{
				Op:       'C',
				From:     cur,
				Control1: abs(args[0], args[1]),
				Control2: abs(args[2], args[3]),
				To:       abs(args[4], args[5]),
			}
			cmds = append(cmds, c)
			cur = c.To
		case 'S':
			c := CubicTo{
				Op:       'S',
				From:     cur,
				Control2: abs(args[0], args[1]),
				To:       abs(args[2], args[3]),
			}
			cmds = append(cmds, c)
			cur = c.To
		case 'Q':
			q := QuadTo{
				Op:      'Q',
				From:    cur,
				Control: abs(args[0], args[1]),
				To:      abs(args[2], args[3]),
			}
			cmds = append(cmds, q)
			cur = q.To
		case 'T':
			q := QuadTo{Op: 'T', From: cur, To: abs(args[0], args[1])}
			cmds = append(cmds, q)
			cur = q.To
		case 'A':
			a := ArcTo{
				From:          cur,
				RX:            args[0],
				RY:            args[1],
				XAxisRotation: args[2],
				LargeArc:      args[3] == 1,
				Sweep:         args[4] == 1,
				To:            abs(args[5], args[6]),
			}
			cmds = append(cmds, a)
			cur = a.To
		case 'Z':
			cmds = append(cmds, ClosePath{From: cur, To: subpath})
			cur = subpath
		}
	}

	return cmds, nil
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - ('a' - 'A')
	}
	return c
}
