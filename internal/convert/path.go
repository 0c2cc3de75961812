package convert

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/woozymasta/svgeo/internal/geo"
	"github.com/woozymasta/svgeo/internal/geom"
	"github.com/woozymasta/svgeo/internal/svg"
)

// pathOutput collects the geometry of one path element by kind.
type pathOutput struct {
	points []orb.Point
	lines  []orb.LineString
	rings  []orb.Ring
}

// pathState is the accumulator folded over the commands of one path.
type pathState struct {
	current orb.LineString
	// handle is the last control point of the previous curve, used by S and T.
	handle   geom.Vector2
	prevCode byte
	out      pathOutput
}

type pathInterpreter struct {
	proj       Projector
	threshold  float64
	mirrorArcs bool
}

func (pathElement) features(s scope) ([]*geo.Feature, error) {
	d, _ := s.node.Attr("d")
	cmds, err := svg.ParsePath(d)
	if err != nil {
		return nil, err
	}

	ip := pathInterpreter{
		proj:       s.proj,
		threshold:  s.opts.SubdivideThreshold,
		mirrorArcs: !s.opts.PreserveArcOrientation,
	}
	out, err := ip.run(cmds)
	if err != nil {
		return nil, err
	}

	features := make([]*geo.Feature, 0, len(out.points)+len(out.lines)+len(out.rings))
	for _, p := range out.points {
		features = append(features, s.feature(p))
	}
	for _, ls := range out.lines {
		features = append(features, s.feature(ls))
	}

	if s.opts.Composite && len(out.rings) > 0 {
		polys := compositeRings(out.rings)
		if len(polys) == 1 {
			return append(features, s.feature(polys[0])), nil
		}
		return append(features, s.feature(polys)), nil
	}

	for _, r := range out.rings {
		features = append(features, s.feature(orb.Polygon{r}))
	}
	return features, nil
}

func (ip pathInterpreter) run(cmds []svg.Command) (pathOutput, error) {
	var (
		state pathState
		err   error
	)
	for _, cmd := range cmds {
		if state, err = ip.step(state, cmd); err != nil {
			return pathOutput{}, err
		}
	}
	return state.flush().out, nil
}

// flush moves the open subpath into the output: one point becomes a
// Point, more become a LineString.
func (s pathState) flush() pathState {
	switch len(s.current) {
	case 0:
	case 1:
		s.out.points = append(s.out.points, s.current[0])
	default:
		s.out.lines = append(s.out.lines, s.current)
	}
	s.current = nil
	return s
}

func (ip pathInterpreter) step(s pathState, cmd svg.Command) (pathState, error) {
	prev := s.prevCode
	s.prevCode = cmd.Code()
	from, to := cmd.Start(), cmd.End()

	switch c := cmd.(type) {
	case svg.MoveTo:
		s = s.flush()
		s.current = orb.LineString{ip.proj.Project(to)}

	case svg.LineTo:
		s.current = append(s.current, ip.proj.Project(to))

	case svg.CubicTo:
		c1 := c.Control1
		if c.Op == 'S' {
			c1 = from
			if prev == 'C' || prev == 'S' {
				c1 = mirror(s.handle, from)
			}
		}
		pts, err := ip.flatten(func(t float64) geom.Vector2 {
			return geom.PointOnCubicBezier(from, c1, c.Control2, to, t)
		})
		if err != nil {
			return s, err
		}
		s.current = append(s.current, pts...)
		s.handle = c.Control2

	case svg.QuadTo:
		ctrl := c.Control
		if c.Op == 'T' {
			ctrl = from
			if prev == 'Q' || prev == 'T' {
				ctrl = mirror(s.handle, from)
			}
		}
		pts, err := ip.flatten(func(t float64) geom.Vector2 {
			return geom.PointOnQuadraticBezier(from, ctrl, to, t)
		})
		if err != nil {
			return s, err
		}
		s.current = append(s.current, pts...)
		s.handle = ctrl

	case svg.ArcTo:
		rotation, sweep := c.XAxisRotation, c.Sweep
		if ip.mirrorArcs {
			rotation, sweep = -rotation, !sweep
		}
		pts, err := ip.flatten(func(t float64) geom.Vector2 {
			return geom.PointOnEllipticalArc(from, to, c.RX, c.RY, rotation, c.LargeArc, sweep, t)
		})
		if err != nil {
			return s, err
		}
		s.current = append(s.current, pts...)

	case svg.ClosePath:
		if len(s.current) == 0 {
			break
		}
		ring := append(orb.Ring(s.current), s.current[0])
		s.out.rings = append(s.out.rings, ring)
		s.current = nil

	default:
		return s, fmt.Errorf("unexpected path command %c", cmd.Code())
	}

	return s, nil
}

func (ip pathInterpreter) flatten(curve geom.Curve) ([]orb.Point, error) {
	pts, err := geom.FlattenFull(curve, ip.threshold)
	if err != nil {
		return nil, err
	}
	return ip.proj.ProjectAll(pts), nil
}

// mirror reflects handle through p.
func mirror(handle, p geom.Vector2) geom.Vector2 {
	return p.Add(p.Subtract(handle))
}
