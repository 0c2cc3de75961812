package convert

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/woozymasta/svgeo/internal/geo"
	"github.com/woozymasta/svgeo/internal/geom"
	"github.com/woozymasta/svgeo/internal/svg"
)

func (lineElement) features(s scope) ([]*geo.Feature, error) {
	n := s.node
	ls := orb.LineString{
		s.proj.Project(n.Point("x1", "y1")),
		s.proj.Project(n.Point("x2", "y2")),
	}
	return []*geo.Feature{s.feature(ls)}, nil
}

func (rectElement) features(s scope) ([]*geo.Feature, error) {
	n := s.node
	x, y := n.Float("x", 0), n.Float("y", 0)
	w, h := n.Float("width", 0), n.Float("height", 0)
	if w <= 0 || h <= 0 {
		return nil, nil
	}

	rx, ry := radii(n)
	rx = geom.Clamp(rx, 0, w*0.5)
	ry = geom.Clamp(ry, 0, h*0.5)

	var ring []geom.Vector2
	if rx > 0 && ry > 0 {
		corners := [...]struct {
			center     geom.Vector2
			start, end float64
		}{
			{geom.Vec(x+rx, y+ry), 0.5, 0.75},
			{geom.Vec(x+w-rx, y+ry), 0.75, 1},
			{geom.Vec(x+w-rx, y+h-ry), 0, 0.25},
			{geom.Vec(x+rx, y+h-ry), 0.25, 0.5},
		}
		eps := 1e-9 * math.Max(w, h)
		for _, c := range corners {
			pts, err := s.flatten(func(t float64) geom.Vector2 {
				return geom.PointOnEllipse(c.center, rx, ry, t)
			}, c.start, c.end)
			if err != nil {
				return nil, err
			}
			for _, p := range pts {
				// corners meet on one point when the radius spans the whole side
				if len(ring) > 0 && geom.Distance(ring[len(ring)-1], p) <= eps {
					continue
				}
				ring = append(ring, p)
			}
		}
	} else {
		ring = []geom.Vector2{
			geom.Vec(x, y),
			geom.Vec(x+w, y),
			geom.Vec(x+w, y+h),
			geom.Vec(x, y+h),
		}
	}

	if ring[len(ring)-1] != ring[0] {
		ring = append(ring, ring[0])
	}

	return []*geo.Feature{s.feature(orb.Polygon{s.proj.ProjectAll(ring)})}, nil
}

// radii resolves rx and ry where a missing one takes the other's value.
func radii(n *svg.Node) (float64, float64) {
	rx, hasX := n.Attr("rx")
	ry, hasY := n.Attr("ry")
	switch {
	case hasX && !hasY:
		ry = rx
	case hasY && !hasX:
		rx = ry
	}

	parse := func(s string) float64 {
		v, err := svg.ParseFloat(s)
		if err != nil {
			return 0
		}
		return v
	}
	return parse(rx), parse(ry)
}

func (polylineElement) features(s scope) ([]*geo.Feature, error) {
	raw, _ := s.node.Attr("points")
	points := s.proj.ProjectAll(svg.ParsePoints(raw))

	switch len(points) {
	case 0:
		return nil, nil
	case 1:
		return []*geo.Feature{s.feature(points[0])}, nil
	default:
		return []*geo.Feature{s.feature(orb.LineString(points))}, nil
	}
}

func (polygonElement) features(s scope) ([]*geo.Feature, error) {
	raw, _ := s.node.Attr("points")
	points := s.proj.ProjectAll(svg.ParsePoints(raw))
	if len(points) == 0 {
		// no ring can be built without points, so nothing is emitted
		return nil, nil
	}

	ring := orb.Ring(append(points, points[0]))
	return []*geo.Feature{s.feature(orb.Polygon{ring})}, nil
}

func (ellipseElement) features(s scope) ([]*geo.Feature, error) {
	n := s.node
	center := n.Point("cx", "cy")

	var rx, ry float64
	if n.HasAttr("r") {
		rx = n.Float("r", 0)
		ry = rx
	} else {
		rx, ry = radii(n)
	}
	if rx <= 0 || ry <= 0 {
		return nil, nil
	}

	pts, err := s.flatten(func(t float64) geom.Vector2 {
		return geom.PointOnEllipse(center, rx, ry, t)
	}, 0, 1)
	if err != nil {
		return nil, err
	}

	ring := orb.Ring(s.proj.ProjectAll(pts))
	ring[len(ring)-1] = ring[0]

	return []*geo.Feature{s.feature(orb.Polygon{ring})}, nil
}
