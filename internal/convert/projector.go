package convert

import (
	"github.com/paulmach/orb"
	"github.com/woozymasta/svgeo/internal/geo"
	"github.com/woozymasta/svgeo/internal/geom"
)

// Projector maps points from SVG user space to longitude and latitude.
// It is a value: Transform returns a new projector and never touches the
// receiver.
type Projector struct {
	meta    Metadata
	matrix  geom.Matrix
	center  orb.Point
	scale   float64
	bearing float64
}

// NewProjector builds a projector for the artboard and options.
func NewProjector(meta Metadata, opts Options) Projector {
	return Projector{
		meta:    meta,
		matrix:  geom.Identity,
		center:  geo.LonLatToUnit(opts.Center),
		scale:   opts.Width / geo.EarthCircumference,
		bearing: opts.Bearing,
	}
}

// Transform returns a projector that applies m to points before the
// transforms already accumulated.
func (p Projector) Transform(m geom.Matrix) Projector {
	p.matrix = p.matrix.Multiply(m)
	return p
}

// Project maps one SVG point to a [lon, lat] position.
//
// The artboard is normalized so its width spans one unit with its center at
// the origin, scaled from metres into unit Mercator space, rotated by the
// bearing and moved onto the center. Results outside the Mercator square are
// clamped onto its edge.
func (p Projector) Project(v geom.Vector2) geo.Position {
	v = p.matrix.Apply(v)

	m := p.meta
	n := geom.Vec(
		(v.X-m.X)/m.Width-0.5,
		((v.Y-m.Y)/m.Height-0.5)*m.Height/m.Width,
	).MultiplyByScalar(p.scale)

	if p.bearing != 0 {
		n = n.Rotate(p.bearing)
	}

	return geo.UnitToLonLat(orb.Point{
		geom.Clamp(n.X+p.center[0], 0, 1),
		geom.Clamp(n.Y+p.center[1], 0, 1),
	})
}

// ProjectAll projects points in order.
func (p Projector) ProjectAll(points []geom.Vector2) []orb.Point {
	out := make([]orb.Point, len(points))
	for i, v := range points {
		out[i] = p.Project(v)
	}
	return out
}
