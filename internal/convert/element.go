package convert

import (
	"github.com/paulmach/orb"
	"github.com/woozymasta/svgeo/internal/geo"
	"github.com/woozymasta/svgeo/internal/geom"
	"github.com/woozymasta/svgeo/internal/svg"
)

// element is one supported SVG element kind. The set is closed, classify is
// the only constructor.
type element interface {
	features(s scope) ([]*geo.Feature, error)
}

type (
	lineElement     struct{}
	rectElement     struct{}
	polylineElement struct{}
	polygonElement  struct{}
	ellipseElement  struct{}
	pathElement     struct{}
	groupElement    struct{}

	// unsupported keeps the tag for the warning it produces.
	unsupported struct {
		tag string
	}
)

func classify(n *svg.Node) element {
	switch n.Tag {
	case "svg", "g":
		return groupElement{}
	case "line":
		return lineElement{}
	case "rect":
		return rectElement{}
	case "polyline":
		return polylineElement{}
	case "polygon":
		return polygonElement{}
	case "circle", "ellipse":
		return ellipseElement{}
	case "path":
		return pathElement{}
	default:
		return unsupported{tag: n.Tag}
	}
}

func (unsupported) features(scope) ([]*geo.Feature, error) { return nil, nil }

// Groups emit nothing, the walker carries their transform to the children.
func (groupElement) features(scope) ([]*geo.Feature, error) { return nil, nil }

// scope is everything a shape needs to emit features for one node.
type scope struct {
	node      *svg.Node
	ancestors []*svg.Node
	proj      Projector
	opts      Options
}

func (s scope) feature(g orb.Geometry) *geo.Feature {
	var (
		id    any
		props map[string]any
	)
	if s.opts.IDMapper != nil {
		id = s.opts.IDMapper(s.node, s.ancestors)
	}
	if s.opts.PropertyMapper != nil {
		props = s.opts.PropertyMapper(s.node, s.ancestors)
	}
	return geo.NewFeature(g, id, props)
}

func (s scope) flatten(curve geom.Curve, start, end float64) ([]geom.Vector2, error) {
	return geom.DrawCurve(curve, s.opts.SubdivideThreshold, start, end)
}
