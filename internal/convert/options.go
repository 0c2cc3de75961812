// Package convert maps a parsed SVG tree onto the Earth's surface and
// returns the result as a GeoJSON feature collection.
package convert

import (
	"errors"
	"fmt"
	"math"

	"github.com/woozymasta/svgeo/internal/geo"
	"github.com/woozymasta/svgeo/internal/geom"
	"github.com/woozymasta/svgeo/internal/svg"
)

// ErrInvalidOptions is returned when Options violate their contract.
var ErrInvalidOptions = errors.New("invalid convert options")

// IDMapper returns the id for a feature emitted by n. Returning nil leaves
// the id out of the feature.
type IDMapper func(n *svg.Node, ancestors []*svg.Node) any

// PropertyMapper returns the properties for a feature emitted by n.
type PropertyMapper func(n *svg.Node, ancestors []*svg.Node) map[string]any

// Options controls where and how large the artboard lands on the globe.
type Options struct {
	IDMapper       IDMapper
	PropertyMapper PropertyMapper

	// Center is the coordinate the artboard center maps to.
	Center geo.Coordinate

	// Width is the real-world width of the artboard in metres.
	Width float64

	// Bearing rotates the geometry clockwise around Center, in degrees.
	Bearing float64

	// SubdivideThreshold is the largest angle in degrees a flattened curve
	// segment may deviate before it is split again.
	SubdivideThreshold float64

	// Composite groups the closed rings of a path into polygons with holes.
	Composite bool

	// PreserveArcOrientation passes arc rotation and sweep through unchanged
	// instead of mirroring them into the projected frame.
	PreserveArcOrientation bool
}

// DefaultOptions returns a fresh set of defaults: center (0,0), 1000 km
// width, no rotation and a 5 degree subdivision threshold.
func DefaultOptions() Options {
	return Options{
		Width:              1000e3,
		SubdivideThreshold: 5,
	}
}

// Validate checks the numeric options.
func (o Options) Validate() error {
	switch {
	case !(o.SubdivideThreshold > 0):
		return fmt.Errorf("%w: %w", ErrInvalidOptions, geom.ErrInvalidThreshold)
	case !(o.Width > 0) || math.IsInf(o.Width, 0):
		return fmt.Errorf("%w: width must be a positive number of metres, got %v", ErrInvalidOptions, o.Width)
	case math.IsNaN(o.Bearing) || math.IsInf(o.Bearing, 0):
		return fmt.Errorf("%w: bearing must be finite, got %v", ErrInvalidOptions, o.Bearing)
	case !(math.Abs(o.Center.Latitude) <= 90):
		return fmt.Errorf("%w: center latitude %v out of range", ErrInvalidOptions, o.Center.Latitude)
	case !(math.Abs(o.Center.Longitude) <= 180):
		return fmt.Errorf("%w: center longitude %v out of range", ErrInvalidOptions, o.Center.Longitude)
	}
	return nil
}
