// Package geo handles geographic data structures and coordinate conversions.
package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Position is a [longitude, latitude] pair in degrees.
type Position = orb.Point

// FeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type FeatureCollection struct {
	Type     string     `json:"type" yaml:"type"`
	Features []*Feature `json:"features" yaml:"features"`
}

// Feature represents a single geographic feature with geometry and properties.
// A nil ID is left out of the encoding entirely, nil properties encode as null.
type Feature struct {
	ID         any               `json:"id,omitempty" yaml:"id,omitempty"`
	Type       string            `json:"type" yaml:"type"`
	Geometry   *geojson.Geometry `json:"geometry" yaml:"geometry"`
	Properties map[string]any    `json:"properties" yaml:"properties"`
}

// NewFeatureCollection returns an empty collection whose features encode as [].
func NewFeatureCollection() *FeatureCollection {
	return &FeatureCollection{
		Type:     "FeatureCollection",
		Features: []*Feature{},
	}
}

// NewFeature wraps an orb geometry into a feature.
func NewFeature(geometry orb.Geometry, id any, props map[string]any) *Feature {
	return &Feature{
		ID:         id,
		Type:       "Feature",
		Geometry:   geojson.NewGeometry(geometry),
		Properties: props,
	}
}

// Append adds features in order.
func (fc *FeatureCollection) Append(features ...*Feature) {
	fc.Features = append(fc.Features, features...)
}

// Bound returns the bounding box of every feature geometry, and false when
// the collection has no geometry.
func (fc *FeatureCollection) Bound() (orb.Bound, bool) {
	var (
		bound orb.Bound
		found bool
	)

	for _, f := range fc.Features {
		if f.Geometry == nil || f.Geometry.Coordinates == nil {
			continue
		}
		b := f.Geometry.Coordinates.Bound()
		if !found {
			bound, found = b, true
			continue
		}
		bound = bound.Union(b)
	}

	return bound, found
}
