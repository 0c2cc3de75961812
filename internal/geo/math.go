package geo

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
)

// MaxLatitude is the latitude at which the unit Mercator square ends.
const MaxLatitude = 85.05112878

// mercatorSpan is the width of the Web Mercator plane in metres.
const mercatorSpan = 2 * math.Pi * orb.EarthRadius

// Coordinate is a geographic position in degrees.
type Coordinate struct {
	Longitude float64 `json:"longitude" yaml:"longitude" toml:"longitude"`
	Latitude  float64 `json:"latitude" yaml:"latitude" toml:"latitude"`
}

// LonLatToUnit projects a coordinate into unit Mercator space, where the
// whole world spans [0,1] on both axes, x grows east and y grows south.
func LonLatToUnit(c Coordinate) orb.Point {
	lat := math.Max(-MaxLatitude, math.Min(MaxLatitude, c.Latitude))
	m := project.WGS84.ToMercator(orb.Point{c.Longitude, lat})

	return orb.Point{
		m[0]/mercatorSpan + 0.5,
		0.5 - m[1]/mercatorSpan,
	}
}

// UnitToLonLat is the inverse of LonLatToUnit. Latitude is clamped to
// ±MaxLatitude.
func UnitToLonLat(u orb.Point) Position {
	m := orb.Point{
		(u[0] - 0.5) * mercatorSpan,
		(0.5 - u[1]) * mercatorSpan,
	}
	p := project.Point(m, project.Mercator.ToWGS84)

	if p[1] > MaxLatitude {
		p[1] = MaxLatitude
	} else if p[1] < -MaxLatitude {
		p[1] = -MaxLatitude
	}

	return p
}
