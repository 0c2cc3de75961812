// Package preview rasterizes feature collections into slippy map tiles.
package preview

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/project"
	"github.com/woozymasta/svgeo/internal/geo"
)

// MaxZoom is the deepest zoom level a tile coordinate may address.
const MaxZoom = 24

// TileCoordinate represents a specific tile.
type TileCoordinate struct {
	Z, X, Y int
}

func (c TileCoordinate) String() string {
	return fmt.Sprintf("%d/%d/%d", c.Z, c.X, c.Y)
}

// Valid reports whether the tile exists at its zoom level.
func (c TileCoordinate) Valid() bool {
	if c.Z < 0 || c.Z > MaxZoom {
		return false
	}
	n := 1 << c.Z
	return c.X >= 0 && c.X < n && c.Y >= 0 && c.Y < n
}

// Bound returns the tile extent in unit Mercator space.
func (c TileCoordinate) Bound() orb.Bound {
	n := float64(int(1) << c.Z)
	return orb.Bound{
		Min: orb.Point{float64(c.X) / n, float64(c.Y) / n},
		Max: orb.Point{float64(c.X+1) / n, float64(c.Y+1) / n},
	}
}

// Children returns the four tiles covering c at the next zoom level.
func (c TileCoordinate) Children() []TileCoordinate {
	nx, ny := c.X*2, c.Y*2
	return []TileCoordinate{
		{Z: c.Z + 1, X: nx, Y: ny},
		{Z: c.Z + 1, X: nx + 1, Y: ny},
		{Z: c.Z + 1, X: nx, Y: ny + 1},
		{Z: c.Z + 1, X: nx + 1, Y: ny + 1},
	}
}

// Path returns baseDir/z/x/y.ext.
func (c TileCoordinate) Path(baseDir, ext string) string {
	return filepath.Join(
		baseDir,
		strconv.Itoa(c.Z),
		strconv.Itoa(c.X),
		strconv.Itoa(c.Y)+"."+ext,
	)
}

// unitBound returns the collection extent in unit Mercator space.
func unitBound(fc *geo.FeatureCollection) (orb.Bound, bool) {
	b, ok := fc.Bound()
	if !ok {
		return orb.Bound{}, false
	}

	// y grows south in unit space, so the north edge becomes the minimum
	return orb.Bound{
		Min: geo.LonLatToUnit(geo.Coordinate{Longitude: b.Min[0], Latitude: b.Max[1]}),
		Max: geo.LonLatToUnit(geo.Coordinate{Longitude: b.Max[0], Latitude: b.Min[1]}),
	}, true
}

// pixelProjection maps [lon, lat] positions into the pixel space of one tile.
func pixelProjection(c TileCoordinate, size int) orb.Projection {
	scale := float64(size) * float64(int(1)<<c.Z)
	ox, oy := float64(c.X*size), float64(c.Y*size)

	return func(p orb.Point) orb.Point {
		u := geo.LonLatToUnit(geo.Coordinate{Longitude: p[0], Latitude: p[1]})
		return orb.Point{u[0]*scale - ox, u[1]*scale - oy}
	}
}

// toPixels returns a projected copy of g.
func toPixels(g orb.Geometry, c TileCoordinate, size int) orb.Geometry {
	return project.Geometry(orb.Clone(g), pixelProjection(c, size))
}
