package preview

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"

	"github.com/chai2010/webp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/clip"
	"github.com/woozymasta/svgeo/internal/geo"
	"golang.org/x/image/vector"
)

// Tile encodings.
const (
	WebP = "webp"
	PNG  = "png"
)

// ErrUnknownFormat is returned by Encode for an unsupported image format.
var ErrUnknownFormat = errors.New("unknown image format")

var (
	fillColor   = color.NRGBA{R: 0x2b, G: 0x8c, B: 0xbe, A: 0x80}
	strokeColor = color.NRGBA{R: 0x08, G: 0x45, B: 0x94, A: 0xff}
	pointColor  = color.NRGBA{R: 0xd9, G: 0x48, B: 0x01, A: 0xff}
)

const (
	lineWidth  = 1.5
	pointSize  = 4.0
	// geometry is clipped this far outside the tile so strokes on the edge stay whole
	clipMargin = 8.0
)

// RenderTile draws every feature of fc that falls inside coord onto a
// transparent size×size image.
func RenderTile(fc *geo.FeatureCollection, coord TileCoordinate, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	if fc == nil || size <= 0 {
		return img
	}

	bound := orb.Bound{
		Min: orb.Point{-clipMargin, -clipMargin},
		Max: orb.Point{float64(size) + clipMargin, float64(size) + clipMargin},
	}

	c := canvas{
		fill:   vector.NewRasterizer(size, size),
		stroke: vector.NewRasterizer(size, size),
		points: vector.NewRasterizer(size, size),
	}
	for _, f := range fc.Features {
		if f.Geometry == nil || f.Geometry.Coordinates == nil {
			continue
		}
		g := clip.Geometry(bound, toPixels(f.Geometry.Coordinates, coord, size))
		if g != nil {
			c.draw(g)
		}
	}

	rect := img.Bounds()
	c.fill.Draw(img, rect, image.NewUniform(fillColor), image.Point{})
	c.stroke.Draw(img, rect, image.NewUniform(strokeColor), image.Point{})
	c.points.Draw(img, rect, image.NewUniform(pointColor), image.Point{})

	return img
}

// canvas collects paths per layer, each layer is composited once.
type canvas struct {
	fill, stroke, points *vector.Rasterizer
}

func (c *canvas) draw(g orb.Geometry) {
	switch g := g.(type) {
	case orb.Point:
		c.point(g)
	case orb.MultiPoint:
		for _, p := range g {
			c.point(p)
		}
	case orb.LineString:
		c.line(g)
	case orb.MultiLineString:
		for _, ls := range g {
			c.line(ls)
		}
	case orb.Ring:
		c.polygon(orb.Polygon{g})
	case orb.Polygon:
		c.polygon(g)
	case orb.MultiPolygon:
		for _, p := range g {
			c.polygon(p)
		}
	case orb.Collection:
		for _, sub := range g {
			c.draw(sub)
		}
	}
}

func (c *canvas) polygon(p orb.Polygon) {
	for _, r := range p {
		if len(r) < 3 {
			continue
		}
		c.fill.MoveTo(float32(r[0][0]), float32(r[0][1]))
		for _, pt := range r[1:] {
			c.fill.LineTo(float32(pt[0]), float32(pt[1]))
		}
		c.fill.ClosePath()
		c.line(orb.LineString(r))
	}
}

// line strokes every segment as a quad of lineWidth. All quads share the
// same winding so overlaps do not cancel out.
func (c *canvas) line(ls orb.LineString) {
	for i := 1; i < len(ls); i++ {
		a, b := ls[i-1], ls[i]
		dx, dy := b[0]-a[0], b[1]-a[1]
		length := math.Hypot(dx, dy)
		if length == 0 {
			continue
		}
		nx, ny := -dy/length*lineWidth/2, dx/length*lineWidth/2

		c.stroke.MoveTo(float32(a[0]+nx), float32(a[1]+ny))
		c.stroke.LineTo(float32(b[0]+nx), float32(b[1]+ny))
		c.stroke.LineTo(float32(b[0]-nx), float32(b[1]-ny))
		c.stroke.LineTo(float32(a[0]-nx), float32(a[1]-ny))
		c.stroke.ClosePath()
	}
}

func (c *canvas) point(p orb.Point) {
	h := pointSize / 2
	x0, y0 := float32(p[0]-h), float32(p[1]-h)
	x1, y1 := float32(p[0]+h), float32(p[1]+h)

	c.points.MoveTo(x0, y0)
	c.points.LineTo(x1, y0)
	c.points.LineTo(x1, y1)
	c.points.LineTo(x0, y1)
	c.points.ClosePath()
}

// Encode writes img to w as webp or png.
func Encode(w io.Writer, img image.Image, format string) error {
	switch format {
	case WebP, "":
		return webp.Encode(w, img, &webp.Options{Lossless: false, Quality: 85})
	case PNG:
		return png.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// ContentType returns the MIME type of an encoding accepted by Encode.
func ContentType(format string) string {
	if format == PNG {
		return "image/png"
	}
	return "image/webp"
}
