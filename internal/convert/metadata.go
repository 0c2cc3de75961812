package convert

import (
	"errors"
	"fmt"
	"strings"

	"github.com/woozymasta/svgeo/internal/svg"
)

// ErrMissingArtboard is returned when the root element carries neither a
// usable viewBox nor width and height.
var ErrMissingArtboard = errors.New("missing artboard metadata: svg needs a viewBox or width/height attributes")

// Metadata is the artboard origin and size in SVG user units.
type Metadata struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Center returns the middle of the artboard.
func (m Metadata) Center() (float64, float64) {
	return m.X + m.Width/2, m.Y + m.Height/2
}

// ReadMetadata derives the artboard from the root element. The viewBox wins
// when it is well formed, otherwise width and height with optional x and y
// are used.
func ReadMetadata(root *svg.Node) (Metadata, error) {
	if root == nil {
		return Metadata{}, ErrMissingArtboard
	}

	var vbErr error
	if vb, ok := root.Attr("viewBox"); ok {
		m, err := parseViewBox(vb)
		if err == nil {
			return m, nil
		}
		vbErr = err
	}

	w, wErr := attrFloat(root, "width")
	h, hErr := attrFloat(root, "height")
	if wErr == nil && hErr == nil && w > 0 && h > 0 {
		return Metadata{
			X:      root.Float("x", 0),
			Y:      root.Float("y", 0),
			Width:  w,
			Height: h,
		}, nil
	}

	if vbErr != nil {
		return Metadata{}, fmt.Errorf("%w: %v", ErrMissingArtboard, vbErr)
	}
	return Metadata{}, ErrMissingArtboard
}

func parseViewBox(s string) (Metadata, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != 4 {
		return Metadata{}, fmt.Errorf("viewBox %q must have 4 values", s)
	}

	var v [4]float64
	for i, f := range fields {
		n, err := svg.ParseFloat(f)
		if err != nil {
			return Metadata{}, fmt.Errorf("viewBox %q: %w", s, err)
		}
		v[i] = n
	}
	if v[2] <= 0 || v[3] <= 0 {
		return Metadata{}, fmt.Errorf("viewBox %q must have a positive size", s)
	}

	return Metadata{X: v[0], Y: v[1], Width: v[2], Height: v[3]}, nil
}

func attrFloat(n *svg.Node, name string) (float64, error) {
	raw, ok := n.Attr(name)
	if !ok {
		return 0, fmt.Errorf("%s is missing", name)
	}
	return svg.ParseFloat(raw)
}
