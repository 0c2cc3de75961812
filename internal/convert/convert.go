package convert

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/woozymasta/svgeo/internal/geo"
	"github.com/woozymasta/svgeo/internal/svg"
)

// Result is the output of one conversion.
type Result struct {
	Collection *geo.FeatureCollection
	Metadata   Metadata
	// Warnings lists the nodes that were skipped, in document order.
	Warnings []string
}

// walker is created per conversion and discarded afterwards.
type walker struct {
	opts     Options
	fc       *geo.FeatureCollection
	warnings []string
}

// Convert walks the tree depth first and maps every supported shape to
// GeoJSON features. Unsupported elements are skipped together with their
// children and reported in Result.Warnings. Only invalid options and a
// missing artboard fail the conversion.
//
// Convert does not modify root and keeps no state between calls.
func Convert(root *svg.Node, opts Options) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	meta, err := ReadMetadata(root)
	if err != nil {
		return Result{}, err
	}

	w := &walker{
		opts: opts,
		fc:   geo.NewFeatureCollection(),
	}
	w.walk(root, nil, NewProjector(meta, opts))

	return Result{
		Collection: w.fc,
		Metadata:   meta,
		Warnings:   w.warnings,
	}, nil
}

// ConvertReader parses SVG markup from r and converts it.
func ConvertReader(r io.Reader, opts Options) (Result, error) {
	root, err := svg.Parse(r)
	if err != nil {
		return Result{}, err
	}
	return Convert(root, opts)
}

func (w *walker) walk(n *svg.Node, ancestors []*svg.Node, proj Projector) {
	el := classify(n)
	if u, ok := el.(unsupported); ok {
		w.warn("Skipping unsupported node: %s", u.tag)
		return
	}

	if t, ok := n.Attr("transform"); ok && strings.TrimSpace(t) != "" {
		m, err := svg.ParseTransform(t)
		if err != nil {
			w.warn("Skipping %s node: %v", n.Tag, err)
			return
		}
		proj = proj.Transform(m)
	}

	features, err := el.features(scope{
		node:      n,
		ancestors: ancestors,
		proj:      proj,
		opts:      w.opts,
	})
	if err != nil {
		w.warn("Skipping %s node: %v", n.Tag, err)
		return
	}
	w.fc.Append(features...)

	if _, ok := el.(groupElement); !ok {
		return
	}

	path := append(slices.Clip(ancestors), n)
	for _, child := range n.Children {
		w.walk(child, path, proj)
	}
}

func (w *walker) warn(format string, args ...any) {
	w.warnings = append(w.warnings, fmt.Sprintf(format, args...))
}
