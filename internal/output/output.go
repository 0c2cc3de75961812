// Package output encodes feature collections as JSON or YAML.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	minjson "github.com/tdewolff/minify/v2/json"
	"github.com/woozymasta/svgeo/internal/geo"
	"gopkg.in/yaml.v3"
)

// Supported encodings.
const (
	JSON = "json"
	YAML = "yaml"
)

const mimeJSON = "application/json"

// Format selects the encoding of the output document.
type Format struct {
	Kind   string
	Indent bool
	// Minify runs the JSON minifier over the encoded document. Ignored for YAML.
	Minify bool
}

// Encode writes v to w in the selected format.
func Encode(w io.Writer, v any, f Format) error {
	data, err := Marshal(v, f)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// WriteFile encodes v into path, creating parent directories as needed.
func WriteFile(path string, v any, f Format) error {
	data, err := Marshal(v, f)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}

	// We care about write errors on close
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			log.Error().Err(closeErr).Str("path", path).Msg("Failed to close file")
		}
	}()

	_, err = file.Write(data)
	return err
}

// Marshal returns v encoded in the selected format.
func Marshal(v any, f Format) ([]byte, error) {
	switch f.Kind {
	case YAML:
		return marshalYAML(v)
	case JSON, "":
		return marshalJSON(v, f)
	default:
		return nil, fmt.Errorf("unknown output format %q", f.Kind)
	}
}

func marshalJSON(v any, f Format) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if f.Indent && !f.Minify {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, err
	}

	if f.Minify {
		m := minify.New()
		m.Add(mimeJSON, &minjson.Minifier{KeepNumbers: true})
		if data, err = m.Bytes(mimeJSON, data); err != nil {
			return nil, fmt.Errorf("minify: %w", err)
		}
	}

	return append(data, '\n'), nil
}

// marshalYAML goes through JSON so the GeoJSON geometry encoders stay in
// charge of the document shape, then restyles the tree as block YAML.
func marshalYAML(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	restyle(&doc)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// restyle turns the flow style JSON tree into block style, keeping
// positions like [lon, lat] on one line.
func restyle(n *yaml.Node) {
	n.Style = 0
	if n.Kind == yaml.SequenceNode && scalarsOnly(n) {
		n.Style = yaml.FlowStyle
	}
	for _, c := range n.Content {
		restyle(c)
	}
}

func scalarsOnly(n *yaml.Node) bool {
	for _, c := range n.Content {
		if c.Kind != yaml.ScalarNode {
			return false
		}
	}
	return len(n.Content) > 0
}

// Round returns a copy of fc with every coordinate rounded to precision
// decimals. A precision of zero or less returns fc unchanged.
func Round(fc *geo.FeatureCollection, precision int) *geo.FeatureCollection {
	if fc == nil || precision <= 0 {
		return fc
	}

	factor := int(math.Pow10(precision))
	out := &geo.FeatureCollection{
		Type:     fc.Type,
		Features: make([]*geo.Feature, 0, len(fc.Features)),
	}
	for _, f := range fc.Features {
		c := *f
		if f.Geometry != nil && f.Geometry.Coordinates != nil {
			c.Geometry = geojson.NewGeometry(orb.Round(orb.Clone(f.Geometry.Coordinates), factor))
		}
		out.Features = append(out.Features, &c)
	}

	return out
}
