package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/woozymasta/svgeo/internal/geo"
	"gopkg.in/yaml.v3"
)

func sample() *geo.FeatureCollection {
	fc := geo.NewFeatureCollection()
	fc.Append(
		geo.NewFeature(orb.Point{1.23456789, -9.87654321}, nil, nil),
		geo.NewFeature(orb.LineString{{0, 0}, {0.5, 0.25}}, "road-1", map[string]any{"svgType": "line", "class": "road"}),
	)
	return fc
}

func TestMarshalJSON(t *testing.T) {
	tests := []struct {
		name      string
		format    Format
		multiline bool
	}{
		{"compact", Format{Kind: JSON}, false},
		{"default kind", Format{}, false},
		{"indent", Format{Kind: JSON, Indent: true}, true},
		{"minify wins over indent", Format{Kind: JSON, Indent: true, Minify: true}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := Marshal(sample(), tt.format)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !json.Valid(data) {
				t.Fatalf("Expected valid JSON, got %s", data)
			}
			lines := strings.Count(strings.TrimSpace(string(data)), "\n")
			if (lines > 0) != tt.multiline {
				t.Errorf("Expected multiline=%v, got %d line breaks", tt.multiline, lines)
			}
			if !bytes.Contains(data, []byte("1.23456789")) {
				t.Errorf("Expected coordinates kept, got %s", data)
			}
		})
	}
}

func TestMarshalYAML(t *testing.T) {
	data, err := Marshal(sample(), Format{Kind: YAML})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := string(data)

	for _, want := range []string{
		"type: FeatureCollection",
		"coordinates: [1.23456789, -9.87654321]",
		"id: road-1",
		"properties: null",
		"class: road",
	} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected %q in:\n%s", want, s)
		}
	}

	var back map[string]any
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatalf("Expected readable YAML: %v", err)
	}
	features := back["features"].([]any)
	if len(features) != 2 {
		t.Errorf("Expected 2 features, got %d", len(features))
	}
	if id := features[1].(map[string]any)["id"]; id != "road-1" {
		t.Errorf("Expected string id to survive, got %#v", id)
	}
}

func TestMarshalUnknown(t *testing.T) {
	if _, err := Marshal(sample(), Format{Kind: "xml"}); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestRound(t *testing.T) {
	fc := sample()
	rounded := Round(fc, 3)

	p := rounded.Features[0].Geometry.Coordinates.(orb.Point)
	if p != (orb.Point{1.235, -9.877}) {
		t.Errorf("Expected rounded point, got %v", p)
	}
	if orig := fc.Features[0].Geometry.Coordinates.(orb.Point); orig[0] != 1.23456789 {
		t.Errorf("Expected input untouched, got %v", orig)
	}
	if rounded.Features[1].ID != "road-1" {
		t.Errorf("Expected id kept, got %v", rounded.Features[1].ID)
	}
	if Round(fc, 0) != fc {
		t.Error("Expected zero precision to return the input")
	}

	var buf bytes.Buffer
	if err := Encode(&buf, rounded, Format{Kind: JSON}); err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !strings.Contains(buf.String(), "[1.235,-9.877]") {
		t.Errorf("Expected rounded coordinates, got %s", buf.String())
	}
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "map.yaml")
	if err := WriteFile(path, sample(), Format{Kind: YAML}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.HasPrefix(string(data), "type: FeatureCollection") {
		t.Errorf("Expected YAML document, got %s", data)
	}

	if err := WriteFile(path, sample(), Format{Kind: "xml"}); err == nil {
		t.Error("Expected error for unknown format")
	}
}
