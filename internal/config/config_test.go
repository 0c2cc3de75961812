package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/woozymasta/svgeo/internal/geo"
	"github.com/woozymasta/svgeo/internal/svg"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLoad(t *testing.T) {
	want := &Config{
		Center:             geo.Coordinate{Longitude: 24.75, Latitude: 59.44},
		Width:              2500,
		Bearing:            15,
		SubdivideThreshold: 2,
		IDAttribute:        "id",
		Properties:         []string{"class", "data-name"},
		Precision:          6,
		Composite:          true,
	}

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "svgeo.yaml", `
center:
  longitude: 24.75
  latitude: 59.44
width: 2500
bearing: 15
subdivide_threshold: 2
id_attribute: id
properties: [class, data-name]
precision: 6
composite: true
`},
		{"toml", "svgeo.toml", `
width = 2500
bearing = 15
subdivide_threshold = 2
id_attribute = "id"
properties = ["class", "data-name"]
precision = 6
composite = true

[center]
longitude = 24.75
latitude = 59.44
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Load(writeFile(t, tt.file, tt.content))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("Config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for missing file")
	}
	if _, err := Load(writeFile(t, "bad.toml", "width = [")); err == nil {
		t.Error("Expected error for malformed toml")
	}
	if _, err := Load(writeFile(t, "bad.yml", "width: [1, 2")); err == nil {
		t.Error("Expected error for malformed yaml")
	}
}

func TestOptions(t *testing.T) {
	var nilCfg *Config
	if opts := nilCfg.Options(); opts.Width != 1000e3 || opts.SubdivideThreshold != 5 {
		t.Errorf("Expected defaults from nil config, got %+v", opts)
	}

	cfg := &Config{Width: 10, IDAttribute: "id", Properties: []string{"class"}}
	opts := cfg.Options()
	if opts.Width != 10 || opts.SubdivideThreshold != 5 {
		t.Errorf("Unexpected numeric options %+v", opts)
	}

	n := svg.NewNode("rect", map[string]string{"id": "r1", "class": "building"})
	if id := opts.IDMapper(n, nil); id != "r1" {
		t.Errorf("Expected id r1, got %v", id)
	}
	props := opts.PropertyMapper(n, nil)
	if diff := cmp.Diff(map[string]any{"svgType": "rect", "class": "building"}, props); diff != "" {
		t.Errorf("Properties mismatch (-want +got):\n%s", diff)
	}

	cfg.IDUUID = true
	if id, ok := cfg.Options().IDMapper(n, nil).(string); !ok || id == "r1" || len(id) != 36 {
		t.Errorf("Expected a uuid id, got %v", id)
	}
}
