// Package config handles configuration loading for conversions.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/woozymasta/svgeo/internal/convert"
	"github.com/woozymasta/svgeo/internal/geo"
	"gopkg.in/yaml.v3"
)

// Config represents the root configuration file structure.
// Zero numeric values fall back to the conversion defaults.
type Config struct {
	Center geo.Coordinate `yaml:"center" toml:"center" json:"center"`

	// attribute used as feature id, e.g. "id"
	IDAttribute string `yaml:"id_attribute,omitempty" toml:"id_attribute" json:"id_attribute,omitempty"`

	// attributes copied into feature properties
	Properties []string `yaml:"properties,omitempty" toml:"properties" json:"properties,omitempty"`

	Width                  float64 `yaml:"width,omitempty" toml:"width" json:"width,omitempty"` // metres
	Bearing                float64 `yaml:"bearing,omitempty" toml:"bearing" json:"bearing,omitempty"`
	SubdivideThreshold     float64 `yaml:"subdivide_threshold,omitempty" toml:"subdivide_threshold" json:"subdivide_threshold,omitempty"`
	Precision              int     `yaml:"precision,omitempty" toml:"precision" json:"precision,omitempty"`
	IDUUID                 bool    `yaml:"id_uuid,omitempty" toml:"id_uuid" json:"id_uuid,omitempty"`
	Composite              bool    `yaml:"composite,omitempty" toml:"composite" json:"composite,omitempty"`
	PreserveArcOrientation bool    `yaml:"preserve_arc_orientation,omitempty" toml:"preserve_arc_orientation" json:"preserve_arc_orientation,omitempty"`
}

// Load reads a YAML or TOML configuration file, chosen by extension.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	}

	return &cfg, nil
}

// Options builds conversion options from the config on top of the defaults.
func (c *Config) Options() convert.Options {
	opts := convert.DefaultOptions()
	if c == nil {
		return opts
	}

	opts.Center = c.Center
	opts.Bearing = c.Bearing
	opts.Composite = c.Composite
	opts.PreserveArcOrientation = c.PreserveArcOrientation
	if c.Width != 0 {
		opts.Width = c.Width
	}
	if c.SubdivideThreshold != 0 {
		opts.SubdivideThreshold = c.SubdivideThreshold
	}

	switch {
	case c.IDUUID:
		opts.IDMapper = convert.UUIDID()
	case c.IDAttribute != "":
		opts.IDMapper = convert.AttributeID(c.IDAttribute)
	}
	if len(c.Properties) > 0 {
		opts.PropertyMapper = convert.AttributeProperties(c.Properties...)
	}

	return opts
}
