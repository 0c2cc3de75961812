package config

// Overrides is a go-flags option group, embed it with
// `group:"Conversion options"`. Flags given on the command line replace the
// matching config file values.
type Overrides struct {
	Longitude   *float64 `long:"lon"       description:"Longitude of the artboard center"`
	Latitude    *float64 `long:"lat"       description:"Latitude of the artboard center"`
	Width       *float64 `long:"width"     description:"Artboard width in metres"`
	Bearing     *float64 `long:"bearing"   description:"Clockwise rotation of the artboard in degrees"`
	Threshold   *float64 `long:"threshold" description:"Curve subdivision threshold in degrees"`
	Precision   *int     `long:"precision" description:"Round coordinates to N decimals"`
	IDAttribute string   `long:"id-attr"   description:"Attribute used as feature id"`
	Properties  []string `long:"prop"      description:"Attribute copied into feature properties (repeatable)"`
	IDUUID      bool     `long:"id-uuid"   description:"Assign a random UUID to every feature"`
	Composite   bool     `long:"composite" description:"Group nested path rings into polygons with holes"`
	PreserveArc bool     `long:"preserve-arcs" description:"Keep SVG arc orientation as written"`
}

// Apply copies every given flag onto c.
func (o Overrides) Apply(c *Config) {
	set := func(dst *float64, v *float64) {
		if v != nil {
			*dst = *v
		}
	}
	set(&c.Center.Longitude, o.Longitude)
	set(&c.Center.Latitude, o.Latitude)
	set(&c.Width, o.Width)
	set(&c.Bearing, o.Bearing)
	set(&c.SubdivideThreshold, o.Threshold)

	if o.Precision != nil {
		c.Precision = *o.Precision
	}
	if o.IDAttribute != "" {
		c.IDAttribute = o.IDAttribute
	}
	if len(o.Properties) > 0 {
		c.Properties = o.Properties
	}
	c.IDUUID = c.IDUUID || o.IDUUID
	c.Composite = c.Composite || o.Composite
	c.PreserveArcOrientation = c.PreserveArcOrientation || o.PreserveArc
}

// LoadWith reads path when it is not empty and applies the overrides.
func LoadWith(path string, o Overrides) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	o.Apply(cfg)
	return cfg, nil
}
