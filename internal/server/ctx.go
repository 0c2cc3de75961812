package server

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/svgeo/internal/config"
	"github.com/woozymasta/svgeo/internal/convert"
)

// DefaultBodyLimit caps the size of an uploaded SVG document.
const DefaultBodyLimit = 10 << 20

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config    *config.Config
	BodyLimit int64
}

// NewServerContext wires the handlers to cfg. A nil cfg serves conversions
// with the default options.
func NewServerContext(cfg *config.Config, bodyLimit int64) *ServerContext {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if bodyLimit <= 0 {
		bodyLimit = DefaultBodyLimit
	}

	log.Info().
		Float64("lon", cfg.Center.Longitude).
		Float64("lat", cfg.Center.Latitude).
		Int64("body_limit", bodyLimit).
		Msg("Server context initialized")

	return &ServerContext{
		Config:    cfg,
		BodyLimit: bodyLimit,
	}
}

// Routes returns the API mux wrapped in the request logger.
func (s *ServerContext) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.HandleHealth)
	mux.HandleFunc("POST /api/convert", s.HandleConvert)
	mux.HandleFunc("POST /api/preview/{z}/{x}/{y}", s.HandlePreview)

	return RequestLogger(mux)
}

// requestOptions applies query overrides on top of the configured options.
func (s *ServerContext) requestOptions(q url.Values) (convert.Options, error) {
	opts := s.Config.Options()

	floats := []struct {
		key string
		dst *float64
	}{
		{"lon", &opts.Center.Longitude},
		{"lat", &opts.Center.Latitude},
		{"width", &opts.Width},
		{"bearing", &opts.Bearing},
		{"threshold", &opts.SubdivideThreshold},
	}
	for _, f := range floats {
		v := q.Get(f.key)
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, fmt.Errorf("%w: %s=%q", convert.ErrInvalidOptions, f.key, v)
		}
		*f.dst = parsed
	}

	if v := q.Get("composite"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, fmt.Errorf("%w: composite=%q", convert.ErrInvalidOptions, v)
		}
		opts.Composite = b
	}

	return opts, opts.Validate()
}

// precision returns the ?precision override or the configured one.
func (s *ServerContext) precision(q url.Values) (int, error) {
	v := q.Get("precision")
	if v == "" {
		return s.Config.Precision, nil
	}
	p, err := strconv.Atoi(v)
	if err != nil || p < 0 {
		return 0, fmt.Errorf("%w: precision=%q", convert.ErrInvalidOptions, v)
	}
	return p, nil
}
