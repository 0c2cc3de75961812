// Package server exposes conversions over HTTP.
package server

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/svgeo/internal/convert"
	"github.com/woozymasta/svgeo/internal/geo"
	"github.com/woozymasta/svgeo/internal/output"
	"github.com/woozymasta/svgeo/internal/preview"
)

// WarningsHeader carries the number of skipped nodes.
const WarningsHeader = "X-Svgeo-Warnings"

const (
	defaultTileSize = 256
	maxTileSize     = 1024
)

// convertResponse adds a warnings member next to the collection members.
type convertResponse struct {
	*geo.FeatureCollection
	Warnings []string `json:"warnings"`
}

// HandleHealth reports that the service is up.
func (s *ServerContext) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = io.WriteString(w, `{"status":"ok"}`+"\n")
}

// HandleConvert converts the SVG request body into GeoJSON.
func (s *ServerContext) HandleConvert(w http.ResponseWriter, r *http.Request) {
	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	etag := etagFor(body, q)
	if notModified(w, r, etag) {
		return
	}

	precision, err := s.precision(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	res, ok := s.convert(w, body, q)
	if !ok {
		return
	}

	fc := output.Round(res.Collection, precision)
	var v any = fc
	if flag, _ := strconv.ParseBool(q.Get("warnings")); flag {
		v = convertResponse{
			FeatureCollection: fc,
			Warnings:          append([]string{}, res.Warnings...),
		}
	}

	pretty, _ := strconv.ParseBool(q.Get("pretty"))
	data, err := output.Marshal(v, output.Format{Kind: output.JSON, Indent: pretty})
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode collection")
		http.Error(w, "encoding failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.Header().Set(WarningsHeader, strconv.Itoa(len(res.Warnings)))
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "private, no-cache")
	_, _ = w.Write(data)
}

// HandlePreview converts the SVG request body and renders one map tile.
// The y segment may carry a .png or .webp suffix, webp is the default.
func (s *ServerContext) HandlePreview(w http.ResponseWriter, r *http.Request) {
	coord, format, err := tileFromPath(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	q := r.URL.Query()
	size := defaultTileSize
	if v := q.Get("size"); v != "" {
		size, err = strconv.Atoi(v)
		if err != nil || size <= 0 || size > maxTileSize {
			http.Error(w, "invalid tile size", http.StatusBadRequest)
			return
		}
	}

	body, ok := s.readBody(w, r)
	if !ok {
		return
	}

	etag := etagFor(body, q, coord.String(), format)
	if notModified(w, r, etag) {
		return
	}

	res, ok := s.convert(w, body, q)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := preview.Encode(&buf, preview.RenderTile(res.Collection, coord, size), format); err != nil {
		log.Error().Err(err).Str("tile", coord.String()).Msg("Failed to encode tile")
		http.Error(w, "encoding failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", preview.ContentType(format))
	w.Header().Set(WarningsHeader, strconv.Itoa(len(res.Warnings)))
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "private, no-cache")
	_, _ = w.Write(buf.Bytes())
}

// readBody reads the request body up to the body limit and answers 413
// when it is exceeded.
func (s *ServerContext) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.BodyLimit))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		http.Error(w, "failed to read request body", http.StatusBadRequest)
		return nil, false
	}
	if len(bytes.TrimSpace(body)) == 0 {
		http.Error(w, "empty request body", http.StatusBadRequest)
		return nil, false
	}
	return body, true
}

// convert answers 422 for a document without an artboard and 400 for
// anything else it cannot convert.
func (s *ServerContext) convert(w http.ResponseWriter, body []byte, q url.Values) (convert.Result, bool) {
	opts, err := s.requestOptions(q)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return convert.Result{}, false
	}

	res, err := convert.ConvertReader(bytes.NewReader(body), opts)
	switch {
	case errors.Is(err, convert.ErrMissingArtboard):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return res, false
	case err != nil:
		http.Error(w, err.Error(), http.StatusBadRequest)
		return res, false
	}

	for _, warning := range res.Warnings {
		log.Debug().Msg(warning)
	}
	return res, true
}

func tileFromPath(r *http.Request) (preview.TileCoordinate, string, error) {
	y, format := r.PathValue("y"), preview.WebP
	if base, ext, found := strings.Cut(y, "."); found {
		switch ext {
		case preview.WebP, preview.PNG:
			y, format = base, ext
		default:
			return preview.TileCoordinate{}, "", errors.New("unsupported tile format")
		}
	}

	var (
		c    preview.TileCoordinate
		errs []error
	)
	for _, part := range []struct {
		dst   *int
		value string
	}{
		{&c.Z, r.PathValue("z")},
		{&c.X, r.PathValue("x")},
		{&c.Y, y},
	} {
		n, err := strconv.Atoi(part.value)
		errs = append(errs, err)
		*part.dst = n
	}
	if err := errors.Join(errs...); err != nil {
		return c, "", err
	}
	if !c.Valid() {
		return c, "", errors.New("tile out of range: " + c.String())
	}

	return c, format, nil
}

// etagFor hashes the request body together with the query and any extra
// parts that change the response.
func etagFor(body []byte, q url.Values, extra ...string) string {
	h := sha256.New()
	h.Write(body)
	h.Write([]byte{0})
	h.Write([]byte(q.Encode()))
	for _, e := range extra {
		h.Write([]byte{0})
		h.Write([]byte(e))
	}
	return `"` + hex.EncodeToString(h.Sum(nil)[:16]) + `"`
}

func notModified(w http.ResponseWriter, r *http.Request, etag string) bool {
	if match := r.Header.Get("If-None-Match"); match == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return true
	}
	return false
}
