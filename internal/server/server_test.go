package server

import (
	"encoding/json"
	"image/png"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/woozymasta/svgeo/internal/config"
)

const doc = `<svg viewBox="0 0 100 100">
	<rect x="10" y="10" width="20" height="20"/>
	<text>label</text>
</svg>`

func do(t *testing.T, h http.Handler, method, target, body string, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := do(t, NewServerContext(nil, 0).Routes(), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"ok"`) {
		t.Errorf("Expected 200 ok, got %d %q", rec.Code, rec.Body.String())
	}
}

func TestConvert(t *testing.T) {
	h := NewServerContext(&config.Config{Width: 1000}, 0).Routes()

	rec := do(t, h, http.MethodPost, "/api/convert", doc)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/geo+json" {
		t.Errorf("Expected geo+json, got %q", ct)
	}
	if got := rec.Header().Get(WarningsHeader); got != "1" {
		t.Errorf("Expected 1 warning, got %q", got)
	}

	var fc struct {
		Type     string            `json:"type"`
		Features []json.RawMessage `json:"features"`
		Warnings []string          `json:"warnings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &fc); err != nil {
		t.Fatalf("Expected JSON body: %v", err)
	}
	if fc.Type != "FeatureCollection" || len(fc.Features) != 1 || fc.Warnings != nil {
		t.Errorf("Unexpected collection %s", rec.Body.String())
	}

	etag := rec.Header().Get("ETag")
	if etag == "" {
		t.Fatal("Expected an ETag")
	}
	if rec := do(t, h, http.MethodPost, "/api/convert", doc, "If-None-Match", etag); rec.Code != http.StatusNotModified {
		t.Errorf("Expected 304, got %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, "/api/convert?lon=10", doc, "If-None-Match", etag); rec.Code != http.StatusOK {
		t.Errorf("Expected a new ETag for other options, got %d", rec.Code)
	}
}

func TestConvertWarnings(t *testing.T) {
	rec := do(t, NewServerContext(nil, 0).Routes(), http.MethodPost, "/api/convert?warnings=1", doc)

	var body struct {
		Type     string   `json:"type"`
		Warnings []string `json:"warnings"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Expected JSON body: %v", err)
	}
	if body.Type != "FeatureCollection" {
		t.Errorf("Expected collection members kept, got %q", body.Type)
	}
	if diff := cmp.Diff([]string{"Skipping unsupported node: text"}, body.Warnings); diff != "" {
		t.Errorf("Warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestConvertPrecision(t *testing.T) {
	rec := do(t, NewServerContext(nil, 0).Routes(), http.MethodPost, "/api/convert?precision=2&lon=24.123456", doc)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var fc struct {
		Features []struct {
			Geometry struct {
				Coordinates [][][2]float64 `json:"coordinates"`
			} `json:"geometry"`
		} `json:"features"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &fc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, ring := range fc.Features[0].Geometry.Coordinates {
		for _, p := range ring {
			for _, v := range p {
				if scaled := v * 100; math.Abs(scaled-math.Round(scaled)) > 1e-6 {
					t.Errorf("Expected two decimals, got %v", v)
				}
			}
		}
	}
}

func TestConvertErrors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		body   string
		limit  int64
		status int
	}{
		{"malformed svg", http.MethodPost, "/api/convert", `<svg><g fill=></g></svg>`, 0, http.StatusBadRequest},
		{"empty body", http.MethodPost, "/api/convert", "  ", 0, http.StatusBadRequest},
		{"bad number", http.MethodPost, "/api/convert?lon=east", doc, 0, http.StatusBadRequest},
		{"invalid width", http.MethodPost, "/api/convert?width=-5", doc, 0, http.StatusBadRequest},
		{"invalid threshold", http.MethodPost, "/api/convert?threshold=0", doc, 0, http.StatusBadRequest},
		{"bad composite", http.MethodPost, "/api/convert?composite=maybe", doc, 0, http.StatusBadRequest},
		{"bad precision", http.MethodPost, "/api/convert?precision=-1", doc, 0, http.StatusBadRequest},
		{"missing artboard", http.MethodPost, "/api/convert", `<svg><rect width="5" height="5"/></svg>`, 0, http.StatusUnprocessableEntity},
		{"too large", http.MethodPost, "/api/convert", doc, 16, http.StatusRequestEntityTooLarge},
		{"wrong method", http.MethodGet, "/api/convert", "", 0, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, NewServerContext(nil, tt.limit).Routes(), tt.method, tt.target, tt.body)
			if rec.Code != tt.status {
				t.Errorf("Expected %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestPreview(t *testing.T) {
	h := NewServerContext(&config.Config{Width: 2000e3}, 0).Routes()

	rec := do(t, h, http.MethodPost, "/api/preview/0/0/0.png?size=64", doc)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %q", ct)
	}
	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("Expected png body: %v", err)
	}
	if img.Bounds().Dx() != 64 {
		t.Errorf("Expected 64px tile, got %d", img.Bounds().Dx())
	}

	for _, target := range []string{
		"/api/preview/1/2/0",
		"/api/preview/a/0/0",
		"/api/preview/0/0/0.gif",
		"/api/preview/0/0/0?size=4096",
	} {
		if rec := do(t, h, http.MethodPost, target, doc); rec.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, rec.Code)
		}
	}
}
