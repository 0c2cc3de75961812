// Package source opens SVG documents from disk, stdin or a remote URL.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Stdin is the location that reads standard input.
const Stdin = "-"

// ErrStatus is returned when a remote document answers with a non 200 status.
var ErrStatus = errors.New("unexpected status")

// DefaultClient is used by Open when no client is given.
var DefaultClient = &http.Client{Timeout: 30 * time.Second}

// IsRemote reports whether location is an http(s) URL.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Open returns a reader for location: an http(s) URL, a file path, or
// standard input for "" and "-". The caller closes the reader.
func Open(ctx context.Context, client *http.Client, location string) (io.ReadCloser, error) {
	switch {
	case location == "" || location == Stdin:
		return io.NopCloser(os.Stdin), nil
	case IsRemote(location):
		return fetch(ctx, client, location)
	default:
		return os.Open(location)
	}
}

// ReadAll reads the whole document at location.
func ReadAll(ctx context.Context, client *http.Client, location string) ([]byte, error) {
	rc, err := Open(ctx, client, location)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rc.Close() }()

	return io.ReadAll(rc)
}

func fetch(ctx context.Context, client *http.Client, url string) (io.ReadCloser, error) {
	if client == nil {
		client = DefaultClient
	}

	log.Debug().Str("url", url).Msg("Downloading source document")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "image/svg+xml, application/xml;q=0.9, */*;q=0.5")

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode)
	}

	return resp.Body, nil
}
