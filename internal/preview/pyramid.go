package preview

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
	"github.com/woozymasta/svgeo/internal/geo"
)

// Pyramid controls how WriteTiles walks and stores the tile tree.
type Pyramid struct {
	Format      string
	ZoomLimit   int
	TileSize    int
	Concurrency int
	// Force overwrites tiles that already exist on disk.
	Force       bool
}

func (p Pyramid) withDefaults() Pyramid {
	if p.Format == "" {
		p.Format = WebP
	}
	if p.TileSize <= 0 {
		p.TileSize = 256
	}
	if p.Concurrency <= 0 {
		p.Concurrency = runtime.NumCPU()
	}
	if p.ZoomLimit > MaxZoom {
		p.ZoomLimit = MaxZoom
	}
	return p
}

// WriteTiles renders fc into baseDir/z/x/y.<format> for every zoom level up
// to p.ZoomLimit. Only tiles intersecting the collection bounds are visited,
// so the tree grows at most four times per level under the data. It returns
// the number of tiles written.
func WriteTiles(ctx context.Context, fc *geo.FeatureCollection, baseDir string, p Pyramid) (int, error) {
	p = p.withDefaults()

	bound, ok := unitBound(fc)
	if !ok {
		log.Warn().Msg("Collection has no geometry, nothing to render")
		return 0, nil
	}

	var written int
	level := []TileCoordinate{{0, 0, 0}}

	for z := 0; z <= p.ZoomLimit && len(level) > 0; z++ {
		if err := ctx.Err(); err != nil {
			return written, err
		}

		log.Debug().Int("zoom", z).Int("count", len(level)).Msg("Processing zoom level")

		n, err := renderBatch(ctx, fc, baseDir, level, p)
		written += n
		if err != nil {
			return written, err
		}

		next := make([]TileCoordinate, 0, len(level)*4)
		for _, t := range level {
			for _, child := range t.Children() {
				if child.Bound().Intersects(bound) {
					next = append(next, child)
				}
			}
		}
		level = next
	}

	log.Info().Int("tiles", written).Str("dir", baseDir).Msg("Tile pyramid written")
	return written, nil
}

// renderBatch renders one zoom level with a bounded pool of workers and
// stops at the first write error.
func renderBatch(ctx context.Context, fc *geo.FeatureCollection, baseDir string, tiles []TileCoordinate, p Pyramid) (int, error) {
	jobs := make(chan TileCoordinate)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		written  atomic.Int64
		once     sync.Once
		firstErr error
	)

	for i := 0; i < p.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				ok, err := writeTile(fc, baseDir, t, p)
				if err != nil {
					once.Do(func() {
						firstErr = fmt.Errorf("tile %s: %w", t, err)
						cancel()
					})
					continue
				}
				if ok {
					written.Add(1)
				}
			}
		}()
	}

feed:
	for _, t := range tiles {
		select {
		case jobs <- t:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if firstErr != nil {
		return int(written.Load()), firstErr
	}
	return int(written.Load()), ctx.Err()
}

// writeTile reports false when the tile was already on disk and kept.
func writeTile(fc *geo.FeatureCollection, baseDir string, t TileCoordinate, p Pyramid) (bool, error) {
	outPath := t.Path(baseDir, p.Format)

	if !p.Force {
		if info, err := os.Stat(outPath); err == nil && info.Size() > 0 {
			log.Trace().Str("tile", t.String()).Msg("Tile exists, skipping")
			return false, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return false, err
	}

	f, err := os.Create(outPath)
	if err != nil {
		return false, err
	}
	defer func() { _ = f.Close() }()

	if err := Encode(f, RenderTile(fc, t, p.TileSize), p.Format); err != nil {
		return false, err
	}

	return true, f.Close()
}
