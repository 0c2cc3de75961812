package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/woozymasta/svgeo/internal/config"
	"github.com/woozymasta/svgeo/internal/convert"
	"github.com/woozymasta/svgeo/internal/logger"
	"github.com/woozymasta/svgeo/internal/preview"
	"github.com/woozymasta/svgeo/internal/source"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger    logger.Logger    `group:"Logger options"`
	Overrides config.Overrides `group:"Conversion options"`

	ConfigFile  string `short:"c" long:"config"      env:"CONFIG_FILE" description:"Path to YAML or TOML configuration file"`
	Input       string `short:"i" long:"in"          description:"Input SVG file path or http(s) URL" required:"true"`
	Dir         string `short:"d" long:"dir"         env:"TILES_DIR"   description:"Output directory for the tile pyramid" default:"tiles"`
	ZoomLimit   int    `short:"z" long:"zoom-limit"  env:"ZOOM_LIMIT"  description:"Tiles zoom limit" default:"6"`
	TileSize    int    `short:"t" long:"tile-size"   description:"Tile size in pixels" default:"256"`
	Concurrency int    `short:"p" long:"concurrency" env:"CONCURRENCY" description:"Concurrency, 0 uses every CPU"`
	Format      string `long:"tile-format"           description:"Tile image format" choice:"webp" choice:"png" default:"webp"`
	Force       bool   `short:"f" long:"force"       description:"Force overwrite of existing tiles"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	opts.Logger.Setup()

	cfg, err := config.LoadWith(opts.ConfigFile, opts.Overrides)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	f, err := source.Open(ctx, nil, opts.Input)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open input")
	}
	res, err := convert.ConvertReader(f, cfg.Options())
	_ = f.Close()
	if err != nil {
		log.Fatal().Err(err).Msg("Conversion failed")
	}
	for _, w := range res.Warnings {
		log.Warn().Msg(w)
	}

	log.Info().
		Str("in", opts.Input).
		Int("features", len(res.Collection.Features)).
		Int("zoom_limit", opts.ZoomLimit).
		Msg("Starting tiler")

	_, err = preview.WriteTiles(ctx, res.Collection, opts.Dir, preview.Pyramid{
		Format:      opts.Format,
		ZoomLimit:   opts.ZoomLimit,
		TileSize:    opts.TileSize,
		Concurrency: opts.Concurrency,
		Force:       opts.Force,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to write tiles")
	}
}
