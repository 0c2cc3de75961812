package main

import (
	"bytes"
	"context"
	"os"

	"github.com/woozymasta/svgeo/internal/config"
	"github.com/woozymasta/svgeo/internal/convert"
	"github.com/woozymasta/svgeo/internal/logger"
	"github.com/woozymasta/svgeo/internal/output"
	"github.com/woozymasta/svgeo/internal/source"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger    logger.Logger    `group:"Logger options"`
	Overrides config.Overrides `group:"Conversion options"`

	ConfigFile string `short:"c" long:"config" env:"CONFIG_FILE" description:"Path to YAML or TOML configuration file"`
	Input      string `short:"i" long:"in"     description:"Input SVG file path or http(s) URL. Reads from stdin if empty"`
	Output     string `short:"o" long:"out"    description:"Output file path. Writes to stdout if empty"`
	Format     string `short:"f" long:"format" description:"Output format" choice:"json" choice:"yaml" default:"json"`
	Indent     bool   `long:"indent" description:"Indent JSON output"`
	Minify     bool   `long:"minify" description:"Minify JSON output"`
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

	input, err := source.ReadAll(context.Background(), nil, opts.Input)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to read input")
	}

	res, err := convert.ConvertReader(bytes.NewReader(input), cfg.Options())
	if err != nil {
		log.Fatal().Err(err).Msg("Conversion failed")
	}
	for _, w := range res.Warnings {
		log.Warn().Msg(w)
	}

	fc := output.Round(res.Collection, cfg.Precision)
	format := output.Format{Kind: opts.Format, Indent: opts.Indent, Minify: opts.Minify}

	if opts.Output == "" {
		if err := output.Encode(os.Stdout, fc, format); err != nil {
			log.Fatal().Err(err).Msg("Failed to write output")
		}
		return
	}

	if err := output.WriteFile(opts.Output, fc, format); err != nil {
		log.Fatal().Err(err).Msg("Failed to write output file")
	}

	log.Info().
		Int("features", len(res.Collection.Features)).
		Int("warnings", len(res.Warnings)).
		Str("out", opts.Output).
		Str("format", opts.Format).
		Msg("Conversion finished")
}
