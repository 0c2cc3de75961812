package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/woozymasta/svgeo/internal/config"
	"github.com/woozymasta/svgeo/internal/logger"
	"github.com/woozymasta/svgeo/internal/server"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
)

type Options struct {
	Logger    logger.Logger    `group:"Logger options"`
	Overrides config.Overrides `group:"Conversion options"`

	ConfigFile string `short:"c" long:"config"     env:"CONFIG_FILE"    description:"Path to YAML or TOML configuration file"`
	Addr       string `short:"a" long:"addr"       env:"LISTEN_ADDRESS" description:"Address to listen on" default:"0.0.0.0"`
	Port       int    `short:"p" long:"port"       env:"LISTEN_PORT"    description:"Port to listen on"    default:"8080"`
	BodyLimit  int64  `short:"l" long:"body-limit" env:"BODY_LIMIT"     description:"Maximum SVG upload size in bytes" default:"10485760"`
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

	srvCtx := server.NewServerContext(cfg, opts.BodyLimit)

	listenAddr := fmt.Sprintf("%s:%d", opts.Addr, opts.Port)
	srv := &http.Server{
		Addr:              listenAddr,
		Handler:           srvCtx.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info().
		Str("addr", listenAddr).
		Msg("Web server started")

	if err := srv.ListenAndServe(); err != nil {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
