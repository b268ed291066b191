package main

import (
	"fmt"
	"os"

	"github.com/frog-cafe/frogcafe/internal/client"
	"github.com/frog-cafe/frogcafe/internal/config"
	"github.com/frog-cafe/frogcafe/internal/logger"
	"github.com/frog-cafe/frogcafe/internal/web"
)

var version = "dev" // Will be set during build with -ldflags

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger.Init(cfg.Logging.Level, cfg.Logging.Format)
	log := logger.GetLogger()

	redirects, err := client.ParseRedirectPolicy(cfg.API.Redirects)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid redirect policy")
	}

	// Sessions live in browser cookies, so the base client carries no token
	api := client.New(client.Config{
		BaseURL:      cfg.API.URL,
		Timeout:      cfg.API.Timeout,
		Redirects:    redirects,
		MaxRedirects: cfg.API.MaxRedirects,
	}, nil, log)

	srv, err := web.New(cfg.Web, api, log, version)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	log.Info().Str("version", version).Msg("Starting Frog Cafe web frontend...")

	// Start HTTP server (this blocks)
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("Server failed to start")
	}
}
