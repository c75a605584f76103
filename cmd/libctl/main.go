package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danmuck/libctl/internal/config"
	"github.com/danmuck/libctl/internal/galaxy"
	"github.com/danmuck/libctl/internal/library"
	"github.com/danmuck/libctl/internal/manifest"
	"github.com/danmuck/libctl/internal/observability"
	"github.com/danmuck/libctl/internal/status"
)

const (
	exitFailures = 1
	exitConfig   = 2
)

func main() {
	configPath := flag.String("config", "", "optional TOML config file")
	galaxyURL := flag.String("galaxy", "", "galaxy server base url")
	apiKey := flag.String("api-key", "", "galaxy api key")
	libraryName := flag.String("library", "", "data library name")
	description := flag.String("description", "", "data library description")
	manifestLoc := flag.String("manifest", "", "manifest url or local path")
	maxWait := flag.Int("max-wait", 0, "seconds to wait per dataset upload (default 600)")
	pollInterval := flag.Int("poll-interval", 0, "seconds between dataset state polls (default 3)")
	statusAddr := flag.String("status-addr", "", "optional address for the health/metrics endpoint")
	flag.Parse()

	logger := observability.InitLogger("libctl")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load config")
		os.Exit(exitConfig)
	}
	cfg = applyFlags(cfg, *galaxyURL, *apiKey, *libraryName, *description, *manifestLoc, *statusAddr, *maxWait, *pollInterval)
	if err := config.Validate(cfg); err != nil {
		logger.Error().Err(err).Msg("invalid config")
		os.Exit(exitConfig)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	data, err := manifest.Fetch(ctx, nil, cfg.Manifest)
	if err != nil {
		logger.Error().Err(err).Str("manifest", cfg.Manifest).Msg("failed to fetch manifest")
		os.Exit(exitConfig)
	}
	descriptors, err := manifest.Parse(data)
	if err != nil {
		logger.Error().Err(err).Str("manifest", cfg.Manifest).Msg("invalid manifest")
		os.Exit(exitConfig)
	}
	logger.Info().Str("manifest", cfg.Manifest).Int("datasets", len(descriptors)).Msg("manifest loaded")

	client, err := galaxy.New(galaxy.Config{BaseURL: cfg.GalaxyURL, APIKey: cfg.APIKey}, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build galaxy client")
		os.Exit(exitConfig)
	}
	reconciler, err := library.New(client, library.Config{
		MaxWait:      time.Duration(cfg.MaxWaitSeconds) * time.Second,
		PollInterval: time.Duration(cfg.PollIntervalSeconds) * time.Second,
	}, logger)
	if err != nil {
		logger.Error().Err(err).Msg("failed to build reconciler")
		os.Exit(exitConfig)
	}

	if cfg.StatusAddr != "" {
		srv := status.New("libctl", cfg.StatusAddr, logger)
		srv.Start()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	report, err := reconciler.Run(ctx, cfg.Library, cfg.Description, manifest.Specs(descriptors))
	if err != nil {
		logger.Error().Err(err).Str("library", cfg.Library).Msg("reconcile aborted")
		os.Exit(exitFailures)
	}

	for _, res := range report.Results {
		if res.Err == nil {
			continue
		}
		logger.Error().
			Err(res.Err).
			Str("dataset", res.Spec.Name).
			Str("folder", res.Spec.FolderName).
			Str("url", res.Spec.URL).
			Str("status", string(res.Status)).
			Msg("dataset did not reconcile")
	}
	if report.HasFailures() {
		os.Exit(exitFailures)
	}
}

func applyFlags(cfg config.Config, galaxyURL, apiKey, libraryName, description, manifestLoc, statusAddr string, maxWait, pollInterval int) config.Config {
	if galaxyURL != "" {
		cfg.GalaxyURL = galaxyURL
	}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	if libraryName != "" {
		cfg.Library = libraryName
	}
	if description != "" {
		cfg.Description = description
	}
	if manifestLoc != "" {
		cfg.Manifest = manifestLoc
	}
	if statusAddr != "" {
		cfg.StatusAddr = statusAddr
	}
	if maxWait > 0 {
		cfg.MaxWaitSeconds = maxWait
	}
	if pollInterval > 0 {
		cfg.PollIntervalSeconds = pollInterval
	}
	return cfg
}
