// Viewstats - Netflix Viewing History Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/viewstats

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"

	"github.com/tomtom215/viewstats/internal/api"
	"github.com/tomtom215/viewstats/internal/config"
	"github.com/tomtom215/viewstats/internal/enrich"
	viewingimport "github.com/tomtom215/viewstats/internal/import"
	"github.com/tomtom215/viewstats/internal/logging"
	"github.com/tomtom215/viewstats/internal/metrics"
	"github.com/tomtom215/viewstats/internal/store"
	"github.com/tomtom215/viewstats/internal/supervisor"
	"github.com/tomtom215/viewstats/internal/supervisor/services"
	"github.com/tomtom215/viewstats/internal/tmdb"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(loggingConfig(cfg))
	defer func() {
		if err := logging.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "close log file: %v\n", err)
		}
	}()

	logging.Info().
		Str("version", version).
		Str("environment", cfg.Server.Environment).
		Str("storage", storageLabel(cfg)).
		Bool("tmdb_credential", cfg.HasTMDBCredential()).
		Str("tmdb_key", logging.SanitizeToken(cfg.TMDB.APIKey)).
		Msg("Starting viewstats")
	metrics.RecordAppInfo(version)

	if err := run(cfg); err != nil {
		logging.Error().Err(err).Msg("Server stopped with error")
		_ = logging.Close()
		os.Exit(1)
	}
	logging.Info().Msg("Application stopped gracefully")
}

// resultStore is what the server needs from the record store.
type resultStore interface {
	api.DataStore
	viewingimport.Store
	services.GarbageCollector
	Close() error
}

// openStore opens the record store, cached when STORAGE_CACHE_TTL is positive.
func openStore(cfg config.StorageConfig) (resultStore, error) {
	st, err := store.Open(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.CacheTTL > 0 {
		return store.NewCached(st, cfg.CacheTTL), nil
	}
	return st, nil
}

func run(cfg *config.Config) error {
	st, err := openStore(cfg.Storage)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	importer := viewingimport.NewImporter(cfg, st, metadataSource(cfg))

	handler := api.NewHandler(st, importer, cfg, version)
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromSecurity(cfg.Security))
	server := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           router.SetupChi(),
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	if cfg.Storage.GCInterval > 0 && !cfg.Storage.InMemory {
		tree.AddDataService(services.NewStoreGCService(st, cfg.Storage.GCInterval))
	}
	if cfg.Import.AutoStart {
		logging.Info().Str("path", cfg.Import.Path).Msg("Startup import scheduled")
		tree.AddDataService(services.NewStartupImportService(
			importer, afero.NewOsFs(), cfg.Import.Path, cfg.Import.Language, cfg.Import.Timeout))
	}

	watchLogLevel()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Starting supervisor tree")
	err = tree.Serve(ctx)

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// metadataSource builds the TMDB client. Without a credential the client
// still exists; imports then store unenriched data.
func metadataSource(cfg *config.Config) enrich.MetadataSource {
	if !cfg.Enrichment.Enabled {
		logging.Info().Msg("Metadata enrichment disabled (ENRICHMENT_ENABLED=false)")
	}
	if !cfg.HasTMDBCredential() {
		logging.Warn().Msg("TMDB_API_KEY is not set; imports will not be enriched")
	}
	if cfg.TMDB.BreakerEnabled {
		return tmdb.NewCircuitBreakerClient(&cfg.TMDB)
	}
	return tmdb.NewClient(&cfg.TMDB)
}

// watchLogLevel applies log level changes from the config file at runtime.
func watchLogLevel() {
	path := config.ConfigFilePath()
	if path == "" {
		return
	}
	err := config.WatchConfigFile(path, func() {
		reloaded, err := config.LoadWithKoanf()
		if err != nil {
			logging.Warn().Err(err).Msg("Ignoring invalid config file change")
			return
		}
		logging.SetLevelString(reloaded.Logging.Level)
		logging.Info().Str("level", reloaded.Logging.Level).Msg("Log level reloaded")
	})
	if err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Config file watching unavailable")
	}
}

func loggingConfig(cfg *config.Config) logging.Config {
	lc := logging.DefaultConfig()
	lc.Level = cfg.Logging.Level
	lc.Format = cfg.Logging.Format
	lc.Caller = cfg.Logging.Caller
	lc.File = cfg.Logging.File
	lc.MaxSizeMB = cfg.Logging.MaxSizeMB
	lc.MaxBackups = cfg.Logging.MaxBackups
	lc.MaxAgeDays = cfg.Logging.MaxAgeDays
	lc.Compress = cfg.Logging.Compress
	return lc
}

func storageLabel(cfg *config.Config) string {
	if cfg.Storage.InMemory {
		return "memory"
	}
	return cfg.Storage.Path
}
