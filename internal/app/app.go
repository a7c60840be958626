package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"mapstats/internal/collector"
	"mapstats/internal/engine"
	internalhttp "mapstats/internal/http"
	"mapstats/internal/models"
	"mapstats/internal/shared/configs"
	"mapstats/internal/shared/filestorages"
	"mapstats/internal/shared/loggers"
	"mapstats/internal/stores"
)

// App holds all application dependencies and manages lifecycle.
type App struct {
	config    *configs.Config
	appLogger loggers.Logger
	server    *http.Server

	scanCollector    collector.Collector
	stopCh           chan struct{}
	backgroundCtx    context.Context
	backgroundCancel context.CancelFunc
}

// New creates and initializes a new App instance.
func New(config *configs.Config) (*App, error) {
	appLogger, err := loggers.New(config.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	appLogger = appLogger.With().
		Str(loggers.FieldApp, "mapstats").
		Logger()

	// Initialize blob store
	fileStorage, err := filestorages.NewFileStorage(config.FileStorage.RootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize stores
	sampleStore := stores.NewSampleStore(fileStorage)
	nameStore := stores.NewServerNameStore(fileStorage)
	cooldownStore := stores.NewCooldownStore(fileStorage)

	// Initialize chart engine
	bucketWidth, err := models.BucketWidthFromHours(config.Engine.BucketWidthHours)
	if err != nil {
		return nil, fmt.Errorf("invalid bucket width: %w", err)
	}
	chartService := engine.NewChartService(sampleStore, nameStore, engine.Options{
		BucketWidth:  bucketWidth,
		QueryTimeout: time.Duration(config.Engine.QueryTimeout) * time.Second,
		CacheSize:    config.Engine.CacheSize,
		CacheTTL:     time.Duration(config.Engine.CacheTTL) * time.Second,
	})

	// Initialize collector (optional: a query-only deployment disables it)
	var scanCollector collector.Collector
	if config.Collector.Enabled {
		lister, err := collector.NewSteamLister(
			config.Collector.Game,
			config.Collector.SteamAPIKey,
			time.Duration(config.Collector.ListerTimeout)*time.Second,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize server lister: %w", err)
		}
		collectorLogger := appLogger.With().Str(loggers.FieldComponent, "collector").Logger()
		scanCollector = collector.NewCollector(
			lister,
			collector.NewUDPProber(),
			sampleStore,
			nameStore,
			cooldownStore,
			collector.Options{
				Interval:     time.Duration(config.Collector.Interval) * time.Second,
				ProbeWorkers: config.Collector.ProbeWorkers,
				ProbeTimeout: time.Duration(config.Collector.ProbeTimeout) * time.Second,
				RecentDays:   config.Collector.RecentDays,
			},
			collectorLogger,
		)
	}

	// Initialize http router
	stopCh := make(chan struct{})
	httpLogger := appLogger.With().Str(loggers.FieldComponent, "http").Logger()
	router := internalhttp.NewRouter(chartService, internalhttp.RouterOptions{
		RateLimit: config.RateLimit,
		AdminIPs:  config.Admin.IPs,
		StopCh:    stopCh,
	}, httpLogger)

	// Create HTTP server
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", config.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: time.Duration(config.Server.ReadHeaderTimeout) * time.Second,
		ReadTimeout:       time.Duration(config.Server.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(config.Server.WriteTimeout) * time.Second,
		IdleTimeout:       time.Duration(config.Server.IdleTimeout) * time.Second,
	}

	return &App{
		config:        config,
		appLogger:     appLogger,
		server:        server,
		scanCollector: scanCollector,
		stopCh:        stopCh,
	}, nil
}

// Start starts the HTTP server in a blocking manner.
func (app *App) Start() error {
	app.appLogger.Info().
		Msgf("Starting mapstats service on port %d (log_level=%s, file_storage_root_dir=%s, collector_enabled=%t)",
			app.config.Server.Port,
			app.config.Log.Level,
			app.config.FileStorage.RootDir,
			app.config.Collector.Enabled)

	// start background collector
	app.backgroundCtx, app.backgroundCancel = context.WithCancel(context.Background())
	if app.scanCollector != nil {
		app.scanCollector.Start(app.backgroundCtx)
	}

	return app.server.ListenAndServe()
}

// Shutdown gracefully shuts down the application.
func (app *App) Shutdown(ctx context.Context) error {
	// 1) Shutdown server
	app.appLogger.Info().Msg("Shutting down server...")
	if err := app.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	close(app.stopCh)
	app.appLogger.Info().Msg("Server stopped")

	// 2) Cancel background collector
	if app.backgroundCancel != nil {
		app.backgroundCancel()
		app.appLogger.Info().Msg("Background collector cancelled")
	}

	// 3) Wait for the collector to finish
	if app.scanCollector != nil {
		app.scanCollector.Stop()
		app.appLogger.Info().Msg("Background collector stopped")
	}

	return nil
}
