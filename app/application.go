package app

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"
	"weatherdash.app/api"
	"weatherdash.app/cache"
	"weatherdash.app/charts"
	"weatherdash.app/config"
	"weatherdash.app/database"
	"weatherdash.app/metrics"
	"weatherdash.app/models"
	"weatherdash.app/providers"
	"weatherdash.app/scheduler"
	"weatherdash.app/service"
	"weatherdash.app/storage"
)

// Application represents the main application with all its dependencies
type Application struct {
	config    *config.Config
	registry  []models.City
	db        *gorm.DB
	refresher *service.RefreshService
	server    *api.Server
	scheduler *scheduler.Scheduler
}

// NewApplication creates and initializes a new application instance
func NewApplication() (*Application, error) {
	app := &Application{}

	if err := app.loadConfiguration(); err != nil {
		return nil, err
	}

	if err := app.initializeServices(); err != nil {
		return nil, err
	}

	return app, nil
}

// Config returns the loaded application configuration.
func (app *Application) Config() *config.Config {
	return app.config
}

func (app *Application) loadConfiguration() error {
	slog.Info("Loading configuration...")

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return fmt.Errorf("load application configuration: %w", err)
	}

	registry, err := cfg.LoadCities()
	if err != nil {
		slog.Error("Failed to load city registry", "error", err)
		return fmt.Errorf("load city registry: %w", err)
	}

	app.config = cfg
	app.registry = registry
	slog.Info("Configuration loaded successfully", "cities", len(registry))
	return nil
}

func (app *Application) initializeServices() error {
	slog.Info("Initializing services...")

	snapshots, err := cache.NewSnapshotCache(&app.config.Cache)
	if err != nil {
		return fmt.Errorf("create snapshot cache: %w", err)
	}

	renderer, err := charts.NewRenderer(app.config.Output.ChartsDir)
	if err != nil {
		return fmt.Errorf("create chart renderer: %w", err)
	}

	exporter, err := storage.NewCSVWriter(app.config.Output.CSVPath)
	if err != nil {
		return fmt.Errorf("create csv exporter: %w", err)
	}

	archiver, err := app.initializeArchive()
	if err != nil {
		return err
	}

	app.refresher = service.NewRefreshService(service.RefreshServiceOptions{
		Registry:    app.registry,
		Fetcher:     providers.NewOpenMeteoProvider(&app.config.Upstream),
		Snapshots:   snapshots,
		Renderer:    renderer,
		Exporter:    exporter,
		Archiver:    archiver,
		Metrics:     metrics.NewRefreshMetrics(),
		PacingDelay: app.config.Upstream.PacingDelay,
	})

	server, err := api.NewServer(api.ServerOptions{
		Config:    app.config,
		Registry:  app.registry,
		Snapshots: snapshots,
		Refresher: app.refresher,
	})
	if err != nil {
		return fmt.Errorf("create server: %w", err)
	}
	app.server = server

	app.scheduler = scheduler.NewScheduler(&app.config.Scheduler, app.refresher)

	slog.Info("Services initialized successfully")
	return nil
}

// initializeArchive opens the optional observation archive. Returns a nil
// archiver when disabled.
func (app *Application) initializeArchive() (service.ObservationArchiver, error) {
	if !app.config.Archive.Enabled {
		return nil, nil
	}

	slog.Info("Initializing observation archive", "driver", app.config.Archive.Driver)

	db, err := database.InitDB(app.config.Archive)
	if err != nil {
		return nil, fmt.Errorf("initialize archive database: %w", err)
	}

	if err := database.RunMigrations(db); err != nil {
		return nil, fmt.Errorf("run archive migrations: %w", err)
	}

	app.db = db
	return storage.NewObservationArchive(db), nil
}

// Start performs the initial refresh, starts the periodic scheduler, and
// begins serving HTTP. The initial refresh may fail without data (the
// dashboard renders a loading state); the server starts regardless.
func (app *Application) Start() error {
	slog.Info("Running initial weather data refresh...")
	if err := app.refresher.Refresh(context.Background()); err != nil {
		slog.Error("Initial refresh failed, serving without data", "error", err)
	}

	if err := app.scheduler.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}

	slog.Info("Starting HTTP server", "addr", app.config.Server.Addr())
	return app.server.Start()
}

// Shutdown stops background work and releases resources.
func (app *Application) Shutdown() error {
	slog.Info("Shutting down application...")

	if app.scheduler != nil {
		app.scheduler.Stop()
	}

	if app.db != nil {
		if err := database.CloseDB(app.db); err != nil {
			return fmt.Errorf("close archive database: %w", err)
		}
	}

	return nil
}
