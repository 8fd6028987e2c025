// main.go
package main

import (
	"context"
	"io"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"hotel-booking/cmd"
	"hotel-booking/internal/data/repository"
	"hotel-booking/internal/jobs"
	"hotel-booking/internal/notify"
	"hotel-booking/internal/storage"
	"hotel-booking/internal/usecase"
	"hotel-booking/internal/wire"
	"hotel-booking/pkg/cache"
	"hotel-booking/pkg/database"
	"hotel-booking/pkg/metrics"
	"hotel-booking/pkg/telemetry"
	"hotel-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App.LogPath, config.App.Name, config.App.Debug)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Tracing
	shutdownTracing, err := telemetry.Init(ctx, config.Telemetry)
	if err != nil {
		logger.Fatal("Failed to init telemetry", zap.Error(err))
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("Failed to flush traces", zap.Error(err))
		}
	}()

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connected successfully")

	if config.Database.AutoMigrate {
		version, err := database.Migrate(ctx, database.ConnString(config.Database))
		if err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
		logger.Info("Migrations applied", zap.Uint("schema_version", version))
	}

	// Session cache is optional
	sessionCache := cache.NewNoopSessionCache()
	if config.Redis.Addr != "" {
		client, err := cache.NewRedisClient(config.Redis)
		if err != nil {
			logger.Warn("Redis unavailable, running without session cache", zap.Error(err))
		} else {
			defer client.Close()
			sessionCache = cache.NewRedisSessionCache(client, logger)
			logger.Info("Redis connected", zap.String("addr", config.Redis.Addr))
		}
	}

	// File storage
	store, err := storage.NewFileStore(*config, logger)
	if err != nil {
		logger.Fatal("Failed to init file storage", zap.Error(err))
	}

	var wg sync.WaitGroup

	// Notification fan-out
	hub := notify.NewHub()
	wg.Add(2)
	go func() {
		defer wg.Done()
		hub.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		if err := notify.NewConsumer(config.RabbitMQ, hub, logger).Start(ctx); err != nil && ctx.Err() == nil {
			logger.Error("Notification consumer stopped", zap.Error(err))
		}
	}()

	dispatcher := notify.NewDispatcher(config.RabbitMQ, hub, logger)
	if closer, ok := dispatcher.(io.Closer); ok {
		defer closer.Close()
	}

	// Initialize all repositories
	repos := repository.NewRepository(db, logger)

	// Wire all dependencies
	app := wire.Wiring(wire.Deps{
		DB:   db,
		Repo: repos,
		Infra: usecase.Infra{
			SessionCache: sessionCache,
			Dispatcher:   dispatcher,
			Store:        store,
			Metrics:      metrics.New(),
		},
		Hub:    hub,
		Config: config,
		Logger: logger,
	})

	// Background jobs
	if config.Jobs.Enabled {
		if err := jobs.NewScheduler(repos, app.Limiter, logger).Start(ctx); err != nil {
			logger.Fatal("Failed to start jobs", zap.Error(err))
		}
	}

	// Start server
	logger.Info("Starting HTTP server", zap.String("port", config.App.Port))

	if err := cmd.APIServer(ctx, app.Handler, config.App.Port, logger); err != nil {
		logger.Error("HTTP server stopped", zap.Error(err))
	}

	stop()
	wg.Wait()
	logger.Info("Shutdown complete")
}
