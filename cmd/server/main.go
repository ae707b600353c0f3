package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/storage/redis/v3"
	"github.com/joho/godotenv"

	"walink/internal/config"
	"walink/internal/db"
	"walink/internal/generator"
	"walink/internal/handlers"
	"walink/internal/history"
	"walink/internal/jobs"
	"walink/internal/links"
	"walink/internal/logging"
	"walink/internal/metrics"
	"walink/internal/server"
	"walink/internal/validation"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	// Country list
	yamlCfg, err := config.LoadYAMLConfig()
	if err != nil {
		log.Fatalf("Failed to load config file: %v", err)
	}
	catalog, err := yamlCfg.Catalog()
	if err != nil {
		log.Fatalf("Invalid country list: %v", err)
	}
	logger.Info("country list loaded", "countries", catalog.Len())

	// Outbound endpoints
	if ok, msg := validation.ValidateDomain(cfg.MessagingDomain); !ok {
		log.Fatalf("Invalid MESSAGING_DOMAIN: %s", msg)
	}
	if ok, msg := validation.ValidateURL(cfg.QREndpoint); !ok {
		log.Fatalf("Invalid QR_ENDPOINT: %s", msg)
	}
	if ok, msg := validation.ValidateURL(cfg.FlagEndpoint); !ok {
		log.Fatalf("Invalid FLAG_ENDPOINT: %s", msg)
	}
	builder := links.NewBuilder(cfg.MessagingDomain, cfg.QREndpoint, cfg.FlagEndpoint)

	// Device storage and sessions
	storage := redis.New(redis.Config{URL: cfg.RedisURL})
	defer storage.Close()

	checks := map[string]handlers.CheckFunc{
		"redis": func(ctx context.Context) error {
			return storage.Conn().Ping(ctx).Err()
		},
	}

	// Outcome statistics are optional
	var stats metrics.StatsStore
	if cfg.IsStatsEnabled() {
		database, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("Migrations completed successfully")

		stats = database
		checks["database"] = database.Ping
	} else {
		log.Println("DATABASE_URL not set, outcome statistics are not persisted")
	}

	recorder := metrics.New(nil, stats)
	defer recorder.Close()

	// Upstream checker
	var upstreams *jobs.UpstreamChecker
	if cfg.UpstreamCheckInterval > 0 {
		upstreams = jobs.NewUpstreamChecker([]jobs.Upstream{
			{Name: "qr", URL: builder.QRCodeURL("https://" + cfg.MessagingDomain + "/")},
			{Name: "flags", URL: builder.FlagURL(catalog.First().Code)},
		}, cfg.UpstreamCheckInterval, recorder, logger)
		go upstreams.Start(ctx)
	}

	srv := server.New(cfg, storage)
	deps := server.Deps{
		Generator: generator.Options{
			Catalog:  catalog,
			Builder:  builder,
			Store:    history.NewStore(storage, logger),
			Recorder: recorder,
			Logger:   logger,
		},
		Validator: validation.New(),
		Checks:    checks,
	}
	if upstreams != nil {
		deps.Upstreams = upstreams
	}
	srv.RegisterRoutes(deps)

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited")
}
