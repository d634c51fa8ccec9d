package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/roomradar/roomradar/internal/adapters/http"
	"github.com/roomradar/roomradar/internal/adapters/memory"
	natsadapter "github.com/roomradar/roomradar/internal/adapters/nats"
	"github.com/roomradar/roomradar/internal/adapters/postgres"
	"github.com/roomradar/roomradar/internal/adapters/valkey"
	"github.com/roomradar/roomradar/internal/core/ports"
	"github.com/roomradar/roomradar/internal/core/usecases"
	"github.com/roomradar/roomradar/internal/pkg/config"
	"github.com/roomradar/roomradar/internal/pkg/logging"
	"github.com/roomradar/roomradar/internal/pkg/metrics"
	"github.com/roomradar/roomradar/internal/pkg/telemetry"
)

func main() {
	cfg, err := config.Load("roomradar-api")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	// Structured logging
	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}
	logging.Setup(logLevel, "json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Telemetry
	if cfg.Telemetry.Enabled {
		shutdown, err := telemetry.InitTracer(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.ExporterAddr)
		if err != nil {
			slog.Warn("telemetry init failed", "error", err)
		} else {
			defer shutdown()
		}
	}

	// Listing store: PostGIS in production, in-process R-tree for development
	var (
		listingRepo ports.ListingRepository
		db          *postgres.DB
	)
	switch cfg.Storage.Driver {
	case "postgres":
		db, err = postgres.New(ctx, cfg.Database.DSN())
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
		listingRepo = postgres.NewListingRepo(db)

		// Refresh pool gauges periodically
		go func() {
			ticker := time.NewTicker(15 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					metrics.UpdateDBPoolMetrics(db.Pool.Stat())
				case <-ctx.Done():
					return
				}
			}
		}()
	case "memory":
		slog.Info("using in-memory listing store")
		listingRepo = memory.NewListingRepo()
	default:
		log.Fatalf("unknown storage driver: %s", cfg.Storage.Driver)
	}

	// Cache
	var cache ports.CacheService
	vk, err := valkey.New(cfg.Valkey.Addr)
	if err != nil {
		slog.Warn("valkey unavailable", "error", err)
	} else {
		defer vk.Close()
		cache = vk
	}

	// NATS
	var events ports.EventPublisher
	pub, err := natsadapter.NewPublisher(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats unavailable", "error", err)
	} else {
		defer pub.Close()
		events = pub
	}

	// Raw NATS connection for WebSocket relay
	natsConn, err := natsadapter.RawConn(cfg.NATS.URL)
	if err != nil {
		slog.Warn("nats ws conn unavailable", "error", err)
	}

	// Use cases
	listingSvc := usecases.NewListingService(listingRepo, events)
	searchSvc := usecases.NewSearchService(listingRepo, cache)

	deps := &http.Dependencies{
		Listings: listingSvc,
		Search:   searchSvc,
		NATS:     natsConn,
		DB:       db,
		Cache:    vk,
	}

	// Fiber
	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    1024 * 1024, // 1 MB max request body
		AppName:      "RoomRadar API",
	})
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:3000, http://localhost:5173, https://*.roomradar.in",
		AllowMethods:     "GET,POST,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, X-User-Id, X-User-Role",
		AllowCredentials: false,
		MaxAge:           3600,
	}))

	http.SetupRoutes(app, deps)

	// Graceful shutdown
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("API server starting", "addr", addr, "storage", cfg.Storage.Driver)
		if err := app.Listen(addr); err != nil {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	slog.Info("shutdown signal received, draining connections...", "signal", sig.String())

	// Give in-flight requests up to 10s to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}

	slog.Info("server stopped")
}
