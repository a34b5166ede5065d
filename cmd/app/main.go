package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/veylan/ForgeLedger_Go/internal/bootstrap"
	"github.com/veylan/ForgeLedger_Go/internal/config"
	"github.com/veylan/ForgeLedger_Go/internal/database"
	"github.com/veylan/ForgeLedger_Go/internal/equipment"
	"github.com/veylan/ForgeLedger_Go/internal/handler"
	"github.com/veylan/ForgeLedger_Go/internal/prices"
	"github.com/veylan/ForgeLedger_Go/internal/server"
	"github.com/veylan/ForgeLedger_Go/internal/session"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	logFile, err := bootstrap.SetupLogger(cfg)
	if err != nil {
		slog.Error("Logger setup failed", "error", err)
		os.Exit(1)
	}
	defer logFile.Close()

	handler.InitValidator()

	if err := database.Migrate(cfg.GetDBConnString(), cfg.MigrationsDir); err != nil {
		slog.Error("Database migration failed", "error", err)
		os.Exit(1)
	}

	dbPool, err := database.NewPool(cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdleTime, cfg.DBMaxConnLifetime)
	if err != nil {
		slog.Error("Database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	recipeRegistry, err := equipment.LoadRegistry(cfg.RecipePath)
	if err != nil {
		slog.Error("Recipe catalog load failed", "error", err, "path", cfg.RecipePath)
		os.Exit(1)
	}
	slog.Info("Recipe catalog loaded", "recipes", recipeRegistry.Len())

	repos := bootstrap.InitializeRepositories(dbPool)
	sessionService := session.NewService(repos.Session)
	priceClient := prices.NewClient(cfg.PriceAPIURL, prices.DefaultCacheSize, cfg.PriceCacheTTL)

	srv := server.NewServer(cfg.Port, nil, dbPool, sessionService, priceClient, recipeRegistry)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		slog.Info("Shutdown signal received", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(ctx, bootstrap.ShutdownComponents{Server: srv})
}
