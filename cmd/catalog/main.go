package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aria-live/concert-catalog/internal/catalog/api"
	"github.com/aria-live/concert-catalog/internal/catalog/archive"
	"github.com/aria-live/concert-catalog/internal/catalog/store"
	"github.com/aria-live/concert-catalog/internal/config"
	"github.com/aria-live/concert-catalog/internal/server"
)

func main() {
	configPath := flag.String("config", "catalog.yaml", "Path to configuration file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config", "config", cfg)

	events, err := archive.Load(cfg.Archive.Path, time.Now().UTC())
	if err != nil {
		slog.Error("Failed to load event archive", "path", cfg.Archive.Path, "error", err)
		os.Exit(1)
	}
	slog.Info("Event archive loaded", "path", cfg.Archive.Path, "events", len(events))

	catalogStore := store.New(events)
	catalogAPI := api.NewService(catalogStore)

	srv := server.New(cfg.Server.Addr(), cfg.Server.Mode)
	catalogAPI.RegisterRoutes(srv.Engine)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}
