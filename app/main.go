package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eventfeed/eventfeed/app/api"
	"github.com/eventfeed/eventfeed/app/cache"
	"github.com/eventfeed/eventfeed/app/cfg"
	"github.com/eventfeed/eventfeed/app/feed"
	"github.com/eventfeed/eventfeed/app/service"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting EventFeed server", "version", appCfg.Version)

	// The feed path is validated up front; a non-XML path is a
	// configuration error, a missing file only degrades to empty results
	reader, err := feed.NewReader(appCfg.FeedFile)
	if err != nil {
		log.Fatalf("Invalid feed configuration: %v", err)
	}
	if modTime := reader.ModTime(); modTime.IsZero() {
		slog.Warn("Feed file not present yet, queries will return empty results", "path", appCfg.FeedFile)
	} else {
		slog.Info("Feed file configured", "path", appCfg.FeedFile, "modified_at", modTime)
	}

	// Response cache is optional: without Redis every request re-scans the
	// feed file
	var store cache.Store
	if appCfg.RedisAddr != "" {
		redisStore, err := cache.NewRedis(appCfg.RedisAddr, time.Duration(appCfg.CacheTTL)*time.Second)
		if err != nil {
			slog.Warn("Cache unavailable, serving without cache", "addr", appCfg.RedisAddr, "error", err)
		} else {
			defer redisStore.Close()
			store = redisStore
			slog.Info("Response cache connected", "addr", appCfg.RedisAddr, "ttl_seconds", appCfg.CacheTTL)
		}
	} else {
		slog.Info("Response caching disabled (REDIS_ADDR not set)")
	}

	svc := service.New(reader, store)

	handler := api.NewHandler(svc, reader, store != nil)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	} else {
		slog.Info("HTTP server stopped")
	}

	slog.Info("EventFeed server shutdown complete")
}
