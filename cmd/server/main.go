package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ainewshub/ai-news-hub/internal/config"
	"github.com/ainewshub/ai-news-hub/internal/handlers"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Create server
	server := handlers.NewServer(cfg)

	// Setup routes
	router := server.SetupRoutes()

	// Create HTTP server
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Warm the news cache before the first request hits.
	go func() {
		if _, err := server.Service().AllNews(ctx); err != nil {
			log.Printf("Initial news warmup failed: %v", err)
		}
	}()

	// Create cron scheduler for background maintenance
	c := cron.New()

	// Refresh the article corpus just before the cache TTL lapses so
	// readers rarely pay the fetch latency.
	refreshSpec := fmt.Sprintf("@every %dm", cfg.CacheTTLMinutes)
	if _, err := c.AddFunc(refreshSpec, func() {
		if _, err := server.Service().AllNews(ctx); err != nil {
			log.Printf("Scheduled news refresh failed: %v", err)
		}
	}); err != nil {
		log.Printf("Failed to schedule news refresh: %v", err)
	}

	// Sweep expired entries so stale search and content results do not
	// pile up between reads.
	if _, err := c.AddFunc("@every 10m", func() {
		if removed := server.Cache().CleanupExpired(); removed > 0 {
			log.Printf("Cache sweep removed %d expired entries", removed)
		}
	}); err != nil {
		log.Printf("Failed to schedule cache sweep: %v", err)
	}

	// Start cron scheduler
	c.Start()

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start server
	go func() {
		log.Printf("Starting server on %s:%s", cfg.Host, cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-sigChan
	log.Println("Shutting down server...")

	// Cancel background tasks
	cancel()

	// Stop cron scheduler
	c.Stop()

	// Shutdown HTTP server
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}
