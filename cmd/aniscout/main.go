package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"aniscout/pkg/anilist"
	"aniscout/pkg/config"
	"aniscout/pkg/handlers"
	"aniscout/pkg/linker"
	"aniscout/pkg/repository"
	"aniscout/pkg/rss"
	"aniscout/pkg/services"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/bolthold"
)

func main() {
	// Optional .env file for local development
	if err := godotenv.Load(); err == nil {
		log.Debug("Loaded environment from .env file")
	}

	// Setup logging
	log.SetOutput(os.Stdout)
	log.Info("Starting Aniscout application")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.WithField("level", cfg.LogLevel).Warn("Unknown log level, using info")
	}

	// Initialize database
	dbPath := filepath.Join(cfg.DataDir, "data.db")
	store, err := bolthold.Open(dbPath, 0666, nil)
	if err != nil {
		log.WithError(err).Fatal("Failed to open database")
	}

	// Initialize repository
	repo := repository.NewBoltRepository(store)

	// Initialize AniList client
	catalog := anilist.New(&anilist.Config{
		URL:     cfg.AniListURL,
		Timeout: cfg.GetRequestTimeout(),
	})

	// Initialize RSS aggregator with the default source registry
	feeds := rss.NewAggregator(cfg.GetRequestTimeout())

	// Initialize entity linker
	entityLinker := linker.New(catalog, &linker.Config{
		CacheDir:      cfg.CacheDir,
		CacheTTL:      cfg.GetCacheTTL(),
		MinConfidence: cfg.MinConfidence,
	})

	// Initialize services
	researchService := services.NewResearchService(repo, catalog, feeds, entityLinker, services.ResearchConfig{
		FetchDays:    cfg.FetchDays,
		FetchLimit:   cfg.FetchLimit,
		LinkEntities: cfg.LinkEntities,
	})
	appService := services.NewAppService(repo, researchService, entityLinker, feeds)

	// Initialize HTTP handlers
	handler := handlers.NewHandler(appService)
	handler.SetupRoutes()

	// Start background ingestion loop
	go startBackgroundTasks(appService, cfg)

	// Start HTTP server
	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.WithField("address", server.Addr).Info("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("HTTP server failed")
		}
	}()

	// Wait for shutdown signal
	waitForShutdown(server, appService)
}

// startBackgroundTasks starts the periodic ingestion loop
func startBackgroundTasks(appService *services.AppService, cfg *config.Config) {
	syncInterval, err := cfg.GetSyncInterval()
	if err != nil {
		log.WithError(err).Error("Invalid sync interval, using default 6h")
		syncInterval = 6 * time.Hour
	}

	ticker := time.NewTicker(syncInterval)
	defer ticker.Stop()

	// Run tasks immediately on startup
	runScheduledSync(appService)

	for range ticker.C {
		runScheduledSync(appService)
	}
}

func runScheduledSync(appService *services.AppService) {
	if _, err := appService.RunTasks(context.Background(), "scheduler"); err != nil {
		log.WithError(err).Error("Failed to run application tasks")
	}
}

// waitForShutdown waits for shutdown signals and gracefully shuts down
func waitForShutdown(server *http.Server, appService *services.AppService) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	sig := <-sigChan
	log.WithField("signal", sig).Info("Received shutdown signal, initiating graceful shutdown")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	} else {
		log.Info("HTTP server shut down successfully")
	}

	// Shutdown application service (closes the store)
	if err := appService.Close(); err != nil {
		log.WithError(err).Error("Failed to shutdown application service")
	} else {
		log.Info("Application service shut down successfully")
	}

	log.Info("Graceful shutdown completed")
}
