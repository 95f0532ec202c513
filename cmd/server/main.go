package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/blobyeu/statuspage/internal/api"
	"github.com/blobyeu/statuspage/internal/config"
	"github.com/blobyeu/statuspage/internal/database"
	"github.com/blobyeu/statuspage/internal/jobs"
	"github.com/blobyeu/statuspage/internal/status"
	"github.com/blobyeu/statuspage/internal/uptimerobot"
	"github.com/blobyeu/statuspage/internal/vpncheck"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("configuration validation failed")
	}

	if cfg.Uptime.APIKey == "" {
		log.Warn().Msg("UPTIMEROBOT_API_KEY not set, status requests will fail until it is configured")
	}

	// Initialize database
	db, err := database.Connect(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to get database connection")
	}
	defer sqlDB.Close()

	// Run migrations
	if err := database.RunMigrations(cfg.Database); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Upstream client and result assembler
	client := uptimerobot.NewClient(cfg.Uptime.APIKey, cfg.Uptime.APIURL, nil)
	assembler := status.NewAssembler(client, cfg.Uptime)

	// VPN/proxy IP checker
	checker := vpncheck.New(cfg.VPNAPIKey, nil)

	// Background refresher and job scheduler
	refresher := jobs.NewRefresher(assembler, log)
	scheduler := jobs.NewScheduler(db, refresher, log)
	scheduler.Start(cfg.Uptime.RefreshInterval)
	defer scheduler.Stop()

	// Setup API router
	router := api.NewRouter(cfg, db, assembler, checker, log)

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Int("port", cfg.Port).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
