package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bekzat/lingotrack/internal/api"
	"github.com/bekzat/lingotrack/internal/config"
	"github.com/bekzat/lingotrack/internal/db"
	"github.com/bekzat/lingotrack/internal/logger"
	"github.com/bekzat/lingotrack/internal/repository/sqlite"
	"github.com/bekzat/lingotrack/internal/services"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("LingoTrack server starting")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	attemptRepo := sqlite.NewAttemptRepository(database)
	catalogRepo := sqlite.NewCatalogRepository(database)
	userRepo := sqlite.NewUserRepository(database)
	progressRepo := sqlite.NewProgressRepository(database)

	srv := &api.Server{
		AttemptService:  services.NewAttemptService(attemptRepo, catalogRepo, userRepo),
		ProgressService: services.NewProgressService(progressRepo, userRepo),
		CatalogService:  services.NewCatalogService(catalogRepo),
		DB:              database,
	}

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info("HTTP server listening on %s", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("HTTP server error: %v", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	sig := <-stop

	log.Info("received signal %v, initiating graceful shutdown", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.ShutdownTimeout)*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Info("LingoTrack server stopped")
}
