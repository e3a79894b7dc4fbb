package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avelar/recallgraph/internal/api"
	"github.com/avelar/recallgraph/internal/config"
	"github.com/avelar/recallgraph/internal/db"
	"github.com/avelar/recallgraph/internal/logger"
	"github.com/avelar/recallgraph/internal/repository/sqlite"
	"github.com/avelar/recallgraph/internal/services"
	"github.com/avelar/recallgraph/internal/worker"
)

func main() {
	cfg := config.Load()

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(true),
	)
	logger.SetDefault(log)

	log.Info("===========================================")
	log.Info("RecallGraph Server Starting")
	log.Info("===========================================")
	if err := cfg.Validate(); err != nil {
		log.Error("%v", err)
		os.Exit(1)
	}
	log.Info("configuration loaded")
	log.Debug("addr=%s", cfg.Addr)
	log.Debug("db_path=%s", cfg.DBPath)
	log.Debug("log_level=%s", cfg.LogLevel)
	log.Debug("session_worker_count=%d", cfg.SessionWorkerCount)
	log.Debug("session_queue_size=%d", cfg.SessionQueueSize)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer func() {
		log.Debug("closing database connection")
		database.Close()
	}()

	sessionPool := worker.NewPool(cfg.SessionWorkerCount, cfg.SessionQueueSize)

	progressRepo := sqlite.NewProgressRepository(database.DB)
	edgeRepo := sqlite.NewEdgeRepository(database.DB)
	itemRepo := sqlite.NewItemRepository(database.DB)
	sessionRepo := sqlite.NewSessionRepository(database.DB)

	srv := &api.Server{
		DB:       database.DB,
		Reviews:  services.NewReviewService(progressRepo, edgeRepo, itemRepo, sessionRepo, sessionPool),
		Statuses: services.NewStatusService(progressRepo, edgeRepo, itemRepo),
		Due:      services.NewDueService(progressRepo, edgeRepo),
		Sessions: services.NewSessionService(sessionRepo),
	}

	ctx, cancel := context.WithCancel(context.Background())
	sessionPool.Start(ctx)

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

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	log.Debug("shutting down HTTP server")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error: %v", err)
	}

	log.Debug("stopping session pool")
	cancel()
	sessionPool.Stop()

	log.Info("===========================================")
	log.Info("RecallGraph Server Stopped")
	log.Info("===========================================")
}
