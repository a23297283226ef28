package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/medscan/medcheck-api/catalog"
	"github.com/medscan/medcheck-api/config"
	"github.com/medscan/medcheck-api/data"
	"github.com/medscan/medcheck-api/handlers"
	"github.com/medscan/medcheck-api/health"
	"github.com/medscan/medcheck-api/logging"
	"github.com/medscan/medcheck-api/scheduler"
	"github.com/medscan/medcheck-api/server"
	"github.com/medscan/medcheck-api/validation"
)

func main() {
	// .env is optional, real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		logging.Debug("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger(cfg.LogDir)

	container := data.NewCatalogContainer()
	container.SetServerStartTime(time.Now())

	refreshTTL := time.Duration(cfg.CatalogRefreshHours) * time.Hour

	parser := catalog.NewCatalogParser(cfg.CatalogDir, cfg.CatalogURL)
	sched := scheduler.NewScheduler(container, parser, refreshTTL)

	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}
	defer sched.Stop()

	validator := validation.NewDataValidator()
	checker := health.NewHealthChecker(container, refreshTTL)
	handler := handlers.NewHTTPHandler(container, validator, checker)

	srv := server.NewServer(cfg, handler)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error", "error", err)
		os.Exit(1)
	}
}
