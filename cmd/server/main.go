package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/app"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/config"
	"github.com/tonyw9168-dot/portfolio-manager-tong-sub000/internal/logger"
)

// @title Portfolio Tracker API
// @version 1.0
// @description Family portfolio tracker: workbook import/export, valuation and analytics.
// @BasePath /api
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Options{Env: cfg.LogEnv, Level: cfg.LogLevel})
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to create logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	a, err := app.New(cfg, log)
	if err != nil {
		log.Fatal("Failed to initialise application", zap.Error(err))
	}
	defer a.Close()
	log.Info("Database connection established", zap.String("driver", cfg.Database.Driver))

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           a.Handler(log),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("Server starting", zap.String("port", cfg.ServerPort))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Graceful shutdown failed", zap.Error(err))
	}
	log.Info("Server stopped")
}
