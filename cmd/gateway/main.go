package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pavelc4/aether-gateway/config"
	"github.com/pavelc4/aether-gateway/internal/app"
	"github.com/pavelc4/aether-gateway/pkg/logger"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	logger.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(cfg)
	if err != nil {
		logger.Error("Failed to initialize app", "error", err)
		os.Exit(1)
	}

	if err := a.Start(ctx); err != nil {
		logger.Error("Server stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("Shutdown complete")
}
