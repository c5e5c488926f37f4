package main

import (
	"context"
	"log"

	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/app"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/config"
	"github.com/arslanyasin/bnw-orders-backend-sub001/internal/platform/logger"
)

func main() {
	cfg := config.MustLoad()

	appLogger, err := logger.NewZapLogger(logger.ZapLoggerConfig{
		Level:      cfg.Logger.Level,
		Encoding:   cfg.Logger.Encoding,
		TimeFormat: cfg.Logger.TimeFormat,
	})
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	a, err := app.New(context.Background(), cfg, appLogger)
	if err != nil {
		appLogger.Fatalf("failed to initialize application: %v", err)
	}

	if err := a.Run(); err != nil {
		appLogger.Fatalf("application stopped with error: %v", err)
	}
}
