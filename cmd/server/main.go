package main

import (
	"log"

	"currency-converter/internal/app"
	"currency-converter/internal/config"
	"currency-converter/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	// Без ключа API дальше не идем
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	zl, err := logger.New(cfg.Logging)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer zl.Sync()

	application, err := app.New(cfg, zl)
	if err != nil {
		zl.Fatal("Failed to initialize application", zap.Error(err))
	}

	zl.Info("Starting Currency Converter API...",
		zap.String("api", "http://"+cfg.Server.Addr()+"/api/v1/convert"),
		zap.String("ui", "http://"+cfg.Server.Addr()+"/"),
	)

	if err := application.Run(); err != nil {
		zl.Fatal("Failed", zap.Error(err))
	}

	zl.Info("Stopped")
}
