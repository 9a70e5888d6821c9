package main

import (
	"log"

	"github.com/Satyam6458/HR-Management/internal/app"
	"github.com/Satyam6458/HR-Management/internal/bootstrap"
	"github.com/Satyam6458/HR-Management/internal/config"

	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger, err := bootstrap.NewLogger(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := app.RunWorker(cfg, logger); err != nil {
		logger.Fatal("run worker failed", zap.Error(err))
	}
}
