package main

import (
	"log"

	"github.com/Satyam6458/HR-Management/internal/app"
	"github.com/Satyam6458/HR-Management/internal/bootstrap"
	"github.com/Satyam6458/HR-Management/internal/config"
	"github.com/Satyam6458/HR-Management/internal/shared/apperror"

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

	apperror.Init()
	r := app.NewRouter(cfg, logger)

	// build dependency + routes
	cleanup, err := app.BuildApp(cfg, r, logger)
	if err != nil {
		logger.Fatal("build app failed", zap.Error(err))
	}
	defer cleanup()

	bootstrap.StartHTTPServer(r, cfg.Server, bootstrap.NewZapAuditLogger(logger))
}
