package app

import (
	"context"

	"github.com/Satyam6458/HR-Management/internal/bootstrap"
	"github.com/Satyam6458/HR-Management/internal/config"
	"github.com/Satyam6458/HR-Management/internal/messaging/kafka"
	"github.com/Satyam6458/HR-Management/internal/messaging/kafka/producer"
	"github.com/Satyam6458/HR-Management/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays outbox rows to Kafka until SIGINT/SIGTERM.
func RunWorker(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(cfg.Database)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.Kafka.Brokers, cfg.Kafka.MaxRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(gormDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		producer.ProcessOutboxEvents(ctx, outboxRepo, kafkaWriter, logger, cfg.Kafka.PollInterval)
	}()

	bootstrap.WaitForSignal(ctx, cancel, "worker")
	log.Info("waiting for worker to drain")
	<-done
	return nil
}
