package app

import (
	"context"
	"fmt"

	"github.com/Satyam6458/HR-Management/internal/bootstrap"
	"github.com/Satyam6458/HR-Management/internal/config"
	"github.com/Satyam6458/HR-Management/internal/messaging/kafka/consumer"
	"github.com/Satyam6458/HR-Management/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func newLeaveReader(cfg config.KafkaConfig) (*kafkago.Reader, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("KAFKA_BROKER is required")
	}
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          cfg.LeaveTopic,
		GroupID:        cfg.GroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	}), nil
}

// RunConsumer notifies employees about leave lifecycle events until
// SIGINT/SIGTERM.
func RunConsumer(cfg *config.Config, logger *zap.Logger) error {
	log := logger.Named("app.consumer")

	reader, err := newLeaveReader(cfg.Kafka)
	if err != nil {
		return err
	}
	defer reader.Close()

	notifier := notification.New(cfg.Mail, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeLeaveLifecycle(ctx, reader, notifier, logger, consumer.DefaultBackoff)
	}()

	bootstrap.WaitForSignal(ctx, cancel, "consumer")
	log.Info("waiting for consumer to drain")
	<-done
	return nil
}
