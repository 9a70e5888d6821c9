package consumer

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Satyam6458/HR-Management/internal/events"
	"github.com/Satyam6458/HR-Management/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// MessageReader is the subset of *kafkago.Reader the consumer needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// Backoff spaces retries after a failed fetch or notification. Attempt n
// waits Initial*2^n, capped at Max.
type Backoff struct {
	Initial time.Duration
	Max     time.Duration
}

var DefaultBackoff = Backoff{Initial: 500 * time.Millisecond, Max: 30 * time.Second}

// Delay returns the wait before retry number attempt, counted from zero.
func (b Backoff) Delay(attempt int) time.Duration {
	d := b.Initial
	for i := 0; i < attempt && d < b.Max; i++ {
		d *= 2
	}
	if d > b.Max {
		d = b.Max
	}
	return d
}

// ConsumeLeaveLifecycle notifies employees about their leave requests until
// ctx is cancelled. Undecodable messages are committed and dropped. A failed
// notification is retried in place, so nothing after it is fetched or
// committed until it goes through; on shutdown it stays uncommitted and is
// redelivered.
func ConsumeLeaveLifecycle(
	ctx context.Context,
	reader MessageReader,
	notifier notification.Notifier,
	logger *zap.Logger,
	backoff Backoff,
) {
	log := logger.Named("kafka.consumer.leave_lifecycle")
	log.Info("leave lifecycle consumer started")

	failures := 0
	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			log.Error("fetch leave lifecycle message failed",
				zap.Int("attempt", failures+1),
				zap.Error(err),
			)
			if !sleep(ctx, backoff.Delay(failures)) {
				log.Info("leave lifecycle consumer stopped")
				return
			}
			failures++
			continue
		}
		failures = 0

		handleMessage(ctx, reader, notifier, log, backoff, msg)
	}
}

func handleMessage(
	ctx context.Context,
	reader MessageReader,
	notifier notification.Notifier,
	log *zap.Logger,
	backoff Backoff,
	msg kafkago.Message,
) {
	var event events.LeaveLifecycleEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode leave lifecycle event failed",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		_ = reader.CommitMessages(ctx, msg)
		return
	}

	for attempt := 0; ; attempt++ {
		err := notifier.NotifyLeave(ctx, event)
		if err == nil {
			break
		}
		log.Error("notify leave event failed",
			zap.String("leave_id", event.LeaveID),
			zap.String("event_type", event.EventType),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)
		if !sleep(ctx, backoff.Delay(attempt)) {
			log.Warn("leave lifecycle event left uncommitted",
				zap.String("leave_id", event.LeaveID),
				zap.Int64("offset", msg.Offset),
			)
			return
		}
	}

	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit leave lifecycle message failed", zap.Error(err))
		return
	}

	log.Info("leave lifecycle event handled",
		zap.String("leave_id", event.LeaveID),
		zap.String("event_type", event.EventType),
		zap.String("request_id", event.RequestID),
	)
}

// sleep waits for d and reports false when ctx ends first.
func sleep(ctx context.Context, d time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
