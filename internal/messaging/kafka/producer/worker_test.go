package producer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Satyam6458/HR-Management/internal/messaging/kafka"
	"github.com/Satyam6458/HR-Management/internal/messaging/kafka/mock"
	"github.com/Satyam6458/HR-Management/internal/messaging/kafka/producer"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fakeWriter struct {
	writeFn  func(msgs ...kafkago.Message) error
	messages []kafkago.Message
}

func (f *fakeWriter) WriteMessages(_ context.Context, msgs ...kafkago.Message) error {
	if f.writeFn != nil {
		if err := f.writeFn(msgs...); err != nil {
			return err
		}
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func TestProcessPendingEvents(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("publishes and marks sent", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{}

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{
			{ID: "evt-1", AggregateType: "leave", AggregateID: "leave-1", EventType: "leave_applied", Topic: "hr.leave.lifecycle.v1", Payload: []byte(`{}`), RequestID: "rid-1"},
		}, nil)
		repo.EXPECT().MarkSent(ctx, "evt-1").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, logger)

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
		assert.Len(t, writer.messages, 1)
		msg := writer.messages[0]
		assert.Equal(t, "hr.leave.lifecycle.v1", msg.Topic)
		assert.Equal(t, []byte("leave-1"), msg.Key)
		assert.Len(t, msg.Headers, 3)
	})

	t.Run("publish failure marks failed and continues", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockOutboxRepository(ctrl)
		writer := &fakeWriter{writeFn: func(msgs ...kafkago.Message) error {
			if string(msgs[0].Key) == "leave-1" {
				return errors.New("broker down")
			}
			return nil
		}}

		repo.EXPECT().ListPending(ctx, 50).Return([]kafka.OutboxEvent{
			{ID: "evt-1", AggregateID: "leave-1", Topic: "t", Payload: []byte(`{}`)},
			{ID: "evt-2", AggregateID: "leave-2", Topic: "t", Payload: []byte(`{}`)},
		}, nil)
		repo.EXPECT().MarkFailed(ctx, "evt-1", "broker down").Return(nil)
		repo.EXPECT().MarkSent(ctx, "evt-2").Return(nil)

		sent, err := producer.ProcessPendingEvents(ctx, repo, writer, logger)

		assert.NoError(t, err)
		assert.Equal(t, 1, sent)
	})

	t.Run("list error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock.NewMockOutboxRepository(ctrl)
		repo.EXPECT().ListPending(ctx, 50).Return(nil, errors.New("db down"))

		_, err := producer.ProcessPendingEvents(ctx, repo, &fakeWriter{}, logger)
		assert.Error(t, err)
	})
}

func TestProcessOutboxEvents_StopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock.NewMockOutboxRepository(ctrl)
	repo.EXPECT().ListPending(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		producer.ProcessOutboxEvents(ctx, repo, &fakeWriter{}, zap.NewNop(), 0)
		close(done)
	}()
	cancel()
	<-done
}
