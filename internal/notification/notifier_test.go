package notification_test

import (
	"context"
	"errors"
	"testing"

	"github.com/Satyam6458/HR-Management/internal/config"
	"github.com/Satyam6458/HR-Management/internal/events"
	"github.com/Satyam6458/HR-Management/internal/notification"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

type fakeSender struct {
	err  error
	sent []*gomail.Message
}

func (f *fakeSender) DialAndSend(m ...*gomail.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, m...)
	return nil
}

func rejectedEvent() events.LeaveLifecycleEvent {
	return events.LeaveLifecycleEvent{
		EventType:     events.LeaveRejected,
		LeaveID:       "leave-1",
		EmployeeID:    "emp-1",
		EmployeeName:  "Asha",
		EmployeeEmail: "asha@example.com",
		LeaveType:     "Casual Leave",
		StartDate:     "2024-06-03",
		EndDate:       "2024-06-04",
		WorkingDays:   2,
		Status:        "rejected",
		BalanceAfter:  map[string]int{"Casual Leave": 3},
	}
}

func TestBuildMessage(t *testing.T) {
	subject, body := notification.BuildMessage(rejectedEvent())

	assert.Equal(t, "Leave rejected", subject)
	assert.Contains(t, body, "Hi Asha")
	assert.Contains(t, body, "2024-06-03 to 2024-06-04 (2 working days) is now rejected")
	assert.Contains(t, body, "Current Casual Leave balance: 3")
}

func TestMailNotifier(t *testing.T) {
	ctx := context.Background()

	t.Run("sends to employee", func(t *testing.T) {
		sender := &fakeSender{}
		n := notification.NewMailNotifier(sender, "hr@example.com", zap.NewNop())

		assert.NoError(t, n.NotifyLeave(ctx, rejectedEvent()))
		assert.Len(t, sender.sent, 1)
		assert.Equal(t, []string{"asha@example.com"}, sender.sent[0].GetHeader("To"))
		assert.Equal(t, []string{"Leave rejected"}, sender.sent[0].GetHeader("Subject"))
	})

	t.Run("no email is skipped", func(t *testing.T) {
		sender := &fakeSender{}
		ev := rejectedEvent()
		ev.EmployeeEmail = ""

		n := notification.NewMailNotifier(sender, "hr@example.com", zap.NewNop())
		assert.NoError(t, n.NotifyLeave(ctx, ev))
		assert.Empty(t, sender.sent)
	})

	t.Run("smtp failure is returned", func(t *testing.T) {
		n := notification.NewMailNotifier(&fakeSender{err: errors.New("smtp down")}, "hr@example.com", zap.NewNop())
		assert.Error(t, n.NotifyLeave(ctx, rejectedEvent()))
	})
}

func TestNew_WithoutHostLogs(t *testing.T) {
	n := notification.New(config.MailConfig{}, zap.NewNop())
	assert.NoError(t, n.NotifyLeave(context.Background(), rejectedEvent()))
}
