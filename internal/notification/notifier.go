package notification

import (
	"context"
	"fmt"
	"strings"

	"github.com/Satyam6458/HR-Management/internal/config"
	"github.com/Satyam6458/HR-Management/internal/events"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

//go:generate mockgen -source=notifier.go -destination=mock/notifier_mock.go -package=mock
type Notifier interface {
	NotifyLeave(ctx context.Context, event events.LeaveLifecycleEvent) error
}

// Sender is satisfied by *gomail.Dialer.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

type mailNotifier struct {
	sender Sender
	from   string
	logger *zap.Logger
}

func NewMailNotifier(sender Sender, from string, logger ...*zap.Logger) Notifier {
	l := zap.L().Named("notification.mail")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.mail")
	}
	return &mailNotifier{sender: sender, from: from, logger: l}
}

// New returns an SMTP notifier when a host is configured and a logging one
// otherwise.
func New(cfg config.MailConfig, logger *zap.Logger) Notifier {
	if cfg.Host == "" {
		return NewLogNotifier(logger)
	}
	dialer := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	return NewMailNotifier(dialer, cfg.From, logger)
}

func (n *mailNotifier) NotifyLeave(ctx context.Context, event events.LeaveLifecycleEvent) error {
	if event.EmployeeEmail == "" {
		n.logger.Warn("leave notification skipped, employee has no email",
			zap.String("leave_id", event.LeaveID),
			zap.String("employee_id", event.EmployeeID),
		)
		return nil
	}

	subject, body := BuildMessage(event)

	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", event.EmployeeEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := n.sender.DialAndSend(m); err != nil {
		return fmt.Errorf("send leave notification: %w", err)
	}

	n.logger.Info("leave notification sent",
		zap.String("leave_id", event.LeaveID),
		zap.String("event_type", event.EventType),
	)
	return nil
}

type logNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) Notifier {
	if logger == nil {
		logger = zap.L()
	}
	return &logNotifier{logger: logger.Named("notification.log")}
}

func (n *logNotifier) NotifyLeave(ctx context.Context, event events.LeaveLifecycleEvent) error {
	subject, _ := BuildMessage(event)
	n.logger.Info("leave notification",
		zap.String("to", event.EmployeeEmail),
		zap.String("subject", subject),
		zap.String("leave_id", event.LeaveID),
	)
	return nil
}

// BuildMessage renders the subject and plain-text body for an event.
func BuildMessage(event events.LeaveLifecycleEvent) (string, string) {
	var subject string
	switch event.EventType {
	case events.LeaveApplied:
		subject = "Leave application received"
	case events.LeaveApproved:
		subject = "Leave approved"
	case events.LeaveRejected:
		subject = "Leave rejected"
	case events.LeaveWithdrawn:
		subject = "Leave withdrawn"
	default:
		subject = "Leave update"
	}

	var b strings.Builder
	name := event.EmployeeName
	if name == "" {
		name = "there"
	}
	fmt.Fprintf(&b, "Hi %s,\n\n", name)
	fmt.Fprintf(&b, "Your %s request from %s to %s (%d working days) is now %s.\n",
		event.LeaveType, event.StartDate, event.EndDate, event.WorkingDays, event.Status)

	if len(event.BalanceAfter) > 0 {
		if remaining, ok := event.BalanceAfter[event.LeaveType]; ok {
			fmt.Fprintf(&b, "Current %s balance: %d\n", event.LeaveType, remaining)
		}
	}
	return subject, b.String()
}
