package leave

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/Satyam6458/HR-Management/internal/events"
	leaveerrors "github.com/Satyam6458/HR-Management/internal/leave/errors"
	"github.com/Satyam6458/HR-Management/internal/ledger"
	"github.com/Satyam6458/HR-Management/internal/messaging/kafka"
	"github.com/Satyam6458/HR-Management/internal/shared/apperror"
	"github.com/Satyam6458/HR-Management/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Clock supplies the current time; tests pin it.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now().UTC() }

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveResponse, error)
	History(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	Withdraw(ctx context.Context, id string) ([]LeaveResponse, error)
	GetAll(ctx context.Context) ([]LeaveResponse, error)
	UpdateStatus(ctx context.Context, id string, req UpdateLeaveStatusRequest) (LeaveResponse, error)
	GetBalance(ctx context.Context, employeeID string) (ledger.Balance, error)
}

// Options carries the optional collaborators of the leave service.
type Options struct {
	Outbox kafka.OutboxRepository
	Locker ledger.Locker
	// RowLock takes SELECT ... FOR UPDATE on the employee row before the
	// balance is read and on the leave row before a transition.
	RowLock bool
	Clock   Clock
}

type service struct {
	db      *sql.DB
	repo    Repository
	outbox  kafka.OutboxRepository
	locker  ledger.Locker
	rowLock bool
	clock   Clock
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	return NewServiceWithOptions(db, repo, Options{}, logger...)
}

func NewServiceWithOptions(db *sql.DB, repo Repository, opts Options, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	if opts.Locker == nil {
		opts.Locker = ledger.NoopLocker{}
	}
	if opts.Clock == nil {
		opts.Clock = realClock{}
	}
	return &service{
		db:      db,
		repo:    repo,
		outbox:  opts.Outbox,
		locker:  opts.Locker,
		rowLock: opts.RowLock,
		clock:   opts.Clock,
		logger:  l,
	}
}

func (s *service) Apply(ctx context.Context, req ApplyLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("apply leave requested",
		zap.String("request_id", rid),
		zap.String("employee_id", req.EmployeeID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	employeeID, startDate, endDate, err := validateApplyRequest(req)
	if err != nil {
		s.logger.Warn("apply leave validation failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	unlock := s.locker.Lock(employeeID.String())
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("apply leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// In row lock mode this locks the employee row ahead of the overlap scan.
	emp, err := qtx.FindEmployee(ctx, employeeID.String(), s.rowLock)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
		}
		s.logger.Error("apply leave fetch balance failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	existing, err := qtx.FindOverlapping(ctx, employeeID.String(), startDate, endDate)
	if err != nil {
		s.logger.Error("apply leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if existing != nil {
		s.logger.Warn("apply leave overlap detected",
			zap.String("employee_id", req.EmployeeID),
			zap.String("existing_leave_id", existing.ID.String()),
		)
		return LeaveResponse{}, leaveerrors.Overlap(
			existing.StartDate.Format(dateLayout),
			existing.EndDate.Format(dateLayout),
		)
	}

	days := ledger.WorkingDays(startDate, endDate)
	balance, ok := ledger.Debit(emp.LeaveBalance, req.LeaveType, days)
	if !ok {
		s.logger.Warn("apply leave insufficient balance",
			zap.String("employee_id", req.EmployeeID),
			zap.String("leave_type", req.LeaveType),
			zap.Int("working_days", days),
			zap.Int("available", emp.LeaveBalance[req.LeaveType]),
		)
		return LeaveResponse{}, leaveerrors.ErrInsufficientBalance
	}

	if err := qtx.UpdateBalance(ctx, employeeID.String(), balance); err != nil {
		s.logger.Error("apply leave persist balance failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	l := &Leave{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     req.Reason,
		LeaveType:  req.LeaveType,
		Status:     StatusPending,
		CreatedAt:  s.clock.Now(),
	}
	l.UpdatedAt = l.CreatedAt

	if err := qtx.Create(ctx, l); err != nil {
		if apperror.IsForeignKeyViolation(err) {
			return LeaveResponse{}, leaveerrors.ErrEmployeeNotFound
		}
		s.logger.Error("apply leave persist request failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	if err := s.enqueue(ctx, tx, events.LeaveApplied, *l, emp, balance); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("apply leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("apply leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("working_days", days),
	)

	l.Employee = emp
	return mapToResponse(*l), nil
}

func (s *service) History(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}

	leaves, err := s.repo.FindByEmployee(ctx, employeeID)
	if err != nil {
		s.logger.Error("leave history fetch failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetAll(ctx context.Context) ([]LeaveResponse, error) {
	leaves, err := s.repo.FindAllWithEmployee(ctx)
	if err != nil {
		s.logger.Error("list leaves failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetBalance(ctx context.Context, employeeID string) (ledger.Balance, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}

	emp, err := s.repo.FindEmployee(ctx, employeeID, false)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrEmployeeNotFound
		}
		return nil, err
	}
	return emp.LeaveBalance.Clone(), nil
}

// Withdraw cancels a Pending request whose start date is still in the
// future and returns the employee's refreshed history.
func (s *service) Withdraw(ctx context.Context, id string) ([]LeaveResponse, error) {
	l, err := s.reverse(ctx, id, StatusWithdrawn, func(l *Leave) error {
		if l.Status != StatusPending || !l.StartDate.After(s.clock.Now()) {
			return leaveerrors.ErrNotWithdrawable
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.History(ctx, l.EmployeeID.String())
}

// UpdateStatus applies an admin decision. Approval leaves the balance
// alone; rejection gives the days back.
func (s *service) UpdateStatus(ctx context.Context, id string, req UpdateLeaveStatusRequest) (LeaveResponse, error) {
	if req.Status != StatusApproved && req.Status != StatusRejected {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatus
	}

	guard := func(l *Leave) error {
		if IsTerminal(l.Status) {
			s.logger.Warn("update leave status invalid transition",
				zap.String("leave_id", id),
				zap.String("from_status", l.Status),
				zap.String("to_status", req.Status),
			)
			return leaveerrors.ErrInvalidStatusTransition
		}
		return nil
	}

	if req.Status == StatusRejected {
		l, err := s.reverse(ctx, id, StatusRejected, guard)
		if err != nil {
			return LeaveResponse{}, err
		}
		return mapToResponse(*l), nil
	}
	return s.approve(ctx, id, guard)
}

func (s *service) approve(ctx context.Context, id string, guard func(*Leave) error) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		return LeaveResponse{}, mapLeaveLookupError(err)
	}

	unlock := s.locker.Lock(l.EmployeeID.String())
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err = qtx.FindByID(ctx, id, s.rowLock)
	if err != nil {
		return LeaveResponse{}, mapLeaveLookupError(err)
	}
	if err := guard(l); err != nil {
		return LeaveResponse{}, err
	}

	if err := qtx.UpdateStatus(ctx, id, StatusApproved); err != nil {
		s.logger.Warn("approve leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, mapTransitionError(err)
	}
	l.Status = StatusApproved

	emp, err := qtx.FindEmployee(ctx, l.EmployeeID.String(), false)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return LeaveResponse{}, err
	}
	if err == nil {
		if err := s.enqueue(ctx, tx, events.LeaveApproved, *l, emp, emp.LeaveBalance); err != nil {
			return LeaveResponse{}, err
		}
		l.Employee = emp
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("approve leave success", zap.String("leave_id", id))
	return mapToResponse(*l), nil
}

// reverse moves a request to a terminal status and credits the working days
// back, recomputed from the stored dates.
func (s *service) reverse(ctx context.Context, id, target string, guard func(*Leave) error) (*Leave, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		return nil, mapLeaveLookupError(err)
	}

	unlock := s.locker.Lock(l.EmployeeID.String())
	defer unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("reverse leave begin tx failed", zap.Error(err))
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// Re-read inside the transaction; the first read only chose the lock key.
	l, err = qtx.FindByID(ctx, id, s.rowLock)
	if err != nil {
		return nil, mapLeaveLookupError(err)
	}
	if err := guard(l); err != nil {
		return nil, err
	}

	// The status moves first; a request that left Pending since the read
	// above is never credited.
	if err := qtx.UpdateStatus(ctx, id, target); err != nil {
		s.logger.Warn("reverse leave persist status failed", zap.String("leave_id", id), zap.Error(err))
		return nil, mapTransitionError(err)
	}
	l.Status = target

	emp, err := qtx.FindEmployee(ctx, l.EmployeeID.String(), s.rowLock)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, leaveerrors.ErrEmployeeNotFound
		}
		s.logger.Error("reverse leave fetch balance failed", zap.Error(err))
		return nil, err
	}

	days := ledger.WorkingDays(l.StartDate, l.EndDate)
	balance := ledger.Credit(emp.LeaveBalance, l.LeaveType, days, func(leaveType string, unclamped int) {
		s.logger.Warn("leave balance clamped to zero",
			zap.String("leave_id", id),
			zap.String("employee_id", l.EmployeeID.String()),
			zap.String("leave_type", leaveType),
			zap.Int("unclamped", unclamped),
		)
	})

	if err := qtx.UpdateBalance(ctx, l.EmployeeID.String(), balance); err != nil {
		s.logger.Error("reverse leave persist balance failed", zap.Error(err))
		return nil, err
	}

	eventType := events.LeaveRejected
	if target == StatusWithdrawn {
		eventType = events.LeaveWithdrawn
	}
	if err := s.enqueue(ctx, tx, eventType, *l, emp, balance); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("reverse leave commit failed", zap.Error(err))
		return nil, err
	}

	s.logger.Info("reverse leave success",
		zap.String("leave_id", id),
		zap.String("status", target),
		zap.Int("credited_days", days),
	)

	l.Employee = emp
	return l, nil
}

func (s *service) enqueue(
	ctx context.Context,
	tx *sql.Tx,
	eventType string,
	l Leave,
	emp *EmployeeAccount,
	balance ledger.Balance,
) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.LeaveLifecycleEvent{
		EventType:     eventType,
		RequestID:     rid,
		LeaveID:       l.ID.String(),
		EmployeeID:    l.EmployeeID.String(),
		EmployeeName:  emp.Name,
		EmployeeEmail: emp.Email,
		LeaveType:     l.LeaveType,
		StartDate:     l.StartDate.Format(dateLayout),
		EndDate:       l.EndDate.Format(dateLayout),
		WorkingDays:   ledger.WorkingDays(l.StartDate, l.EndDate),
		Status:        l.Status,
		BalanceAfter:  balance.Clone(),
		OccurredAt:    s.clock.Now(),
	}

	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal leave event failed", zap.String("request_id", rid), zap.Error(err))
		return err
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "leave",
		AggregateID:   l.ID.String(),
		EventType:     eventType,
		Topic:         events.LeaveLifecycleTopic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("leave outbox persist failed",
			zap.String("leave_id", l.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func validateApplyRequest(req ApplyLeaveRequest) (uuid.UUID, time.Time, time.Time, error) {
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidEmployeeID
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, err
	}
	if startDate.After(endDate) {
		return uuid.Nil, time.Time{}, time.Time{}, leaveerrors.ErrInvalidDateRange
	}
	return employeeID, startDate, endDate, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapLeaveLookupError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	return err
}

// mapTransitionError handles a status update on a row read earlier in the
// same transaction, so zero affected rows means the status moved on.
func mapTransitionError(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrInvalidStatusTransition
	}
	return err
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:          l.ID.String(),
		EmployeeID:  l.EmployeeID.String(),
		StartDate:   l.StartDate.Format(dateLayout),
		EndDate:     l.EndDate.Format(dateLayout),
		Reason:      l.Reason,
		LeaveType:   l.LeaveType,
		Status:      l.Status,
		WorkingDays: ledger.WorkingDays(l.StartDate, l.EndDate),
	}
	if l.Employee != nil {
		resp.EmployeeName = l.Employee.Name
	}
	if !l.CreatedAt.IsZero() {
		resp.CreatedAt = l.CreatedAt.Format(time.RFC3339)
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
