package employee

import (
	"context"
	"strings"
	"time"

	employeeerrors "github.com/Satyam6458/HR-Management/internal/employee/errors"
	"github.com/Satyam6458/HR-Management/internal/ledger"
	"github.com/Satyam6458/HR-Management/internal/shared/apperror"
	"github.com/Satyam6458/HR-Management/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const dateLayout = "2006-01-02"

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
	UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (EmployeeResponse, error)
}

type service struct {
	repo         Repository
	entitlements map[string]int
	hashPassword func(password string) (string, error)
	logger       *zap.Logger
}

// NewService builds the employee service. entitlements seeds the leave
// balance of every new employee.
func NewService(repo Repository, entitlements map[string]int, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		repo:         repo,
		entitlements: entitlements,
		hashPassword: HashPassword,
		logger:       l,
	}
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func (s *service) Create(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("email", req.Email),
	)

	joiningDate, err := parseJoiningDate(req.JoiningDate)
	if err != nil {
		return EmployeeResponse{}, err
	}

	hashed, err := s.hashPassword(req.Password)
	if err != nil {
		s.logger.Error("create employee hash password failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	balance := ledger.Balance{}
	for leaveType, days := range s.entitlements {
		balance[leaveType] = days
	}

	e := &Employee{
		ID:            uuid.New(),
		Name:          strings.TrimSpace(req.Name),
		Position:      req.Position,
		Email:         strings.ToLower(strings.TrimSpace(req.Email)),
		Phone:         req.Phone,
		Department:    req.Department,
		Password:      hashed,
		JoiningDate:   joiningDate,
		Address:       req.Address,
		MaritalStatus: req.MaritalStatus,
		Gender:        req.Gender,
		LeaveBalance:  balance,
	}

	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error("create employee persist failed", zap.String("request_id", rid), zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", e.ID.String()),
	)
	return mapToResponse(*e), nil
}

func (s *service) GetAll(ctx context.Context) ([]EmployeeResponse, error) {
	employees, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("list employees failed", zap.Error(err))
		return nil, err
	}

	resp := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		resp[i] = mapToResponse(e)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*e), nil
}

func (s *service) Update(ctx context.Context, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	return s.update(ctx, id, employeeChanges{
		name:          req.Name,
		position:      req.Position,
		email:         req.Email,
		phone:         req.Phone,
		department:    req.Department,
		password:      req.Password,
		joiningDate:   req.JoiningDate,
		address:       req.Address,
		maritalStatus: req.MaritalStatus,
		gender:        req.Gender,
	})
}

func (s *service) UpdateProfile(ctx context.Context, id string, req UpdateProfileRequest) (EmployeeResponse, error) {
	return s.update(ctx, id, employeeChanges{
		name:          req.Name,
		position:      req.Position,
		email:         req.Email,
		phone:         req.Phone,
		department:    req.Department,
		password:      req.Password,
		joiningDate:   req.JoiningDate,
		address:       req.Address,
		maritalStatus: req.MaritalStatus,
		gender:        req.Gender,
		photo:         req.PhotoPath,
	})
}

type employeeChanges struct {
	name, position, email, phone, department string
	password, joiningDate, address           string
	maritalStatus, gender, photo             string
}

func (s *service) update(ctx context.Context, id string, ch employeeChanges) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	joiningDate, err := parseJoiningDate(ch.joiningDate)
	if err != nil {
		return EmployeeResponse{}, err
	}

	e, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	e.Name = strings.TrimSpace(ch.name)
	e.Position = ch.position
	e.Email = strings.ToLower(strings.TrimSpace(ch.email))
	e.Phone = ch.phone
	e.Department = ch.department
	e.JoiningDate = joiningDate
	e.Address = ch.address
	e.MaritalStatus = ch.maritalStatus
	e.Gender = ch.gender
	if ch.photo != "" {
		e.Photo = ch.photo
	}
	if ch.password != "" {
		hashed, err := s.hashPassword(ch.password)
		if err != nil {
			s.logger.Error("update employee hash password failed", zap.Error(err))
			return EmployeeResponse{}, err
		}
		e.Password = hashed
	}
	e.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, e); err != nil {
		s.logger.Error("update employee persist failed",
			zap.String("request_id", rid),
			zap.String("employee_id", id),
			zap.Error(err),
		)
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.logger.Info("update employee success", zap.String("request_id", rid), zap.String("employee_id", id))
	return mapToResponse(*e), nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if apperror.IsForeignKeyViolation(err) {
			s.logger.Warn("delete employee blocked by leave requests", zap.String("employee_id", id))
			return employeeerrors.ErrEmployeeHasLeaveRequests
		}
		s.logger.Error("delete employee failed", zap.String("employee_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.logger.Info("delete employee success", zap.String("employee_id", id))
	return nil
}

func parseJoiningDate(v string) (*time.Time, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, employeeerrors.ErrInvalidJoiningDate
	}
	return &t, nil
}

// ToResponse converts an entity to its API shape. The password hash is
// never included.
func ToResponse(e Employee) EmployeeResponse {
	return mapToResponse(e)
}

func mapToResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:            e.ID.String(),
		Name:          e.Name,
		Position:      e.Position,
		Email:         e.Email,
		Phone:         e.Phone,
		Department:    e.Department,
		Address:       e.Address,
		MaritalStatus: e.MaritalStatus,
		Gender:        e.Gender,
		Photo:         e.Photo,
		LeaveBalance:  e.LeaveBalance.Clone(),
	}
	if e.JoiningDate != nil {
		resp.JoiningDate = e.JoiningDate.Format(dateLayout)
	}
	return resp
}
