package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	autherrors "github.com/Satyam6458/HR-Management/internal/auth/errors"
	"github.com/Satyam6458/HR-Management/internal/auth/token"
	"github.com/Satyam6458/HR-Management/internal/employee"
	"github.com/Satyam6458/HR-Management/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Authenticator verifies a set of credentials against one account store.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (LoginResponse, error)
}

// EmployeeFinder is the slice of the employee repository used for
// employee logins.
type EmployeeFinder interface {
	FindByEmail(ctx context.Context, email string) (*employee.Employee, error)
}

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (UserResponse, error)
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	EmployeeLogin(ctx context.Context, req LoginRequest) (LoginResponse, error)
	Me(ctx context.Context, userID string) (UserResponse, error)
}

type service struct {
	repo      Repository
	users     Authenticator
	employees Authenticator
	logger    *zap.Logger
}

type Options struct {
	Issuer               *token.Issuer
	EmployeeTokenEnabled bool
}

func NewService(repo Repository, employees EmployeeFinder, opts Options, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}

	return &service{
		repo:  repo,
		users: &userAuthenticator{repo: repo, issuer: opts.Issuer},
		employees: &employeeAuthenticator{
			finder:      employees,
			issuer:      opts.Issuer,
			issueTokens: opts.EmployeeTokenEnabled,
		},
		logger: l,
	}
}

func (s *service) Signup(ctx context.Context, req SignupRequest) (UserResponse, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return UserResponse{}, err
	}

	user := &User{
		ID:       uuid.New(),
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Password: string(hashed),
		Role:     RoleAdmin,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		if apperror.IsUniqueViolation(err) {
			return UserResponse{}, autherrors.ErrEmailAlreadyRegistered
		}
		s.logger.Error("create user failed", zap.String("email", user.Email), zap.Error(err))
		return UserResponse{}, err
	}

	s.logger.Info("user signed up", zap.String("user_id", user.ID.String()))
	return toUserResponse(user), nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	return s.users.Authenticate(ctx, req.Email, req.Password)
}

func (s *service) EmployeeLogin(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	return s.employees.Authenticate(ctx, req.Email, req.Password)
}

func (s *service) Me(ctx context.Context, userID string) (UserResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, autherrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return toUserResponse(user), nil
}

type userAuthenticator struct {
	repo   Repository
	issuer *token.Issuer
}

func (a *userAuthenticator) Authenticate(ctx context.Context, email, password string) (LoginResponse, error) {
	user, err := a.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResponse{}, autherrors.ErrUserNotFound
		}
		return LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return LoginResponse{}, autherrors.ErrIncorrectPassword
	}

	signed, expiresAt, err := a.issuer.Issue(user.ID.String(), user.Role)
	if err != nil {
		return LoginResponse{}, autherrors.ErrTokenGenerationFailed
	}

	resp := toUserResponse(user)
	return LoginResponse{
		Token:     signed,
		ExpiresAt: expiresAt.UTC().Format(time.RFC3339),
		User:      &resp,
	}, nil
}

// employeeAuthenticator returns the employee record. A token is only issued
// when issueTokens is set.
type employeeAuthenticator struct {
	finder      EmployeeFinder
	issuer      *token.Issuer
	issueTokens bool
}

func (a *employeeAuthenticator) Authenticate(ctx context.Context, email, password string) (LoginResponse, error) {
	emp, err := a.finder.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoginResponse{}, autherrors.ErrInvalidCredentials
		}
		return LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.Password), []byte(password)); err != nil {
		return LoginResponse{}, autherrors.ErrInvalidCredentials
	}

	resp := employee.ToResponse(*emp)
	out := LoginResponse{Employee: &resp}

	if a.issueTokens {
		signed, expiresAt, err := a.issuer.Issue(emp.ID.String(), RoleEmployee)
		if err != nil {
			return LoginResponse{}, autherrors.ErrTokenGenerationFailed
		}
		out.Token = signed
		out.ExpiresAt = expiresAt.UTC().Format(time.RFC3339)
	}
	return out, nil
}

func toUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}
