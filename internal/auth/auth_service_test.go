package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Satyam6458/HR-Management/internal/auth"
	autherrors "github.com/Satyam6458/HR-Management/internal/auth/errors"
	authMock "github.com/Satyam6458/HR-Management/internal/auth/mock"
	"github.com/Satyam6458/HR-Management/internal/auth/token"
	"github.com/Satyam6458/HR-Management/internal/employee"
	employeeMock "github.com/Satyam6458/HR-Management/internal/employee/mock"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func hashed(t *testing.T, pw string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(pw), bcrypt.MinCost)
	assert.NoError(t, err)
	return string(h)
}

func newIssuer() *token.Issuer {
	return token.NewIssuer("test-secret", time.Hour)
}

func TestService_Signup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := authMock.NewMockRepository(ctrl)
	svc := auth.NewService(mockRepo, employeeMock.NewMockRepository(ctrl), auth.Options{Issuer: newIssuer()})
	ctx := context.Background()

	t.Run("success hashes password", func(t *testing.T) {
		req := auth.SignupRequest{Name: " Admin ", Email: "Admin@Example.com", Password: "secret1"}

		mockRepo.EXPECT().
			Create(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, u *auth.User) error {
				assert.Equal(t, "Admin", u.Name)
				assert.Equal(t, "admin@example.com", u.Email)
				assert.Equal(t, auth.RoleAdmin, u.Role)
				assert.NotEqual(t, "secret1", u.Password)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secret1")))
				return nil
			})

		res, err := svc.Signup(ctx, req)
		assert.NoError(t, err)
		assert.Equal(t, "admin@example.com", res.Email)
		assert.NotEmpty(t, res.ID)
	})

	t.Run("duplicate email", func(t *testing.T) {
		mockRepo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(&pgconn.PgError{Code: "23505"})

		_, err := svc.Signup(ctx, auth.SignupRequest{Name: "A", Email: "a@example.com", Password: "secret1"})
		assert.ErrorIs(t, err, autherrors.ErrEmailAlreadyRegistered)
	})

	t.Run("db failure", func(t *testing.T) {
		mockRepo.EXPECT().
			Create(ctx, gomock.Any()).
			Return(errors.New("connection reset"))

		_, err := svc.Signup(ctx, auth.SignupRequest{Name: "A", Email: "a@example.com", Password: "secret1"})
		assert.EqualError(t, err, "connection reset")
	})
}

func TestService_Login(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := authMock.NewMockRepository(ctrl)
	issuer := newIssuer()
	svc := auth.NewService(mockRepo, employeeMock.NewMockRepository(ctrl), auth.Options{Issuer: issuer})
	ctx := context.Background()

	user := &auth.User{
		ID:       uuid.New(),
		Name:     "Admin",
		Email:    "admin@example.com",
		Password: hashed(t, "password123"),
		Role:     auth.RoleAdmin,
	}

	t.Run("success issues token", func(t *testing.T) {
		mockRepo.EXPECT().GetByEmail(ctx, user.Email).Return(user, nil)

		res, err := svc.Login(ctx, auth.LoginRequest{Email: user.Email, Password: "password123"})
		assert.NoError(t, err)
		assert.NotEmpty(t, res.Token)
		assert.NotEmpty(t, res.ExpiresAt)
		assert.Equal(t, user.Email, res.User.Email)
		assert.Nil(t, res.Employee)

		claims, err := issuer.Parse(res.Token)
		assert.NoError(t, err)
		assert.Equal(t, user.ID.String(), claims.UserID)
		assert.Equal(t, auth.RoleAdmin, claims.Role)
	})

	t.Run("email is matched case-insensitively", func(t *testing.T) {
		mockRepo.EXPECT().GetByEmail(ctx, "admin@example.com").Return(user, nil)

		res, err := svc.Login(ctx, auth.LoginRequest{Email: " Admin@Example.COM ", Password: "password123"})
		assert.NoError(t, err)
		assert.NotEmpty(t, res.Token)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockRepo.EXPECT().GetByEmail(ctx, "ghost@example.com").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "ghost@example.com", Password: "x"})
		assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo.EXPECT().GetByEmail(ctx, user.Email).Return(user, nil)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: user.Email, Password: "wrongpass"})
		assert.ErrorIs(t, err, autherrors.ErrIncorrectPassword)
	})
}

func TestService_EmployeeLogin(t *testing.T) {
	ctx := context.Background()
	emp := &employee.Employee{
		ID:       uuid.New(),
		Name:     "Asha",
		Email:    "asha@example.com",
		Password: hashed(t, "emp-pass"),
	}

	t.Run("returns employee without token", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		finder := employeeMock.NewMockRepository(ctrl)
		svc := auth.NewService(authMock.NewMockRepository(ctrl), finder, auth.Options{Issuer: newIssuer()})

		finder.EXPECT().FindByEmail(ctx, emp.Email).Return(emp, nil)

		res, err := svc.EmployeeLogin(ctx, auth.LoginRequest{Email: emp.Email, Password: "emp-pass"})
		assert.NoError(t, err)
		assert.Empty(t, res.Token)
		assert.Equal(t, emp.ID.String(), res.Employee.ID)
		assert.Equal(t, "Asha", res.Employee.Name)
	})

	t.Run("issues token when enabled", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		finder := authMock.NewMockEmployeeFinder(ctrl)
		issuer := newIssuer()
		svc := auth.NewService(authMock.NewMockRepository(ctrl), finder, auth.Options{
			Issuer:               issuer,
			EmployeeTokenEnabled: true,
		})

		finder.EXPECT().FindByEmail(ctx, emp.Email).Return(emp, nil)

		res, err := svc.EmployeeLogin(ctx, auth.LoginRequest{Email: emp.Email, Password: "emp-pass"})
		assert.NoError(t, err)
		assert.NotEmpty(t, res.Token)

		claims, err := issuer.Parse(res.Token)
		assert.NoError(t, err)
		assert.Equal(t, emp.ID.String(), claims.UserID)
		assert.Equal(t, auth.RoleEmployee, claims.Role)
	})

	t.Run("email is matched case-insensitively", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		finder := authMock.NewMockEmployeeFinder(ctrl)
		svc := auth.NewService(authMock.NewMockRepository(ctrl), finder, auth.Options{Issuer: newIssuer()})

		finder.EXPECT().FindByEmail(ctx, "asha@example.com").Return(emp, nil)

		res, err := svc.EmployeeLogin(ctx, auth.LoginRequest{Email: "ASHA@example.com", Password: "emp-pass"})
		assert.NoError(t, err)
		assert.Equal(t, emp.ID.String(), res.Employee.ID)
	})

	t.Run("mismatch is unauthorized", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		finder := authMock.NewMockEmployeeFinder(ctrl)
		svc := auth.NewService(authMock.NewMockRepository(ctrl), finder, auth.Options{Issuer: newIssuer()})

		finder.EXPECT().FindByEmail(ctx, emp.Email).Return(emp, nil)
		finder.EXPECT().FindByEmail(ctx, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.EmployeeLogin(ctx, auth.LoginRequest{Email: emp.Email, Password: "bad"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)

		_, err = svc.EmployeeLogin(ctx, auth.LoginRequest{Email: "nobody@example.com", Password: "bad"})
		assert.ErrorIs(t, err, autherrors.ErrInvalidCredentials)
	})
}

func TestService_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := authMock.NewMockRepository(ctrl)
	svc := auth.NewService(mockRepo, authMock.NewMockEmployeeFinder(ctrl), auth.Options{Issuer: newIssuer()})
	ctx := context.Background()
	id := uuid.New()

	mockRepo.EXPECT().GetByID(ctx, id.String()).Return(&auth.User{ID: id, Email: "a@example.com", Role: auth.RoleAdmin}, nil)
	mockRepo.EXPECT().GetByID(ctx, "missing").Return(nil, gorm.ErrRecordNotFound)

	res, err := svc.Me(ctx, id.String())
	assert.NoError(t, err)
	assert.Equal(t, "a@example.com", res.Email)

	_, err = svc.Me(ctx, "missing")
	assert.ErrorIs(t, err, autherrors.ErrUserNotFound)
}
