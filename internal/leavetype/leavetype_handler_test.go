package leavetype_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Satyam6458/HR-Management/internal/leavetype"
	leavetypeerrors "github.com/Satyam6458/HR-Management/internal/leavetype/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveTypeService struct {
	CreateFn  func(ctx context.Context, req leavetype.CreateLeaveTypeRequest) (leavetype.LeaveTypeResponse, error)
	GetAllFn  func(ctx context.Context) ([]leavetype.LeaveTypeResponse, error)
	GetByIDFn func(ctx context.Context, id string) (leavetype.LeaveTypeResponse, error)
	UpdateFn  func(ctx context.Context, id string, req leavetype.UpdateLeaveTypeRequest) (leavetype.LeaveTypeResponse, error)
	DeleteFn  func(ctx context.Context, id string) error
}

func (f *fakeLeaveTypeService) Create(ctx context.Context, req leavetype.CreateLeaveTypeRequest) (leavetype.LeaveTypeResponse, error) {
	return f.CreateFn(ctx, req)
}
func (f *fakeLeaveTypeService) GetAll(ctx context.Context) ([]leavetype.LeaveTypeResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeLeaveTypeService) GetByID(ctx context.Context, id string) (leavetype.LeaveTypeResponse, error) {
	return f.GetByIDFn(ctx, id)
}
func (f *fakeLeaveTypeService) Update(ctx context.Context, id string, req leavetype.UpdateLeaveTypeRequest) (leavetype.LeaveTypeResponse, error) {
	return f.UpdateFn(ctx, id, req)
}
func (f *fakeLeaveTypeService) Delete(ctx context.Context, id string) error {
	return f.DeleteFn(ctx, id)
}

func TestLeaveTypeHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveTypeService{
			CreateFn: func(ctx context.Context, req leavetype.CreateLeaveTypeRequest) (leavetype.LeaveTypeResponse, error) {
				return leavetype.LeaveTypeResponse{ID: uuid.NewString(), Name: req.Name}, nil
			},
		}

		h := leavetype.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-types", strings.NewReader(`{"name":"Sick Leave"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		h := leavetype.NewHandler(&fakeLeaveTypeService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-types", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service error", func(t *testing.T) {
		svc := &fakeLeaveTypeService{
			CreateFn: func(ctx context.Context, req leavetype.CreateLeaveTypeRequest) (leavetype.LeaveTypeResponse, error) {
				return leavetype.LeaveTypeResponse{}, errors.New("failed")
			},
		}

		h := leavetype.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leave-types", strings.NewReader(`{"name":"Sick Leave"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "failed")
	})
}

func TestLeaveTypeHandler_GetAll(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeLeaveTypeService{
		GetAllFn: func(ctx context.Context) ([]leavetype.LeaveTypeResponse, error) {
			return []leavetype.LeaveTypeResponse{{Name: "Sick Leave"}, {Name: "Casual Leave"}, {Name: "Marriage Leave"}}, nil
		},
	}
	h := leavetype.NewHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/leave-types?page=2&page_size=2", nil)

	h.GetAll(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"Marriage Leave"`)
	assert.NotContains(t, w.Body.String(), `"Sick Leave"`)
	assert.Contains(t, w.Body.String(), `"totalPages":2`)
}

func TestLeaveTypeHandler_NotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeLeaveTypeService{
		GetByIDFn: func(ctx context.Context, id string) (leavetype.LeaveTypeResponse, error) {
			return leavetype.LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		},
		UpdateFn: func(ctx context.Context, id string, req leavetype.UpdateLeaveTypeRequest) (leavetype.LeaveTypeResponse, error) {
			return leavetype.LeaveTypeResponse{}, leavetypeerrors.ErrLeaveTypeNotFound
		},
		DeleteFn: func(ctx context.Context, id string) error {
			return leavetypeerrors.ErrLeaveTypeNotFound
		},
	}
	h := leavetype.NewHandler(svc)

	r := gin.New()
	r.GET("/leave-types/:id", h.GetById)
	r.PUT("/leave-types/:id", h.Update)
	r.DELETE("/leave-types/:id", h.Delete)

	id := uuid.NewString()
	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/leave-types/"+id, nil),
		httptest.NewRequest(http.MethodPut, "/leave-types/"+id, strings.NewReader(`{"name":"X"}`)),
		httptest.NewRequest(http.MethodDelete, "/leave-types/"+id, nil),
	} {
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code, req.Method)
		assert.Contains(t, w.Body.String(), "NOT_FOUND")
	}
}
