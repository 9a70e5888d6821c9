package rbac

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Satyam6458/HR-Management/internal/domain"
	"github.com/Satyam6458/HR-Management/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type mockService struct {
	lastReq domain.EnforceRequest
	loadErr error
}

func (m *mockService) LoadPolicy(ctx context.Context) error {
	return m.loadErr
}

func (m *mockService) Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error) {
	m.lastReq = req
	return req.Role == "admin", nil
}

func (m *mockService) Policies() []domain.PolicyResponse {
	return []domain.PolicyResponse{{Role: "admin", Resource: "*", Action: "*"}}
}

func newRBACRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewHandler(svc)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		ctx := contextutil.WithRole(c.Request.Context(), "admin")
		ctx = contextutil.WithUserID(ctx, "user-1")
		c.Request = c.Request.WithContext(ctx)
	})
	router.POST("/rbac/enforce", handler.Enforce)
	router.POST("/rbac/policies/reload", handler.Reload)
	return router
}

func TestHandler_Enforce(t *testing.T) {
	svc := &mockService{}
	router := newRBACRouter(svc)

	body, _ := json.Marshal(domain.EnforceRequest{Resource: " employee ", Action: "read"})
	req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Ok   bool                   `json:"ok"`
		Data domain.EnforceResponse `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Data.Allowed)
	assert.Equal(t, "admin", svc.lastReq.Role)
	assert.Equal(t, "user-1", svc.lastReq.UserID)
	assert.Equal(t, "employee", svc.lastReq.Resource)
}

func TestHandler_EnforceValidation(t *testing.T) {
	router := newRBACRouter(&mockService{})

	req := httptest.NewRequest(http.MethodPost, "/rbac/enforce", bytes.NewBufferString(`{"resource":"employee"}`))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHandler_ReloadFailure(t *testing.T) {
	router := newRBACRouter(&mockService{loadErr: errors.New("db down")})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/rbac/policies/reload", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
