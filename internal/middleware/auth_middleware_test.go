package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Satyam6458/HR-Management/internal/auth/token"
	"github.com/Satyam6458/HR-Management/internal/domain"
	"github.com/Satyam6458/HR-Management/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type envelope struct {
	Ok    bool `json:"ok"`
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

type enforceFunc func(ctx context.Context, req domain.EnforceRequest) (bool, error)

func (f enforceFunc) Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error) {
	return f(ctx, req)
}

var testNow = time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)

func testIssuer(now time.Time) *token.Issuer {
	return token.NewIssuer("mw-secret", time.Hour).WithClock(func() time.Time { return now })
}

func newAuthRouter(issuer *token.Issuer, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{AuthMiddleware(issuer)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":  c.GetString(ContextUserID),
			"role":     c.GetString(ContextRole),
			"ctx_user": contextutil.GetUserID(c.Request.Context()),
			"ctx_role": contextutil.GetRole(c.Request.Context()),
		})
	})
	r.GET("/protected", handlers...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	issuer := testIssuer(testNow)
	router := newAuthRouter(issuer)

	signed, _, err := issuer.Issue("user-1", "admin")
	assert.NoError(t, err)

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "UNAUTHORIZED", decodeEnvelope(t, w).Error.Code)
	})

	t.Run("bearer token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var body map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "user-1", body["user_id"])
		assert.Equal(t, "admin", body["role"])
		assert.Equal(t, "user-1", body["ctx_user"])
		assert.Equal(t, "admin", body["ctx_role"])
	})

	t.Run("cookie token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.AddCookie(&http.Cookie{Name: accessTokenCookie, Value: signed})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "INVALID_TOKEN", decodeEnvelope(t, w).Error.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		later := newAuthRouter(testIssuer(testNow.Add(2 * time.Hour)))
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signed)
		w := httptest.NewRecorder()
		later.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "TOKEN_EXPIRED", decodeEnvelope(t, w).Error.Code)
	})
}

func TestRBACAuthorize(t *testing.T) {
	issuer := testIssuer(testNow)
	adminToken, _, _ := issuer.Issue("user-1", "admin")

	serve := func(svc RBACService) *httptest.ResponseRecorder {
		router := newAuthRouter(issuer, RBACAuthorize(svc, "leave", "approve"))
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+adminToken)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("allowed", func(t *testing.T) {
		var got domain.EnforceRequest
		w := serve(enforceFunc(func(_ context.Context, req domain.EnforceRequest) (bool, error) {
			got = req
			return true, nil
		}))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, domain.EnforceRequest{UserID: "user-1", Role: "admin", Resource: "leave", Action: "approve"}, got)
	})

	t.Run("denied", func(t *testing.T) {
		w := serve(enforceFunc(func(context.Context, domain.EnforceRequest) (bool, error) {
			return false, nil
		}))

		assert.Equal(t, http.StatusForbidden, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, "FORBIDDEN", env.Error.Code)
		assert.Equal(t, "leave:approve", env.Error.Details["required"])
	})

	t.Run("enforcer error", func(t *testing.T) {
		w := serve(enforceFunc(func(context.Context, domain.EnforceRequest) (bool, error) {
			return false, errors.New("policy store down")
		}))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("no service", func(t *testing.T) {
		w := serve(nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		router := gin.New()
		router.GET("/x", RBACAuthorize(enforceFunc(func(context.Context, domain.EnforceRequest) (bool, error) {
			return true, nil
		}), "leave", "read"), func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
