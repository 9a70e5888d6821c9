package middleware

import (
	"context"
	"net/http"

	autherrors "github.com/Satyam6458/HR-Management/internal/auth/errors"
	"github.com/Satyam6458/HR-Management/internal/domain"
	"github.com/Satyam6458/HR-Management/internal/shared/contextutil"
	"github.com/Satyam6458/HR-Management/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RBACService is anything that can answer a domain.EnforceRequest.
type RBACService interface {
	Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error)
}

// RBACAuthorize must run after AuthMiddleware.
func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := c.Get(ContextUserID)
		if !ok {
			abortWith(c, autherrors.ErrTokenNotFound)
			return
		}

		if service == nil {
			abortWith(c, autherrors.ErrForbidden)
			return
		}

		ctx := c.Request.Context()
		req := domain.EnforceRequest{
			UserID:   userID.(string),
			Role:     c.GetString(ContextRole),
			Resource: resource,
			Action:   action,
		}

		allowed, err := service.Enforce(ctx, req)
		if err != nil {
			contextutil.GetLogger(ctx, zap.L()).Error("rbac enforce failed",
				zap.String("resource", resource),
				zap.String("action", action),
				zap.Error(err),
			)
			response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error", nil)
			return
		}

		if !allowed {
			response.Abort(c, autherrors.ErrForbidden.HTTPStatus, autherrors.ErrForbidden.Code, autherrors.ErrForbidden.Message,
				gin.H{"required": resource + ":" + action})
			return
		}
		c.Next()
	}
}
