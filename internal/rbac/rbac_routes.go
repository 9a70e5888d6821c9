package rbac

import (
	"github.com/Satyam6458/HR-Management/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guard middleware.Guard) {
	group := r.Group("/rbac")
	group.Use(guard.Authenticate(), guard.ThrottleUser())
	{
		group.POST("/enforce", handler.Enforce)
		group.GET("/policies", guard.Authorize("role", "read"), handler.Policies)
		group.POST("/policies/reload", guard.Authorize("role", "manage"), handler.Reload)
	}
}
