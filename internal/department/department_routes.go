package department

import (
	"github.com/Satyam6458/HR-Management/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, guard middleware.Guard) {
	departments := r.Group("/departments")
	{
		departments.GET("", h.GetAll)
		departments.GET("/:id", h.GetById)
		departments.POST("", guard.Authenticate(), guard.ThrottleUser(), guard.Authorize("department", "create"), h.Create)
		departments.PUT("/:id", guard.Authenticate(), guard.ThrottleUser(), guard.Authorize("department", "update"), h.Update)
		departments.DELETE("/:id", guard.Authenticate(), guard.ThrottleUser(), guard.Authorize("department", "delete"), h.Delete)
	}
}
