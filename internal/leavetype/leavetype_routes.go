package leavetype

import (
	"github.com/Satyam6458/HR-Management/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, guard middleware.Guard) {
	// Legacy list path used by the employee portal.
	r.GET("/leavetypes", h.GetAll)

	group := r.Group("/leave-types")
	{
		group.GET("", h.GetAll)
		group.GET("/:id", h.GetById)
		group.POST("", guard.Authenticate(), guard.ThrottleUser(), guard.Authorize("leavetype", "create"), h.Create)
		group.PUT("/:id", guard.Authenticate(), guard.ThrottleUser(), guard.Authorize("leavetype", "update"), h.Update)
		group.DELETE("/:id", guard.Authenticate(), guard.ThrottleUser(), guard.Authorize("leavetype", "delete"), h.Delete)
	}
}
