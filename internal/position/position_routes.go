package position

import (
	"github.com/Satyam6458/HR-Management/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, h *Handler, guard middleware.Guard) {
	group := r.Group("/positions")
	{
		group.GET("", h.GetAll)
		group.GET("/:id", h.GetById)
		group.POST("", guard.Authenticate(), guard.ThrottleUser(), guard.Authorize("position", "create"), h.Create)
		group.PUT("/:id", guard.Authenticate(), guard.ThrottleUser(), guard.Authorize("position", "update"), h.Update)
		group.DELETE("/:id", guard.Authenticate(), guard.ThrottleUser(), guard.Authorize("position", "delete"), h.Delete)
	}
}
