package employee

import (
	"github.com/Satyam6458/HR-Management/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guard middleware.Guard) {
	employees := r.Group("/employees")
	employees.Use(guard.Authenticate(), guard.ThrottleUser())
	{
		employees.GET("", guard.Authorize("employee", "read"), handler.GetAll)
		employees.GET("/:id", guard.Authorize("employee", "read"), handler.GetById)
		employees.POST("", guard.Authorize("employee", "create"), handler.Create)
		employees.PUT("/:id", guard.Authorize("employee", "update"), handler.Update)
		employees.DELETE("/:id", guard.Authorize("employee", "delete"), handler.Delete)
	}

	r.GET("/profile/:id", handler.GetById)
	r.PUT("/profile/:id", handler.UpdateProfile)
}
