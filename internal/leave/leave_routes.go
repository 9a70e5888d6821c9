package leave

import (
	"github.com/Satyam6458/HR-Management/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guard middleware.Guard) {
	r.POST("/leaveapplication", guard.Throttle(), guard.Idempotent(), handler.Apply)
	r.GET("/leavehistory/:employeeId", handler.History)
	r.PUT("/withdrawLeave/:id", handler.Withdraw)
	r.GET("/employee/:id/leavebalance", handler.GetBalance)

	leaves := r.Group("/leaves")
	leaves.Use(guard.Authenticate(), guard.ThrottleUser())
	{
		leaves.GET("", guard.Authorize("leave", "read"), handler.GetAll)
		leaves.PUT("/:id", guard.Authorize("leave", "approve"), handler.UpdateStatus)
	}
}
