package auth

import (
	"github.com/Satyam6458/HR-Management/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler, guard middleware.Guard) {
	r.POST("/signup", guard.Throttle(), handler.Signup)
	r.POST("/login", guard.Throttle(), handler.Login)
	r.POST("/employeelogin", guard.Throttle(), handler.EmployeeLogin)
	r.POST("/logout", handler.Logout)
	r.GET("/me", guard.Authenticate(), handler.Me)
}
