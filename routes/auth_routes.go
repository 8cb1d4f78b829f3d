package routes

import (
	"github.com/launchhub/portal_end/controllers"
	"github.com/launchhub/portal_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes wires the account endpoints.
func RegisterAuthRoutes(router *gin.Engine) {
	auth := router.Group("/api/auth")

	// public
	auth.POST("/register", controllers.Register)
	auth.POST("/login", controllers.Login)

	// authenticated
	auth.GET("/validate", middleware.AuthMiddleware(), controllers.Validate)
}
