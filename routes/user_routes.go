package routes

import (
	"github.com/launchhub/portal_end/controllers"
	"github.com/launchhub/portal_end/middleware"
	"github.com/launchhub/portal_end/models"

	"github.com/gin-gonic/gin"
)

// RegisterUserRoutes wires profile and user-administration endpoints.
func RegisterUserRoutes(router *gin.Engine) {
	users := router.Group("/api/users")
	users.Use(middleware.AuthMiddleware())

	users.GET("/me", controllers.GetProfile)
	users.PUT("/me", controllers.UpdateProfile)

	admin := users.Group("")
	admin.Use(middleware.RequireRole(models.UserRoleADMIN))
	admin.GET("", controllers.GetAllUsers)
	admin.PUT("/:id/role", controllers.UpdateUserRole)
	admin.DELETE("/:id", controllers.DeleteUser)
}
