package routes

import (
	"github.com/launchhub/portal_end/controllers"
	"github.com/launchhub/portal_end/middleware"
	"github.com/launchhub/portal_end/models"

	"github.com/gin-gonic/gin"
)

// RegisterSystemConfigRoutes wires the admin configuration surface and the
// operation-log viewer.
func RegisterSystemConfigRoutes(router *gin.Engine) {
	system := router.Group("/api/system")
	system.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.UserRoleADMIN))

	system.GET("/configs", controllers.GetSystemConfigs)
	system.PUT("/configs", controllers.UpsertSystemConfig)
	system.GET("/operation-logs", controllers.GetOperationLogs)
}
