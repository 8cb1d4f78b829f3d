package routes

import (
	"github.com/launchhub/portal_end/controllers"
	"github.com/launchhub/portal_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterDashboardStatsRoutes wires the admin dashboard numbers.
func RegisterDashboardStatsRoutes(router *gin.Engine) {
	stats := router.Group("/api/dashboard")
	stats.Use(middleware.AuthMiddleware(), middleware.RequireModerator())

	stats.GET("/stats", controllers.GetDashboardStats)
}
