package routes

import (
	"github.com/launchhub/portal_end/controllers"
	"github.com/launchhub/portal_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterModerationRoutes wires the review queue and decision endpoints.
// Everything here requires a moderator or admin.
func RegisterModerationRoutes(router *gin.Engine) {
	moderation := router.Group("/api/moderation")
	moderation.Use(middleware.AuthMiddleware(), middleware.RequireModerator())

	moderation.GET("/queue", controllers.GetModerationQueue)
	moderation.POST("/:kind/:id/:action", controllers.DecideSubmission)
	moderation.GET("/:kind/:id/history", controllers.GetModerationHistory)
}
