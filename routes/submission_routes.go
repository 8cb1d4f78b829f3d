package routes

import (
	"github.com/launchhub/portal_end/controllers"
	"github.com/launchhub/portal_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterSubmissionRoutes wires the kind-independent submission endpoints:
// eligible actions and media management.
func RegisterSubmissionRoutes(router *gin.Engine) {
	submissions := router.Group("/api/submissions")
	submissions.Use(middleware.AuthMiddleware())

	submissions.GET("/:kind/:id/actions", controllers.GetEligibleActions)

	submissions.POST("/:kind/:id/media", controllers.AttachMedia)
	submissions.DELETE("/:kind/:id/media/:mediaId", controllers.DetachMedia)
	submissions.PUT("/:kind/:id/cover/:mediaId", controllers.SetCover)
}

// RegisterMediaRoutes wires media registration.
func RegisterMediaRoutes(router *gin.Engine) {
	media := router.Group("/api/media")
	media.Use(middleware.AuthMiddleware())

	media.POST("", controllers.RegisterMedia)
}
