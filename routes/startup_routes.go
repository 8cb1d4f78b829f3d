package routes

import (
	"github.com/launchhub/portal_end/controllers"
	"github.com/launchhub/portal_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterStartupRoutes wires the owner-facing startup endpoints.
func RegisterStartupRoutes(router *gin.Engine) {
	startups := router.Group("/api/startups")
	startups.Use(middleware.AuthMiddleware())

	startups.POST("", controllers.CreateStartup)
	startups.GET("/mine", controllers.GetMyStartups)
	startups.GET("/:id", controllers.GetStartup)
	startups.PUT("/:id", controllers.UpdateStartup)
	startups.DELETE("/:id", controllers.DeleteStartup)
	startups.POST("/:id/submit", controllers.SubmitStartup)
}
