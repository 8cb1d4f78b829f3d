package routes

import (
	"github.com/launchhub/portal_end/controllers"
	"github.com/launchhub/portal_end/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterProjectRoutes wires the owner-facing project endpoints.
func RegisterProjectRoutes(router *gin.Engine) {
	projects := router.Group("/api/projects")
	projects.Use(middleware.AuthMiddleware())

	projects.POST("", controllers.CreateProject)
	projects.GET("/mine", controllers.GetMyProjects)
	projects.GET("/:id", controllers.GetProject)
	projects.PUT("/:id", controllers.UpdateProject)
	projects.DELETE("/:id", controllers.DeleteProject)
	projects.POST("/:id/submit", controllers.SubmitProject)
}
