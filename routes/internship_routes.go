package routes

import (
	"github.com/launchhub/portal_end/controllers"
	"github.com/launchhub/portal_end/middleware"
	"github.com/launchhub/portal_end/models"

	"github.com/gin-gonic/gin"
)

// RegisterInternshipRoutes wires listings and applications.
func RegisterInternshipRoutes(router *gin.Engine) {
	internships := router.Group("/api/internships")
	internships.Use(middleware.AuthMiddleware())

	internships.GET("", controllers.ListInternships)
	internships.POST("/:id/apply", controllers.ApplyToInternship)
	internships.GET("/applications/mine", controllers.GetMyApplications)

	admin := internships.Group("")
	admin.Use(middleware.RequireRole(models.UserRoleADMIN))
	admin.POST("", controllers.CreateInternship)
	admin.DELETE("/:id", controllers.DeactivateInternship)
	admin.GET("/:id/applications", controllers.ListApplications)
	admin.PUT("/applications/:applicationId/review", controllers.ReviewApplication)
}
