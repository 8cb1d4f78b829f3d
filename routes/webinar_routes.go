package routes

import (
	"github.com/launchhub/portal_end/controllers"
	"github.com/launchhub/portal_end/middleware"
	"github.com/launchhub/portal_end/models"

	"github.com/gin-gonic/gin"
)

// RegisterWebinarRoutes wires webinar scheduling and the two-step signup.
func RegisterWebinarRoutes(router *gin.Engine) {
	webinars := router.Group("/api/webinars")
	webinars.Use(middleware.AuthMiddleware())

	webinars.GET("", controllers.ListWebinars)
	webinars.POST("/:id/register", controllers.RequestWebinarRegistration)
	webinars.POST("/:id/confirm", controllers.ConfirmWebinarRegistration)
	webinars.GET("/registrations/mine", controllers.GetMyWebinarRegistrations)

	admin := webinars.Group("")
	admin.Use(middleware.RequireRole(models.UserRoleADMIN))
	admin.POST("", controllers.CreateWebinar)
	admin.DELETE("/:id", controllers.CancelWebinar)
}
