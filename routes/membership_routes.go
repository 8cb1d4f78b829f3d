package routes

import (
	"github.com/launchhub/portal_end/controllers"
	"github.com/launchhub/portal_end/middleware"
	"github.com/launchhub/portal_end/models"

	"github.com/gin-gonic/gin"
)

// RegisterMembershipRoutes wires plans, subscriptions and the payment
// provider webhook. The webhook is unauthenticated; the provider calls it.
func RegisterMembershipRoutes(router *gin.Engine) {
	router.POST("/api/payments/notification", controllers.HandlePaymentNotification)

	memberships := router.Group("/api/memberships")
	memberships.Use(middleware.AuthMiddleware())

	memberships.GET("/plans", controllers.ListMembershipPlans)
	memberships.POST("/subscribe", controllers.Subscribe)
	memberships.GET("/mine", controllers.GetMyMembership)

	admin := memberships.Group("")
	admin.Use(middleware.RequireRole(models.UserRoleADMIN))
	admin.POST("/plans", controllers.CreateMembershipPlan)
}
