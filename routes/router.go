package routes

import (
	"github.com/launchhub/portal_end/repository"
	"github.com/launchhub/portal_end/utils"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires every route group onto the engine.
func RegisterRoutes(router *gin.Engine) {
	RegisterAuthRoutes(router)
	RegisterUserRoutes(router)

	RegisterProjectRoutes(router)
	RegisterStartupRoutes(router)
	RegisterSubmissionRoutes(router)
	RegisterMediaRoutes(router)
	RegisterModerationRoutes(router)
	RegisterCatalogRoutes(router)

	RegisterInternshipRoutes(router)
	RegisterWebinarRoutes(router)
	RegisterMembershipRoutes(router)
	RegisterDashboardStatsRoutes(router)
	RegisterSystemConfigRoutes(router)

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	router.GET("/api/db-status", func(c *gin.Context) {
		status, err := repository.GetDatabaseStatus()
		if err != nil {
			utils.ErrorResponse(c, "failed to read database status: "+err.Error(), 500)
			return
		}
		c.JSON(200, status)
	})
}
