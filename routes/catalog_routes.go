package routes

import (
	"github.com/launchhub/portal_end/controllers"

	"github.com/gin-gonic/gin"
)

// RegisterCatalogRoutes wires the public discovery endpoints. No auth here.
func RegisterCatalogRoutes(router *gin.Engine) {
	catalog := router.Group("/api/catalog")

	catalog.GET("/projects", controllers.ListPublishedProjects)
	catalog.GET("/projects/:slug", controllers.GetPublishedProjectBySlug)
	catalog.GET("/startups", controllers.ListPublishedStartups)
	catalog.GET("/startups/:id", controllers.GetPublishedStartup)
}
