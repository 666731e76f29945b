package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artfolio_backend/internal/handlers"
)

// RegisterRoutes registers all HTTP routes under /api/v1.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.Auth.RegisterRoutes(api)
		appHandlers.Item.RegisterRoutes(api)
		appHandlers.Permission.RegisterRoutes(api)
		appHandlers.Quota.RegisterRoutes(api)
		appHandlers.Favorite.RegisterRoutes(api)
		appHandlers.Category.RegisterRoutes(api)
		appHandlers.ShareLink.RegisterRoutes(api)
		appHandlers.Analytics.RegisterRoutes(api)
	}
}
