package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artfolio_backend/internal/middleware"
	"artfolio_backend/internal/services"
)

type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

func (h *AnalyticsHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		admin.GET("/dashboard", h.GetDashboard)
	}
}

func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	stats := h.analyticsService.GetDashboardStats()

	c.JSON(http.StatusOK, stats)
}
