package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"artfolio_backend/internal/middleware"
	"artfolio_backend/internal/models"
	"artfolio_backend/internal/services"
	"artfolio_backend/internal/services/dto"
	"artfolio_backend/internal/validator"
	"artfolio_backend/pkg/apperrors"
)

type QuotaHandler struct {
	quotaService services.QuotaService
	validate     *validator.Validator
}

func NewQuotaHandler(quotaService services.QuotaService, validate *validator.Validator) *QuotaHandler {
	return &QuotaHandler{
		quotaService: quotaService,
		validate:     validate,
	}
}

func (h *QuotaHandler) RegisterRoutes(r *gin.RouterGroup) {
	me := r.Group("/me")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("/quota", h.GetMyQuota)
		me.GET("/quota/upload-check", h.CheckUpload)
	}

	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		admin.GET("/quota/statistics", h.GetStatistics)
		admin.GET("/quota/near-limits", h.GetUsersNearLimits)
		admin.PUT("/users/:userId/quota", h.SetUserQuota)
		admin.PUT("/quota/roles", h.SetRoleQuota)
	}
}

func (h *QuotaHandler) GetMyQuota(c *gin.Context) {
	userID := middleware.GetUserID(c)

	info := h.quotaService.GetUserQuotaInfo(userID)
	if info == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *QuotaHandler) CheckUpload(c *gin.Context) {
	userID := middleware.GetUserID(c)
	sizeMB, _ := strconv.ParseFloat(c.DefaultQuery("size_mb", "0"), 64)

	c.JSON(http.StatusOK, h.quotaService.CanUserUpload(userID, sizeMB))
}

func (h *QuotaHandler) GetStatistics(c *gin.Context) {
	c.JSON(http.StatusOK, h.quotaService.GetQuotaStatistics())
}

func (h *QuotaHandler) GetUsersNearLimits(c *gin.Context) {
	itemThreshold, err := strconv.ParseFloat(c.DefaultQuery("item_threshold", "0.8"), 64)
	if err != nil {
		itemThreshold = 0.8
	}
	storageThreshold, err := strconv.ParseFloat(c.DefaultQuery("storage_threshold", "0.8"), 64)
	if err != nil {
		storageThreshold = 0.8
	}

	users := h.quotaService.GetUsersNearLimits(itemThreshold, storageThreshold)
	c.JSON(http.StatusOK, gin.H{"users": users, "total": len(users)})
}

func (h *QuotaHandler) SetUserQuota(c *gin.Context) {
	targetID := c.Param("userId")

	var req dto.SetQuotaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleValidationError(c, err)
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		apperrors.HandleValidationError(c, err)
		return
	}

	var subType *models.SubscriptionType
	if req.SubscriptionType != nil {
		st := models.SubscriptionType(*req.SubscriptionType)
		subType = &st
	}

	if !h.quotaService.SetUserQuota(targetID, req.MaxItems, req.MaxStorageMB, subType) {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Quota updated"})
}

// SetRoleQuota bulk-applies caps to every user of a role, overriding any
// per-user customization.
func (h *QuotaHandler) SetRoleQuota(c *gin.Context) {
	var req dto.RoleQuotaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleValidationError(c, err)
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		apperrors.HandleValidationError(c, err)
		return
	}

	if !h.quotaService.SetDefaultQuotaForRole(models.UserRole(req.Role), req.MaxItems, req.MaxStorageMB) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update role quota"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role quota updated"})
}
