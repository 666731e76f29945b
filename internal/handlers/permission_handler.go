package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artfolio_backend/internal/middleware"
	"artfolio_backend/internal/models"
	"artfolio_backend/internal/services"
	"artfolio_backend/internal/services/dto"
	"artfolio_backend/internal/validator"
	"artfolio_backend/pkg/apperrors"
)

type PermissionHandler struct {
	permService services.PermissionService
	validate    *validator.Validator
}

func NewPermissionHandler(permService services.PermissionService, validate *validator.Validator) *PermissionHandler {
	return &PermissionHandler{
		permService: permService,
		validate:    validate,
	}
}

func (h *PermissionHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Capability resolution works for anonymous requesters too.
	public := r.Group("/items")
	public.Use(middleware.OptionalAuthMiddleware())
	{
		public.GET("/:itemId/permissions", h.GetMyPermissions)
	}

	items := r.Group("/items")
	items.Use(middleware.AuthMiddleware())
	{
		items.POST("/:itemId/permissions", h.GrantPermission)
		items.DELETE("/:itemId/permissions/:userId", h.RevokePermission)
		items.GET("/:itemId/collaborators", h.GetCollaborators)
	}
}

// GetMyPermissions returns the requester's resolved capability set for the
// item. Admin override is not reflected here; it applies to actions, not to
// the resolved set.
func (h *PermissionHandler) GetMyPermissions(c *gin.Context) {
	itemID := c.Param("itemId")
	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	perms := h.permService.GetUserItemPermissions(itemID, userID, role)
	c.JSON(http.StatusOK, perms)
}

func (h *PermissionHandler) GrantPermission(c *gin.Context) {
	itemID := c.Param("itemId")
	granterID := middleware.GetUserID(c)

	var req dto.GrantPermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleValidationError(c, err)
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		apperrors.HandleValidationError(c, err)
		return
	}

	ok := h.permService.GrantPermission(
		itemID,
		req.UserID,
		granterID,
		models.OwnershipType(req.OwnershipType),
		models.PermissionLevel(req.PermissionLevel),
		req.ExpiresAt,
	)
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to grant permissions on this item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Permission granted"})
}

func (h *PermissionHandler) RevokePermission(c *gin.Context) {
	itemID := c.Param("itemId")
	targetID := c.Param("userId")
	revokerID := middleware.GetUserID(c)

	if !h.permService.RevokePermission(itemID, targetID, revokerID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to revoke permissions on this item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Permission revoked"})
}

func (h *PermissionHandler) GetCollaborators(c *gin.Context) {
	itemID := c.Param("itemId")
	userID := middleware.GetUserID(c)

	if !h.permService.CanUserPerformAction(itemID, userID, services.ActionGrantPermissions) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to view collaborators"})
		return
	}

	collaborators := h.permService.GetItemCollaborators(itemID)
	c.JSON(http.StatusOK, gin.H{"collaborators": collaborators, "total": len(collaborators)})
}
