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

type AuthHandler struct {
	authService services.AuthService
	validate    *validator.Validator
}

func NewAuthHandler(authService services.AuthService, validate *validator.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validate,
	}
}

func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}

	me := r.Group("/me")
	me.Use(middleware.AuthMiddleware())
	{
		me.POST("/change-password", h.ChangePassword)
	}

	admin := r.Group("/admin/users")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleSuperadmin))
	{
		admin.PUT("/:userId/role", h.ChangeRole)
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleValidationError(c, err)
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		apperrors.HandleValidationError(c, err)
		return
	}

	user, err := h.authService.Register(&req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleValidationError(c, err)
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		apperrors.HandleValidationError(c, err)
		return
	}

	response, err := h.authService.Login(&req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleValidationError(c, err)
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		apperrors.HandleValidationError(c, err)
		return
	}

	if err := h.authService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed"})
}

func (h *AuthHandler) ChangeRole(c *gin.Context) {
	actorID := middleware.GetUserID(c)
	targetID := c.Param("userId")

	var req dto.ChangeRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleValidationError(c, err)
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		apperrors.HandleValidationError(c, err)
		return
	}

	if err := h.authService.ChangeRole(actorID, targetID, models.UserRole(req.Role)); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Role updated"})
}
