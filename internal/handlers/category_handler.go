package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artfolio_backend/internal/middleware"
	"artfolio_backend/internal/services"
	"artfolio_backend/internal/services/dto"
	"artfolio_backend/internal/validator"
	"artfolio_backend/pkg/apperrors"
)

type CategoryHandler struct {
	categoryService services.CategoryService
	validate        *validator.Validator
}

func NewCategoryHandler(categoryService services.CategoryService, validate *validator.Validator) *CategoryHandler {
	return &CategoryHandler{
		categoryService: categoryService,
		validate:        validate,
	}
}

func (h *CategoryHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/categories", h.ListCategories)

	admin := r.Group("/admin/categories")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireAdmin())
	{
		admin.POST("", h.CreateCategory)
		admin.PUT("/:categoryId", h.UpdateCategory)
		admin.DELETE("/:categoryId", h.DeleteCategory)
	}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories()
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories, "total": len(categories)})
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleValidationError(c, err)
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		apperrors.HandleValidationError(c, err)
		return
	}

	category, err := h.categoryService.CreateCategory(&req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, category)
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	categoryID := c.Param("categoryId")

	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleValidationError(c, err)
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		apperrors.HandleValidationError(c, err)
		return
	}

	category, err := h.categoryService.UpdateCategory(categoryID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	categoryID := c.Param("categoryId")

	if err := h.categoryService.DeleteCategory(categoryID); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Category deleted"})
}
