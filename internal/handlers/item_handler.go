package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"artfolio_backend/internal/middleware"
	"artfolio_backend/internal/services"
	"artfolio_backend/internal/services/dto"
	"artfolio_backend/internal/validator"
	"artfolio_backend/pkg/apperrors"
)

type ItemHandler struct {
	itemService services.ItemService
	validate    *validator.Validator
}

func NewItemHandler(itemService services.ItemService, validate *validator.Validator) *ItemHandler {
	return &ItemHandler{
		itemService: itemService,
		validate:    validate,
	}
}

func (h *ItemHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public browsing. Optional auth so the permission resolver can see the
	// requester when one is present.
	public := r.Group("/items")
	public.Use(middleware.OptionalAuthMiddleware())
	{
		public.GET("/recent", h.ListRecent)
		public.GET("/category/:category", h.ListByCategory)
		public.GET("/:itemId", h.GetItem)
	}

	users := r.Group("/users")
	users.Use(middleware.OptionalAuthMiddleware())
	{
		users.GET("/:userId/items", h.ListUserItems)
	}

	items := r.Group("/items")
	items.Use(middleware.AuthMiddleware())
	{
		items.POST("", h.CreateItem)
		items.PUT("/:itemId", h.UpdateItem)
		items.DELETE("/:itemId", h.DeleteItem)
	}

	me := r.Group("/me")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("/items", h.ListMyItems)
	}
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req dto.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleValidationError(c, err)
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		apperrors.HandleValidationError(c, err)
		return
	}

	item, err := h.itemService.CreateItem(userID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

func (h *ItemHandler) GetItem(c *gin.Context) {
	itemID := c.Param("itemId")
	requesterID := middleware.GetUserID(c)

	item, err := h.itemService.GetItem(itemID, requesterID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
	itemID := c.Param("itemId")
	requesterID := middleware.GetUserID(c)

	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleValidationError(c, err)
		return
	}
	if err := h.validate.Validate(&req); err != nil {
		apperrors.HandleValidationError(c, err)
		return
	}

	item, err := h.itemService.UpdateItem(itemID, requesterID, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) DeleteItem(c *gin.Context) {
	itemID := c.Param("itemId")
	requesterID := middleware.GetUserID(c)

	if err := h.itemService.DeleteItem(itemID, requesterID); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

func (h *ItemHandler) ListUserItems(c *gin.Context) {
	userID := c.Param("userId")

	items, err := h.itemService.ListUserItems(userID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

func (h *ItemHandler) ListMyItems(c *gin.Context) {
	userID := middleware.GetUserID(c)

	items, err := h.itemService.ListUserItems(userID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

func (h *ItemHandler) ListByCategory(c *gin.Context) {
	category := c.Param("category")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, err := h.itemService.ListByCategory(category, limit)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}

func (h *ItemHandler) ListRecent(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	items, err := h.itemService.ListRecent(limit)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"items": items, "total": len(items)})
}
