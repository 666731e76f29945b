package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artfolio_backend/internal/middleware"
	"artfolio_backend/internal/services"
	"artfolio_backend/pkg/apperrors"
)

type FavoriteHandler struct {
	favoriteService services.FavoriteService
}

func NewFavoriteHandler(favoriteService services.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
	}
}

func (h *FavoriteHandler) RegisterRoutes(r *gin.RouterGroup) {
	public := r.Group("/items")
	public.Use(middleware.OptionalAuthMiddleware())
	{
		public.GET("/:itemId/favorites/count", h.CountForItem)
	}

	items := r.Group("/items")
	items.Use(middleware.AuthMiddleware())
	{
		items.POST("/:itemId/favorite", h.AddFavorite)
		items.DELETE("/:itemId/favorite", h.RemoveFavorite)
	}

	me := r.Group("/me")
	me.Use(middleware.AuthMiddleware())
	{
		me.GET("/favorites", h.ListMyFavorites)
	}
}

func (h *FavoriteHandler) AddFavorite(c *gin.Context) {
	userID := middleware.GetUserID(c)
	itemID := c.Param("itemId")

	if err := h.favoriteService.AddFavorite(userID, itemID); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Added to favorites"})
}

func (h *FavoriteHandler) RemoveFavorite(c *gin.Context) {
	userID := middleware.GetUserID(c)
	itemID := c.Param("itemId")

	if err := h.favoriteService.RemoveFavorite(userID, itemID); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Removed from favorites"})
}

func (h *FavoriteHandler) ListMyFavorites(c *gin.Context) {
	userID := middleware.GetUserID(c)

	favorites, err := h.favoriteService.ListFavorites(userID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites, "total": len(favorites)})
}

func (h *FavoriteHandler) CountForItem(c *gin.Context) {
	itemID := c.Param("itemId")

	count, err := h.favoriteService.CountForItem(itemID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
