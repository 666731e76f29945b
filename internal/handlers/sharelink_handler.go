package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"artfolio_backend/internal/middleware"
	"artfolio_backend/internal/services"
	"artfolio_backend/internal/services/dto"
	"artfolio_backend/pkg/apperrors"
)

type ShareLinkHandler struct {
	shareLinkService services.ShareLinkService
}

func NewShareLinkHandler(shareLinkService services.ShareLinkService) *ShareLinkHandler {
	return &ShareLinkHandler{
		shareLinkService: shareLinkService,
	}
}

func (h *ShareLinkHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Token resolution is public by design.
	r.GET("/share/:token", h.ResolveShareLink)

	items := r.Group("/items")
	items.Use(middleware.AuthMiddleware())
	{
		items.POST("/:itemId/share", h.CreateShareLink)
		items.GET("/:itemId/share", h.ListItemShareLinks)
	}

	links := r.Group("/share-links")
	links.Use(middleware.AuthMiddleware())
	{
		links.DELETE("/:linkId", h.RevokeShareLink)
	}
}

func (h *ShareLinkHandler) CreateShareLink(c *gin.Context) {
	itemID := c.Param("itemId")
	userID := middleware.GetUserID(c)

	var req dto.CreateShareLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.HandleValidationError(c, err)
		return
	}

	link, err := h.shareLinkService.CreateShareLink(itemID, userID, req.ExpiresAt)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, link)
}

func (h *ShareLinkHandler) ResolveShareLink(c *gin.Context) {
	token := c.Param("token")

	item, err := h.shareLinkService.ResolveShareLink(token)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *ShareLinkHandler) RevokeShareLink(c *gin.Context) {
	linkID := c.Param("linkId")
	userID := middleware.GetUserID(c)

	if err := h.shareLinkService.RevokeShareLink(linkID, userID); err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Share link revoked"})
}

func (h *ShareLinkHandler) ListItemShareLinks(c *gin.Context) {
	itemID := c.Param("itemId")
	userID := middleware.GetUserID(c)

	links, err := h.shareLinkService.ListItemShareLinks(itemID, userID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"links": links, "total": len(links)})
}
