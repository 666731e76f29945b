package handlers

import (
	"artfolio_backend/internal/services"
	"artfolio_backend/internal/validator"
)

// AppHandlers holds all HTTP handlers.
type AppHandlers struct {
	Auth       *AuthHandler
	Item       *ItemHandler
	Permission *PermissionHandler
	Quota      *QuotaHandler
	Favorite   *FavoriteHandler
	Category   *CategoryHandler
	ShareLink  *ShareLinkHandler
	Analytics  *AnalyticsHandler
}

func NewAppHandlers(svc *services.ServiceContainer, validate *validator.Validator) *AppHandlers {
	return &AppHandlers{
		Auth:       NewAuthHandler(svc.AuthService, validate),
		Item:       NewItemHandler(svc.ItemService, validate),
		Permission: NewPermissionHandler(svc.PermissionService, validate),
		Quota:      NewQuotaHandler(svc.QuotaService, validate),
		Favorite:   NewFavoriteHandler(svc.FavoriteService),
		Category:   NewCategoryHandler(svc.CategoryService, validate),
		ShareLink:  NewShareLinkHandler(svc.ShareLinkService),
		Analytics:  NewAnalyticsHandler(svc.AnalyticsService),
	}
}
