package services

import (
	"gorm.io/gorm"

	"artfolio_backend/internal/repositories"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	AuthService       AuthService
	ItemService       ItemService
	PermissionService PermissionService
	QuotaService      QuotaService
	FavoriteService   FavoriteService
	CategoryService   CategoryService
	ShareLinkService  ShareLinkService
	AnalyticsService  AnalyticsService
}

// NewServiceContainer wires repositories into services against one DB handle.
func NewServiceContainer(db *gorm.DB) *ServiceContainer {
	userRepo := repositories.NewUserRepository()
	itemRepo := repositories.NewItemRepository()
	permRepo := repositories.NewPermissionRepository()
	favRepo := repositories.NewFavoriteRepository()
	categoryRepo := repositories.NewCategoryRepository()
	linkRepo := repositories.NewShareLinkRepository()

	permService := NewPermissionService(db, permRepo, itemRepo, userRepo)
	quotaService := NewQuotaService(db, userRepo, itemRepo)

	return &ServiceContainer{
		AuthService:       NewAuthService(db, userRepo),
		ItemService:       NewItemService(db, itemRepo, userRepo, permRepo, favRepo, linkRepo, permService, quotaService),
		PermissionService: permService,
		QuotaService:      quotaService,
		FavoriteService:   NewFavoriteService(db, favRepo, itemRepo, permService),
		CategoryService:   NewCategoryService(db, categoryRepo),
		ShareLinkService:  NewShareLinkService(db, linkRepo, itemRepo, permService),
		AnalyticsService:  NewAnalyticsService(db, userRepo, itemRepo, quotaService),
	}
}
