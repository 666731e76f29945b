package services

import (
	"errors"

	"gorm.io/gorm"

	"artfolio_backend/internal/models"
	"artfolio_backend/internal/repositories"
	"artfolio_backend/pkg/apperrors"
)

// FavoriteService lets any authenticated user bookmark items they can view.
// Favorites are independent of the permission grants on an item.
type FavoriteService interface {
	AddFavorite(userID, itemID string) error
	RemoveFavorite(userID, itemID string) error
	ListFavorites(userID string) ([]models.Favorite, error)
	CountForItem(itemID string) (int64, error)
}

type favoriteService struct {
	db          *gorm.DB
	favRepo     repositories.FavoriteRepository
	itemRepo    repositories.ItemRepository
	permService PermissionService
}

func NewFavoriteService(
	db *gorm.DB,
	favRepo repositories.FavoriteRepository,
	itemRepo repositories.ItemRepository,
	permService PermissionService,
) FavoriteService {
	return &favoriteService{
		db:          db,
		favRepo:     favRepo,
		itemRepo:    itemRepo,
		permService: permService,
	}
}

func (s *favoriteService) AddFavorite(userID, itemID string) error {
	if _, err := s.itemRepo.FindByID(s.db, itemID); err != nil {
		return apperrors.ErrNotFound(err)
	}

	if !s.permService.CanUserPerformAction(itemID, userID, ActionView) {
		return apperrors.ErrInsufficientPermissions
	}

	fav := &models.Favorite{UserID: userID, ItemID: itemID}
	if err := s.favRepo.Add(s.db, fav); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *favoriteService) RemoveFavorite(userID, itemID string) error {
	if err := s.favRepo.Remove(s.db, userID, itemID); err != nil {
		if errors.Is(err, repositories.ErrFavoriteNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *favoriteService) ListFavorites(userID string) ([]models.Favorite, error) {
	return s.favRepo.ListByUser(s.db, userID)
}

func (s *favoriteService) CountForItem(itemID string) (int64, error) {
	return s.favRepo.CountByItem(s.db, itemID)
}
