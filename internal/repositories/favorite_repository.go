package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"artfolio_backend/internal/models"
)

var (
	ErrFavoriteNotFound = errors.New("favorite not found")
)

type FavoriteRepository interface {
	Add(db *gorm.DB, fav *models.Favorite) error
	Remove(db *gorm.DB, userID, itemID string) error
	Exists(db *gorm.DB, userID, itemID string) (bool, error)
	ListByUser(db *gorm.DB, userID string) ([]models.Favorite, error)
	CountByItem(db *gorm.DB, itemID string) (int64, error)
	DeleteByItem(db *gorm.DB, itemID string) error
}

type FavoriteRepositoryImpl struct{}

func NewFavoriteRepository() FavoriteRepository {
	return &FavoriteRepositoryImpl{}
}

// Add is idempotent against the (user_id, item_id) unique index.
func (r *FavoriteRepositoryImpl) Add(db *gorm.DB, fav *models.Favorite) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "item_id"}},
		DoNothing: true,
	}).Create(fav).Error
}

func (r *FavoriteRepositoryImpl) Remove(db *gorm.DB, userID, itemID string) error {
	result := db.Delete(&models.Favorite{}, "user_id = ? AND item_id = ?", userID, itemID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}

func (r *FavoriteRepositoryImpl) Exists(db *gorm.DB, userID, itemID string) (bool, error) {
	var count int64
	err := db.Model(&models.Favorite{}).
		Where("user_id = ? AND item_id = ?", userID, itemID).
		Count(&count).Error
	return count > 0, err
}

func (r *FavoriteRepositoryImpl) ListByUser(db *gorm.DB, userID string) ([]models.Favorite, error) {
	var favs []models.Favorite
	err := db.Preload("Item").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favs).Error
	return favs, err
}

func (r *FavoriteRepositoryImpl) CountByItem(db *gorm.DB, itemID string) (int64, error) {
	var count int64
	err := db.Model(&models.Favorite{}).Where("item_id = ?", itemID).Count(&count).Error
	return count, err
}

func (r *FavoriteRepositoryImpl) DeleteByItem(db *gorm.DB, itemID string) error {
	return db.Delete(&models.Favorite{}, "item_id = ?", itemID).Error
}
