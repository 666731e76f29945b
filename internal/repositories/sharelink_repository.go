package repositories

import (
	"errors"

	"gorm.io/gorm"

	"artfolio_backend/internal/models"
)

var (
	ErrShareLinkNotFound = errors.New("share link not found")
)

type ShareLinkRepository interface {
	Create(db *gorm.DB, link *models.ShareLink) error
	FindByToken(db *gorm.DB, token string) (*models.ShareLink, error)
	ListByItem(db *gorm.DB, itemID string) ([]models.ShareLink, error)
	Deactivate(db *gorm.DB, id string) error
	IncrementViewCount(db *gorm.DB, id string) error
	DeleteByItem(db *gorm.DB, itemID string) error
}

type ShareLinkRepositoryImpl struct{}

func NewShareLinkRepository() ShareLinkRepository {
	return &ShareLinkRepositoryImpl{}
}

func (r *ShareLinkRepositoryImpl) Create(db *gorm.DB, link *models.ShareLink) error {
	return db.Create(link).Error
}

func (r *ShareLinkRepositoryImpl) FindByToken(db *gorm.DB, token string) (*models.ShareLink, error) {
	var link models.ShareLink
	err := db.Preload("Item").First(&link, "token = ?", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShareLinkNotFound
		}
		return nil, err
	}
	return &link, nil
}

func (r *ShareLinkRepositoryImpl) ListByItem(db *gorm.DB, itemID string) ([]models.ShareLink, error) {
	var links []models.ShareLink
	err := db.Where("item_id = ?", itemID).Order("created_at DESC").Find(&links).Error
	return links, err
}

func (r *ShareLinkRepositoryImpl) Deactivate(db *gorm.DB, id string) error {
	result := db.Model(&models.ShareLink{}).Where("id = ?", id).Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrShareLinkNotFound
	}
	return nil
}

func (r *ShareLinkRepositoryImpl) IncrementViewCount(db *gorm.DB, id string) error {
	return db.Model(&models.ShareLink{}).Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *ShareLinkRepositoryImpl) DeleteByItem(db *gorm.DB, itemID string) error {
	return db.Delete(&models.ShareLink{}, "item_id = ?", itemID).Error
}
