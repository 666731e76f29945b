package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"artfolio_backend/internal/models"
)

var (
	ErrItemNotFound = errors.New("portfolio item not found")
)

type ItemRepository interface {
	Create(db *gorm.DB, item *models.PortfolioItem) error
	FindByID(db *gorm.DB, id string) (*models.PortfolioItem, error)
	Update(db *gorm.DB, item *models.PortfolioItem) error
	Delete(db *gorm.DB, id string) error

	ListByUser(db *gorm.DB, userID string) ([]models.PortfolioItem, error)
	ListByCategory(db *gorm.DB, category string, limit int) ([]models.PortfolioItem, error)
	ListRecent(db *gorm.DB, limit int) ([]models.PortfolioItem, error)
	ListTopViewed(db *gorm.DB, limit int) ([]models.PortfolioItem, error)

	IncrementViewCount(db *gorm.DB, id string) error

	Count(db *gorm.DB) (int64, error)
	CountByUser(db *gorm.DB, userID string) (int64, error)
	CountGroupedByUser(db *gorm.DB) (map[string]int64, error)
	CountGroupedByCategory(db *gorm.DB) (map[string]int64, error)
	SumFileSizeByUser(db *gorm.DB, userID string) (float64, error)
	SumFileSizeGroupedByUser(db *gorm.DB) (map[string]float64, error)
}

type ItemRepositoryImpl struct{}

func NewItemRepository() ItemRepository {
	return &ItemRepositoryImpl{}
}

func (r *ItemRepositoryImpl) Create(db *gorm.DB, item *models.PortfolioItem) error {
	return db.Create(item).Error
}

func (r *ItemRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.PortfolioItem, error) {
	var item models.PortfolioItem
	err := db.First(&item, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *ItemRepositoryImpl) Update(db *gorm.DB, item *models.PortfolioItem) error {
	result := db.Model(item).Updates(map[string]interface{}{
		"title":          item.Title,
		"description":    item.Description,
		"category":       item.Category,
		"image_url":      item.ImageURL,
		"marketplaces":   item.Marketplaces,
		"tezos_contract": item.TezosContract,
		"tezos_token_id": item.TezosTokenID,
		"is_public":      item.IsPublic,
		"updated_at":     time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *ItemRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.PortfolioItem{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *ItemRepositoryImpl) ListByUser(db *gorm.DB, userID string) ([]models.PortfolioItem, error) {
	var items []models.PortfolioItem
	err := db.Where("user_id = ?", userID).Order("created_at DESC").Find(&items).Error
	return items, err
}

func (r *ItemRepositoryImpl) ListByCategory(db *gorm.DB, category string, limit int) ([]models.PortfolioItem, error) {
	var items []models.PortfolioItem
	err := db.Where("category = ? AND is_public = ?", category, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *ItemRepositoryImpl) ListRecent(db *gorm.DB, limit int) ([]models.PortfolioItem, error) {
	var items []models.PortfolioItem
	err := db.Where("is_public = ?", true).
		Order("created_at DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *ItemRepositoryImpl) ListTopViewed(db *gorm.DB, limit int) ([]models.PortfolioItem, error) {
	var items []models.PortfolioItem
	err := db.Where("is_public = ?", true).
		Order("view_count DESC").
		Limit(limit).
		Find(&items).Error
	return items, err
}

func (r *ItemRepositoryImpl) IncrementViewCount(db *gorm.DB, id string) error {
	return db.Model(&models.PortfolioItem{}).Where("id = ?", id).
		Update("view_count", gorm.Expr("view_count + 1")).Error
}

func (r *ItemRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.PortfolioItem{}).Count(&count).Error
	return count, err
}

func (r *ItemRepositoryImpl) CountByUser(db *gorm.DB, userID string) (int64, error) {
	var count int64
	err := db.Model(&models.PortfolioItem{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountGroupedByUser fetches all per-user item counts in one grouped query so
// platform-wide quota statistics can join them in memory instead of issuing a
// count per user.
func (r *ItemRepositoryImpl) CountGroupedByUser(db *gorm.DB) (map[string]int64, error) {
	var rows []struct {
		UserID string
		Count  int64
	}
	err := db.Model(&models.PortfolioItem{}).
		Select("user_id, COUNT(*) as count").
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.UserID] = row.Count
	}
	return counts, nil
}

func (r *ItemRepositoryImpl) CountGroupedByCategory(db *gorm.DB) (map[string]int64, error) {
	var rows []struct {
		Category string
		Count    int64
	}
	err := db.Model(&models.PortfolioItem{}).
		Select("category, COUNT(*) as count").
		Group("category").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Category] = row.Count
	}
	return counts, nil
}

func (r *ItemRepositoryImpl) SumFileSizeByUser(db *gorm.DB, userID string) (float64, error) {
	var total float64
	err := db.Model(&models.PortfolioItem{}).Where("user_id = ?", userID).
		Select("COALESCE(SUM(file_size_mb), 0)").
		Scan(&total).Error
	return total, err
}

func (r *ItemRepositoryImpl) SumFileSizeGroupedByUser(db *gorm.DB) (map[string]float64, error) {
	var rows []struct {
		UserID string
		Total  float64
	}
	err := db.Model(&models.PortfolioItem{}).
		Select("user_id, COALESCE(SUM(file_size_mb), 0) as total").
		Group("user_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	totals := make(map[string]float64, len(rows))
	for _, row := range rows {
		totals[row.UserID] = row.Total
	}
	return totals, nil
}
