package repositories

import (
	"errors"

	"gorm.io/gorm"

	"artfolio_backend/internal/models"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
)

type CategoryRepository interface {
	Create(db *gorm.DB, category *models.Category) error
	FindByID(db *gorm.DB, id string) (*models.Category, error)
	FindByName(db *gorm.DB, name string) (*models.Category, error)
	Update(db *gorm.DB, category *models.Category) error
	Delete(db *gorm.DB, id string) error
	List(db *gorm.DB) ([]models.Category, error)
}

type CategoryRepositoryImpl struct{}

func NewCategoryRepository() CategoryRepository {
	return &CategoryRepositoryImpl{}
}

func (r *CategoryRepositoryImpl) Create(db *gorm.DB, category *models.Category) error {
	return db.Create(category).Error
}

func (r *CategoryRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Category, error) {
	var category models.Category
	err := db.First(&category, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepositoryImpl) FindByName(db *gorm.DB, name string) (*models.Category, error) {
	var category models.Category
	err := db.First(&category, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepositoryImpl) Update(db *gorm.DB, category *models.Category) error {
	result := db.Model(category).Updates(map[string]interface{}{
		"name":          category.Name,
		"description":   category.Description,
		"display_order": category.DisplayOrder,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.Category{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepositoryImpl) List(db *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	err := db.Order("display_order ASC, name ASC").Find(&categories).Error
	return categories, err
}
