package services

import (
	"errors"

	"gorm.io/gorm"

	"artfolio_backend/internal/models"
	"artfolio_backend/internal/repositories"
	"artfolio_backend/internal/services/dto"
	"artfolio_backend/pkg/apperrors"
)

// CategoryService is plain admin-gated CRUD; the role check lives in the
// route middleware.
type CategoryService interface {
	CreateCategory(req *dto.CategoryRequest) (*models.Category, error)
	UpdateCategory(categoryID string, req *dto.CategoryRequest) (*models.Category, error)
	DeleteCategory(categoryID string) error
	ListCategories() ([]models.Category, error)
}

type categoryService struct {
	db           *gorm.DB
	categoryRepo repositories.CategoryRepository
}

func NewCategoryService(db *gorm.DB, categoryRepo repositories.CategoryRepository) CategoryService {
	return &categoryService{
		db:           db,
		categoryRepo: categoryRepo,
	}
}

func (s *categoryService) CreateCategory(req *dto.CategoryRequest) (*models.Category, error) {
	if _, err := s.categoryRepo.FindByName(s.db, req.Name); err == nil {
		return nil, apperrors.ErrAlreadyExists(errors.New("category name already exists"))
	}

	category := &models.Category{
		Name:         req.Name,
		Description:  req.Description,
		DisplayOrder: req.DisplayOrder,
	}
	if err := s.categoryRepo.Create(s.db, category); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return category, nil
}

func (s *categoryService) UpdateCategory(categoryID string, req *dto.CategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.FindByID(s.db, categoryID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	category.Name = req.Name
	category.Description = req.Description
	category.DisplayOrder = req.DisplayOrder

	if err := s.categoryRepo.Update(s.db, category); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return category, nil
}

func (s *categoryService) DeleteCategory(categoryID string) error {
	if err := s.categoryRepo.Delete(s.db, categoryID); err != nil {
		if errors.Is(err, repositories.ErrCategoryNotFound) {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *categoryService) ListCategories() ([]models.Category, error) {
	return s.categoryRepo.List(s.db)
}
