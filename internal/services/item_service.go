package services

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"artfolio_backend/internal/logger"
	"artfolio_backend/internal/models"
	"artfolio_backend/internal/repositories"
	"artfolio_backend/internal/services/dto"
	"artfolio_backend/pkg/apperrors"
)

type ItemService interface {
	CreateItem(userID string, req *dto.CreateItemRequest) (*models.PortfolioItem, error)
	GetItem(itemID, requesterID string) (*models.PortfolioItem, error)
	UpdateItem(itemID, requesterID string, req *dto.UpdateItemRequest) (*models.PortfolioItem, error)
	DeleteItem(itemID, requesterID string) error

	ListUserItems(userID string) ([]models.PortfolioItem, error)
	ListByCategory(category string, limit int) ([]models.PortfolioItem, error)
	ListRecent(limit int) ([]models.PortfolioItem, error)
}

type itemService struct {
	db          *gorm.DB
	itemRepo    repositories.ItemRepository
	userRepo    repositories.UserRepository
	permRepo    repositories.PermissionRepository
	favRepo     repositories.FavoriteRepository
	linkRepo    repositories.ShareLinkRepository
	permService PermissionService
	quota       QuotaService
}

func NewItemService(
	db *gorm.DB,
	itemRepo repositories.ItemRepository,
	userRepo repositories.UserRepository,
	permRepo repositories.PermissionRepository,
	favRepo repositories.FavoriteRepository,
	linkRepo repositories.ShareLinkRepository,
	permService PermissionService,
	quota QuotaService,
) ItemService {
	return &itemService{
		db:          db,
		itemRepo:    itemRepo,
		userRepo:    userRepo,
		permRepo:    permRepo,
		favRepo:     favRepo,
		linkRepo:    linkRepo,
		permService: permService,
		quota:       quota,
	}
}

func (s *itemService) CreateItem(userID string, req *dto.CreateItemRequest) (*models.PortfolioItem, error) {
	user, err := s.userRepo.FindByID(s.db, userID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}
	if user.Role == models.UserRoleVisitor {
		return nil, apperrors.ErrInsufficientPermissions
	}

	check := s.quota.CanUserUpload(userID, req.FileSizeMB)
	if !check.CanUpload {
		return nil, apperrors.ErrItemQuotaExceeded.WithDetails(check.Reason)
	}

	item := &models.PortfolioItem{
		UserID:        userID,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		ImageURL:      req.ImageURL,
		FileSizeMB:    req.FileSizeMB,
		TezosContract: req.TezosContract,
		TezosTokenID:  req.TezosTokenID,
		IsPublic:      true,
	}
	if req.IsPublic != nil {
		item.IsPublic = *req.IsPublic
	}
	if req.Marketplaces != nil {
		raw, err := json.Marshal(req.Marketplaces)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		item.Marketplaces = datatypes.JSON(raw)
	}

	// Item row, owner grant and storage counter commit together.
	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.itemRepo.Create(tx, item); err != nil {
			return err
		}
		if err := s.permService.GrantOwnershipOnUpload(tx, item.ID, userID); err != nil {
			return err
		}
		if req.FileSizeMB > 0 {
			return s.userRepo.AddStorageUsage(tx, userID, req.FileSizeMB)
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("item created", "item_id", item.ID, "user_id", userID, "size_mb", req.FileSizeMB)
	return item, nil
}

func (s *itemService) GetItem(itemID, requesterID string) (*models.PortfolioItem, error) {
	item, err := s.itemRepo.FindByID(s.db, itemID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if !s.permService.CanUserPerformAction(itemID, requesterID, ActionView) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	// Best-effort; a failed counter bump must not fail the read.
	if err := s.itemRepo.IncrementViewCount(s.db, itemID); err != nil {
		logger.Warn("view count bump failed", "item_id", itemID, "error", err)
	}

	return item, nil
}

func (s *itemService) UpdateItem(itemID, requesterID string, req *dto.UpdateItemRequest) (*models.PortfolioItem, error) {
	item, err := s.itemRepo.FindByID(s.db, itemID)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if !s.permService.CanUserPerformAction(itemID, requesterID, ActionEdit) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.TezosContract != nil {
		item.TezosContract = *req.TezosContract
	}
	if req.TezosTokenID != nil {
		item.TezosTokenID = *req.TezosTokenID
	}
	if req.IsPublic != nil {
		item.IsPublic = *req.IsPublic
	}
	if req.Marketplaces != nil {
		raw, err := json.Marshal(req.Marketplaces)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		item.Marketplaces = datatypes.JSON(raw)
	}

	if err := s.itemRepo.Update(s.db, item); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return item, nil
}

// DeleteItem cascades the item's grants, favorites and share links, then
// releases the storage it occupied.
func (s *itemService) DeleteItem(itemID, requesterID string) error {
	item, err := s.itemRepo.FindByID(s.db, itemID)
	if err != nil {
		return apperrors.ErrNotFound(err)
	}

	if !s.permService.CanUserPerformAction(itemID, requesterID, ActionDelete) {
		return apperrors.ErrInsufficientPermissions
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.permRepo.DeleteByItem(tx, itemID); err != nil {
			return err
		}
		if err := s.favRepo.DeleteByItem(tx, itemID); err != nil {
			return err
		}
		if err := s.linkRepo.DeleteByItem(tx, itemID); err != nil {
			return err
		}
		if err := s.itemRepo.Delete(tx, itemID); err != nil {
			return err
		}
		if item.FileSizeMB > 0 {
			return s.userRepo.AddStorageUsage(tx, item.UserID, -item.FileSizeMB)
		}
		return nil
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	logger.Info("item deleted", "item_id", itemID, "by", requesterID)
	return nil
}

func (s *itemService) ListUserItems(userID string) ([]models.PortfolioItem, error) {
	return s.itemRepo.ListByUser(s.db, userID)
}

func (s *itemService) ListByCategory(category string, limit int) ([]models.PortfolioItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.itemRepo.ListByCategory(s.db, category, limit)
}

func (s *itemService) ListRecent(limit int) ([]models.PortfolioItem, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.itemRepo.ListRecent(s.db, limit)
}
