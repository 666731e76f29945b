package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"gorm.io/gorm"

	"artfolio_backend/internal/logger"
	"artfolio_backend/internal/models"
	"artfolio_backend/internal/repositories"
	"artfolio_backend/pkg/apperrors"
)

// ShareLinkService issues token-addressed public views of an item. Creating
// a link requires the share capability on the item; resolving one requires
// nothing, that is the point of a share link.
type ShareLinkService interface {
	CreateShareLink(itemID, userID string, expiresAt *time.Time) (*models.ShareLink, error)
	ResolveShareLink(token string) (*models.PortfolioItem, error)
	RevokeShareLink(linkID, userID string) error
	ListItemShareLinks(itemID, userID string) ([]models.ShareLink, error)
}

type shareLinkService struct {
	db          *gorm.DB
	linkRepo    repositories.ShareLinkRepository
	itemRepo    repositories.ItemRepository
	permService PermissionService
}

func NewShareLinkService(
	db *gorm.DB,
	linkRepo repositories.ShareLinkRepository,
	itemRepo repositories.ItemRepository,
	permService PermissionService,
) ShareLinkService {
	return &shareLinkService{
		db:          db,
		linkRepo:    linkRepo,
		itemRepo:    itemRepo,
		permService: permService,
	}
}

func (s *shareLinkService) CreateShareLink(itemID, userID string, expiresAt *time.Time) (*models.ShareLink, error) {
	if _, err := s.itemRepo.FindByID(s.db, itemID); err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if !s.permService.CanUserPerformAction(itemID, userID, ActionShare) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	token, err := generateShareToken()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	link := &models.ShareLink{
		ItemID:    itemID,
		Token:     token,
		CreatedBy: userID,
		ExpiresAt: expiresAt,
		IsActive:  true,
	}
	if err := s.linkRepo.Create(s.db, link); err != nil {
		return nil, apperrors.InternalError(err)
	}

	logger.Info("share link created", "item_id", itemID, "by", userID)
	return link, nil
}

func (s *shareLinkService) ResolveShareLink(token string) (*models.PortfolioItem, error) {
	link, err := s.linkRepo.FindByToken(s.db, token)
	if err != nil {
		return nil, apperrors.ErrNotFound(err)
	}

	if !link.Usable(time.Now()) {
		return nil, apperrors.ErrNotFound(errors.New("share link expired or revoked"))
	}

	if err := s.linkRepo.IncrementViewCount(s.db, link.ID); err != nil {
		logger.Warn("share link view bump failed", "link_id", link.ID, "error", err)
	}

	if link.Item == nil {
		return nil, apperrors.ErrNotFound(errors.New("shared item no longer exists"))
	}
	return link.Item, nil
}

func (s *shareLinkService) RevokeShareLink(linkID, userID string) error {
	var link models.ShareLink
	if err := s.db.First(&link, "id = ?", linkID).Error; err != nil {
		return apperrors.ErrNotFound(err)
	}

	// The creator may always revoke their own link; others need the item's
	// share capability (which covers owners and admins).
	if link.CreatedBy != userID && !s.permService.CanUserPerformAction(link.ItemID, userID, ActionShare) {
		return apperrors.ErrInsufficientPermissions
	}

	if err := s.linkRepo.Deactivate(s.db, linkID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *shareLinkService) ListItemShareLinks(itemID, userID string) ([]models.ShareLink, error) {
	if !s.permService.CanUserPerformAction(itemID, userID, ActionShare) {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return s.linkRepo.ListByItem(s.db, itemID)
}

func generateShareToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
