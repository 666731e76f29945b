package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"artfolio_backend/internal/logger"
	"artfolio_backend/internal/models"
	"artfolio_backend/internal/repositories"
	"artfolio_backend/internal/services/dto"
)

// QuotaService computes usage against plan limits and gates uploads.
// Item counts are always live queries; storage usage trusts the counter
// stored on the user row (the reconcile worker heals drift).
type QuotaService interface {
	// GetUserQuotaInfo returns nil (without error) when the user does not
	// exist.
	GetUserQuotaInfo(userID string) *dto.UserQuotaInfo

	// CanUserUpload is the prospective gate: it checks the item count and
	// whether used+itemSizeMB would exceed the storage cap. Deliberately
	// stricter than GetUserQuotaInfo's already-at-or-over view.
	CanUserUpload(userID string, itemSizeMB float64) dto.UploadCheck

	SetUserQuota(userID string, maxItems *int, maxStorageMB *float64, subscriptionType *models.SubscriptionType) bool
	SetDefaultQuotaForRole(role models.UserRole, maxItems *int, maxStorageMB *float64) bool

	GetQuotaStatistics() *dto.QuotaStatistics
	GetUsersNearLimits(itemThreshold, storageThreshold float64) []dto.NearLimitUser
}

type quotaService struct {
	db       *gorm.DB
	userRepo repositories.UserRepository
	itemRepo repositories.ItemRepository
}

func NewQuotaService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	itemRepo repositories.ItemRepository,
) QuotaService {
	return &quotaService{
		db:       db,
		userRepo: userRepo,
		itemRepo: itemRepo,
	}
}

func (s *quotaService) GetUserQuotaInfo(userID string) *dto.UserQuotaInfo {
	user, err := s.userRepo.FindByID(s.db, userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrUserNotFound) {
			logger.Error("quota lookup failed", "user_id", userID, "error", err)
		}
		return nil
	}

	currentItems, err := s.itemRepo.CountByUser(s.db, userID)
	if err != nil {
		logger.Error("item count failed", "user_id", userID, "error", err)
		return nil
	}

	info := &dto.UserQuotaInfo{
		UserID:               user.ID,
		Role:                 user.Role,
		SubscriptionType:     user.SubscriptionType,
		CurrentItems:         currentItems,
		CurrentStorageUsedMB: user.CurrentStorageUsedMB,
	}

	// Paid/unlimited plans and admin roles collapse every cap, whatever
	// numbers happen to be stored on the row.
	if user.HasUnlimitedQuota() {
		info.CanUpload = true
		return info
	}

	info.MaxItems = user.MaxItems
	info.MaxStorageMB = user.MaxStorageMB

	if user.MaxItems != nil {
		remaining := int64(*user.MaxItems) - currentItems
		if remaining < 0 {
			remaining = 0
		}
		info.ItemsRemaining = &remaining
		info.IsAtItemLimit = currentItems >= int64(*user.MaxItems)
	}

	if user.MaxStorageMB != nil {
		remaining := *user.MaxStorageMB - user.CurrentStorageUsedMB
		if remaining < 0 {
			remaining = 0
		}
		info.StorageRemainingMB = &remaining
		info.IsAtStorageLimit = user.CurrentStorageUsedMB >= *user.MaxStorageMB
	}

	info.CanUpload = !info.IsAtItemLimit && !info.IsAtStorageLimit
	return info
}

func (s *quotaService) CanUserUpload(userID string, itemSizeMB float64) dto.UploadCheck {
	info := s.GetUserQuotaInfo(userID)
	if info == nil {
		return dto.UploadCheck{CanUpload: false, Reason: "User not found"}
	}

	// Fully unlimited: nothing to project.
	if info.MaxItems == nil && info.MaxStorageMB == nil {
		return dto.UploadCheck{CanUpload: true}
	}

	if info.MaxItems != nil && info.CurrentItems >= int64(*info.MaxItems) {
		return dto.UploadCheck{
			CanUpload: false,
			Reason: fmt.Sprintf("You have reached your limit of %d items. Upgrade your plan to showcase more work.",
				*info.MaxItems),
		}
	}

	if info.MaxStorageMB != nil && info.CurrentStorageUsedMB+itemSizeMB > *info.MaxStorageMB {
		return dto.UploadCheck{
			CanUpload: false,
			Reason: fmt.Sprintf("This upload would exceed your %.0f MB storage limit. Upgrade your plan for more space.",
				*info.MaxStorageMB),
		}
	}

	return dto.UploadCheck{CanUpload: true}
}

// SetUserQuota writes caps as given; value validation is the caller's
// responsibility.
func (s *quotaService) SetUserQuota(userID string, maxItems *int, maxStorageMB *float64, subscriptionType *models.SubscriptionType) bool {
	if err := s.userRepo.UpdateQuota(s.db, userID, maxItems, maxStorageMB, subscriptionType); err != nil {
		if !errors.Is(err, repositories.ErrUserNotFound) {
			logger.Error("quota update failed", "user_id", userID, "error", err)
		}
		return false
	}
	return true
}

// SetDefaultQuotaForRole clobbers any per-user overrides in that role.
func (s *quotaService) SetDefaultQuotaForRole(role models.UserRole, maxItems *int, maxStorageMB *float64) bool {
	affected, err := s.userRepo.UpdateQuotaForRole(s.db, role, maxItems, maxStorageMB)
	if err != nil {
		logger.Error("role quota update failed", "role", role, "error", err)
		return false
	}
	logger.Info("role quota updated", "role", role, "users_affected", affected)
	return true
}

// GetQuotaStatistics joins one user scan against one grouped item-count
// query in memory, avoiding a count query per user.
func (s *quotaService) GetQuotaStatistics() *dto.QuotaStatistics {
	users, err := s.userRepo.ListAll(s.db)
	if err != nil {
		logger.Error("quota statistics failed", "error", err)
		return &dto.QuotaStatistics{}
	}

	itemCounts, err := s.itemRepo.CountGroupedByUser(s.db)
	if err != nil {
		logger.Error("quota statistics failed", "error", err)
		return &dto.QuotaStatistics{}
	}

	stats := &dto.QuotaStatistics{
		TotalUsers: int64(len(users)),
	}

	for _, user := range users {
		count := itemCounts[user.ID]
		stats.TotalItems += count
		stats.TotalStorageUsedMB += user.CurrentStorageUsedMB

		if user.HasUnlimitedQuota() {
			stats.UnlimitedUsers++
			continue
		}
		if user.MaxItems != nil && count >= int64(*user.MaxItems) {
			stats.UsersAtItemLimit++
		}
		if user.MaxStorageMB != nil && user.CurrentStorageUsedMB >= *user.MaxStorageMB {
			stats.UsersAtStorageLimit++
		}
	}
	return stats
}

// GetUsersNearLimits reports free-plan users above the usage thresholds.
// A missing or zero cap yields ratio 0 (not near limit) rather than a
// division by zero.
func (s *quotaService) GetUsersNearLimits(itemThreshold, storageThreshold float64) []dto.NearLimitUser {
	users, err := s.userRepo.ListBySubscription(s.db, models.SubscriptionFree)
	if err != nil {
		logger.Error("near-limit report failed", "error", err)
		return nil
	}

	itemCounts, err := s.itemRepo.CountGroupedByUser(s.db)
	if err != nil {
		logger.Error("near-limit report failed", "error", err)
		return nil
	}

	var result []dto.NearLimitUser
	for _, user := range users {
		if user.IsAdminRole() {
			continue
		}

		count := itemCounts[user.ID]

		itemRatio := 0.0
		if user.MaxItems != nil && *user.MaxItems > 0 {
			itemRatio = float64(count) / float64(*user.MaxItems)
		}

		storageRatio := 0.0
		if user.MaxStorageMB != nil && *user.MaxStorageMB > 0 {
			storageRatio = user.CurrentStorageUsedMB / *user.MaxStorageMB
		}

		if itemRatio >= itemThreshold || storageRatio >= storageThreshold {
			result = append(result, dto.NearLimitUser{
				UserID:            user.ID,
				Username:          user.Username,
				CurrentItems:      count,
				MaxItems:          user.MaxItems,
				ItemUsageRatio:    itemRatio,
				StorageUsedMB:     user.CurrentStorageUsedMB,
				MaxStorageMB:      user.MaxStorageMB,
				StorageUsageRatio: storageRatio,
			})
		}
	}
	return result
}
