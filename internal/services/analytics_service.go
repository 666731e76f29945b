package services

import (
	"gorm.io/gorm"

	"artfolio_backend/internal/logger"
	"artfolio_backend/internal/models"
	"artfolio_backend/internal/repositories"
	"artfolio_backend/internal/services/dto"
)

// DashboardStats is the admin analytics payload.
type DashboardStats struct {
	TotalUsers      int64                             `json:"total_users"`
	TotalItems      int64                             `json:"total_items"`
	UsersByRole     map[models.UserRole]int64         `json:"users_by_role"`
	UsersByPlan     map[models.SubscriptionType]int64 `json:"users_by_plan"`
	ItemsByCategory map[string]int64                  `json:"items_by_category"`
	TopViewedItems  []models.PortfolioItem            `json:"top_viewed_items"`
	Quota           *dto.QuotaStatistics              `json:"quota"`
	UsersNearLimits []dto.NearLimitUser               `json:"users_near_limits"`
}

type AnalyticsService interface {
	GetDashboardStats() *DashboardStats
}

type analyticsService struct {
	db       *gorm.DB
	userRepo repositories.UserRepository
	itemRepo repositories.ItemRepository
	quota    QuotaService
}

func NewAnalyticsService(
	db *gorm.DB,
	userRepo repositories.UserRepository,
	itemRepo repositories.ItemRepository,
	quota QuotaService,
) AnalyticsService {
	return &analyticsService{
		db:       db,
		userRepo: userRepo,
		itemRepo: itemRepo,
		quota:    quota,
	}
}

// GetDashboardStats degrades per section: a failed aggregate logs and leaves
// its field empty instead of failing the whole dashboard.
func (s *analyticsService) GetDashboardStats() *DashboardStats {
	stats := &DashboardStats{}

	var err error
	if stats.TotalUsers, err = s.userRepo.Count(s.db); err != nil {
		logger.Error("dashboard user count failed", "error", err)
	}
	if stats.TotalItems, err = s.itemRepo.Count(s.db); err != nil {
		logger.Error("dashboard item count failed", "error", err)
	}
	if stats.UsersByRole, err = s.userRepo.CountByRole(s.db); err != nil {
		logger.Error("dashboard role breakdown failed", "error", err)
	}
	if stats.UsersByPlan, err = s.userRepo.CountBySubscription(s.db); err != nil {
		logger.Error("dashboard plan breakdown failed", "error", err)
	}
	if stats.ItemsByCategory, err = s.itemRepo.CountGroupedByCategory(s.db); err != nil {
		logger.Error("dashboard category breakdown failed", "error", err)
	}
	if stats.TopViewedItems, err = s.itemRepo.ListTopViewed(s.db, 10); err != nil {
		logger.Error("dashboard top items failed", "error", err)
	}

	stats.Quota = s.quota.GetQuotaStatistics()
	stats.UsersNearLimits = s.quota.GetUsersNearLimits(0.8, 0.8)

	return stats
}
