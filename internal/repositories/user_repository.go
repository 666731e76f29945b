package repositories

import (
	"errors"

	"gorm.io/gorm"

	"artfolio_backend/internal/models"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

type UserRepository interface {
	Create(db *gorm.DB, user *models.User) error
	FindByID(db *gorm.DB, id string) (*models.User, error)
	FindByEmail(db *gorm.DB, email string) (*models.User, error)
	FindByUsername(db *gorm.DB, username string) (*models.User, error)
	Update(db *gorm.DB, user *models.User) error
	UpdateRole(db *gorm.DB, userID string, role models.UserRole) error

	// Quota fields
	UpdateQuota(db *gorm.DB, userID string, maxItems *int, maxStorageMB *float64, subscriptionType *models.SubscriptionType) error
	UpdateQuotaForRole(db *gorm.DB, role models.UserRole, maxItems *int, maxStorageMB *float64) (int64, error)
	AddStorageUsage(db *gorm.DB, userID string, deltaMB float64) error
	SetStorageUsage(db *gorm.DB, userID string, valueMB float64) error

	// Aggregates
	ListAll(db *gorm.DB) ([]models.User, error)
	ListBySubscription(db *gorm.DB, sub models.SubscriptionType) ([]models.User, error)
	Count(db *gorm.DB) (int64, error)
	CountByRole(db *gorm.DB) (map[models.UserRole]int64, error)
	CountBySubscription(db *gorm.DB) (map[models.SubscriptionType]int64, error)
}

type UserRepositoryImpl struct{}

func NewUserRepository() UserRepository {
	return &UserRepositoryImpl{}
}

func (r *UserRepositoryImpl) Create(db *gorm.DB, user *models.User) error {
	return db.Create(user).Error
}

func (r *UserRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByUsername(db *gorm.DB, username string) (*models.User, error) {
	var user models.User
	err := db.First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Update(db *gorm.DB, user *models.User) error {
	return db.Save(user).Error
}

func (r *UserRepositoryImpl) UpdateRole(db *gorm.DB, userID string, role models.UserRole) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).Update("role", role)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdateQuota(db *gorm.DB, userID string, maxItems *int, maxStorageMB *float64, subscriptionType *models.SubscriptionType) error {
	updates := map[string]interface{}{
		"max_items":      maxItems,
		"max_storage_mb": maxStorageMB,
	}
	if subscriptionType != nil {
		updates["subscription_type"] = *subscriptionType
	}

	result := db.Model(&models.User{}).Where("id = ?", userID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdateQuotaForRole bulk-sets caps for every user of a role. This clobbers
// per-user overrides; callers are expected to know that.
func (r *UserRepositoryImpl) UpdateQuotaForRole(db *gorm.DB, role models.UserRole, maxItems *int, maxStorageMB *float64) (int64, error) {
	result := db.Model(&models.User{}).Where("role = ?", role).Updates(map[string]interface{}{
		"max_items":      maxItems,
		"max_storage_mb": maxStorageMB,
	})
	return result.RowsAffected, result.Error
}

// AddStorageUsage increments the counter in SQL so concurrent uploads cannot
// lose updates.
func (r *UserRepositoryImpl) AddStorageUsage(db *gorm.DB, userID string, deltaMB float64) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).
		Update("current_storage_used_mb", gorm.Expr("current_storage_used_mb + ?", deltaMB))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SetStorageUsage writes an absolute value. Reserved for the reconciliation
// worker; request paths must use AddStorageUsage.
func (r *UserRepositoryImpl) SetStorageUsage(db *gorm.DB, userID string, valueMB float64) error {
	result := db.Model(&models.User{}).Where("id = ?", userID).
		Update("current_storage_used_mb", valueMB)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) ListAll(db *gorm.DB) ([]models.User, error) {
	var users []models.User
	err := db.Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) ListBySubscription(db *gorm.DB, sub models.SubscriptionType) ([]models.User, error) {
	var users []models.User
	err := db.Where("subscription_type = ?", sub).Find(&users).Error
	return users, err
}

func (r *UserRepositoryImpl) Count(db *gorm.DB) (int64, error) {
	var count int64
	err := db.Model(&models.User{}).Count(&count).Error
	return count, err
}

func (r *UserRepositoryImpl) CountByRole(db *gorm.DB) (map[models.UserRole]int64, error) {
	var rows []struct {
		Role  models.UserRole
		Count int64
	}
	err := db.Model(&models.User{}).
		Select("role, COUNT(*) as count").
		Group("role").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.UserRole]int64, len(rows))
	for _, row := range rows {
		counts[row.Role] = row.Count
	}
	return counts, nil
}

func (r *UserRepositoryImpl) CountBySubscription(db *gorm.DB) (map[models.SubscriptionType]int64, error) {
	var rows []struct {
		SubscriptionType models.SubscriptionType
		Count            int64
	}
	err := db.Model(&models.User{}).
		Select("subscription_type, COUNT(*) as count").
		Group("subscription_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[models.SubscriptionType]int64, len(rows))
	for _, row := range rows {
		counts[row.SubscriptionType] = row.Count
	}
	return counts, nil
}
