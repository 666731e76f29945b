package repositories

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"artfolio_backend/internal/models"
)

var (
	ErrPermissionNotFound = errors.New("item permission not found")
)

type PermissionRepository interface {
	// FindByUserAndItem returns the single row for the pair regardless of
	// its active/expired state; callers decide what the state means.
	FindByUserAndItem(db *gorm.DB, userID, itemID string) (*models.ItemPermission, error)

	// Upsert writes the grant against the (user_id, item_id) unique index,
	// reviving any prior revoked or expired row.
	Upsert(db *gorm.DB, perm *models.ItemPermission) error

	// InsertIgnoreConflict inserts only if no row exists for the pair.
	InsertIgnoreConflict(db *gorm.DB, perm *models.ItemPermission) error

	Deactivate(db *gorm.DB, itemID, userID string) error
	ListActiveByItem(db *gorm.DB, itemID string) ([]models.ItemPermission, error)
	DeleteByItem(db *gorm.DB, itemID string) error
	DeleteByUser(db *gorm.DB, userID string) error
}

type PermissionRepositoryImpl struct{}

func NewPermissionRepository() PermissionRepository {
	return &PermissionRepositoryImpl{}
}

func (r *PermissionRepositoryImpl) FindByUserAndItem(db *gorm.DB, userID, itemID string) (*models.ItemPermission, error) {
	var perm models.ItemPermission
	err := db.First(&perm, "user_id = ? AND item_id = ?", userID, itemID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPermissionNotFound
		}
		return nil, err
	}
	return &perm, nil
}

func (r *PermissionRepositoryImpl) Upsert(db *gorm.DB, perm *models.ItemPermission) error {
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "item_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"ownership_type",
			"permission_level",
			"granted_by",
			"granted_at",
			"expires_at",
			"is_active",
			"updated_at",
		}),
	}).Create(perm).Error
}

func (r *PermissionRepositoryImpl) InsertIgnoreConflict(db *gorm.DB, perm *models.ItemPermission) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "item_id"}},
		DoNothing: true,
	}).Create(perm).Error
}

func (r *PermissionRepositoryImpl) Deactivate(db *gorm.DB, itemID, userID string) error {
	result := db.Model(&models.ItemPermission{}).
		Where("item_id = ? AND user_id = ?", itemID, userID).
		Update("is_active", false)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPermissionNotFound
	}
	return nil
}

// ListActiveByItem returns all undeleted grants with is_active set, user
// preloaded for the collaborator view. Expiry is a read-time state and is
// applied by the service, not here.
func (r *PermissionRepositoryImpl) ListActiveByItem(db *gorm.DB, itemID string) ([]models.ItemPermission, error) {
	var perms []models.ItemPermission
	err := db.Preload("User").
		Where("item_id = ? AND is_active = ?", itemID, true).
		Order("granted_at ASC").
		Find(&perms).Error
	return perms, err
}

func (r *PermissionRepositoryImpl) DeleteByItem(db *gorm.DB, itemID string) error {
	return db.Delete(&models.ItemPermission{}, "item_id = ?", itemID).Error
}

func (r *PermissionRepositoryImpl) DeleteByUser(db *gorm.DB, userID string) error {
	return db.Delete(&models.ItemPermission{}, "user_id = ?", userID).Error
}
