package dto

import "artfolio_backend/internal/models"

// UserQuotaInfo reports current usage against plan limits. Nil caps mean
// unlimited and a nil remaining value mirrors that.
type UserQuotaInfo struct {
	UserID               string                  `json:"user_id"`
	Role                 models.UserRole         `json:"role"`
	SubscriptionType     models.SubscriptionType `json:"subscription_type"`
	MaxItems             *int                    `json:"max_items"`
	MaxStorageMB         *float64                `json:"max_storage_mb"`
	CurrentItems         int64                   `json:"current_items"`
	CurrentStorageUsedMB float64                 `json:"current_storage_used_mb"`
	ItemsRemaining       *int64                  `json:"items_remaining"`
	StorageRemainingMB   *float64                `json:"storage_remaining_mb"`
	IsAtItemLimit        bool                    `json:"is_at_item_limit"`
	IsAtStorageLimit     bool                    `json:"is_at_storage_limit"`
	CanUpload            bool                    `json:"can_upload"`
}

// UploadCheck is the prospective upload gate result.
type UploadCheck struct {
	CanUpload bool   `json:"can_upload"`
	Reason    string `json:"reason,omitempty"`
}

type SetQuotaRequest struct {
	MaxItems         *int     `json:"max_items"`
	MaxStorageMB     *float64 `json:"max_storage_mb"`
	SubscriptionType *string  `json:"subscription_type" validate:"omitempty,is-subscription-type"`
}

type RoleQuotaRequest struct {
	Role         string   `json:"role" validate:"required,is-user-role"`
	MaxItems     *int     `json:"max_items"`
	MaxStorageMB *float64 `json:"max_storage_mb"`
}

type QuotaStatistics struct {
	TotalUsers          int64   `json:"total_users"`
	UnlimitedUsers      int64   `json:"unlimited_users"`
	UsersAtItemLimit    int64   `json:"users_at_item_limit"`
	UsersAtStorageLimit int64   `json:"users_at_storage_limit"`
	TotalItems          int64   `json:"total_items"`
	TotalStorageUsedMB  float64 `json:"total_storage_used_mb"`
}

// NearLimitUser is one row of the free-plan usage report.
type NearLimitUser struct {
	UserID            string   `json:"user_id"`
	Username          string   `json:"username"`
	CurrentItems      int64    `json:"current_items"`
	MaxItems          *int     `json:"max_items"`
	ItemUsageRatio    float64  `json:"item_usage_ratio"`
	StorageUsedMB     float64  `json:"storage_used_mb"`
	MaxStorageMB      *float64 `json:"max_storage_mb"`
	StorageUsageRatio float64  `json:"storage_usage_ratio"`
}
