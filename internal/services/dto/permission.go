package dto

import (
	"time"

	"artfolio_backend/internal/models"
)

// UserPermissions is the resolved capability set one actor holds for one
// item. OwnershipType is empty when no ownership relation exists (anonymous
// viewers, users with no grant).
type UserPermissions struct {
	CanView             bool                   `json:"can_view"`
	CanEdit             bool                   `json:"can_edit"`
	CanDelete           bool                   `json:"can_delete"`
	CanShare            bool                   `json:"can_share"`
	CanGrantPermissions bool                   `json:"can_grant_permissions"`
	OwnershipType       models.OwnershipType   `json:"ownership_type,omitempty"`
	PermissionLevel     models.PermissionLevel `json:"permission_level"`
}

type GrantPermissionRequest struct {
	UserID          string     `json:"user_id" validate:"required,uuid4"`
	OwnershipType   string     `json:"ownership_type" validate:"required,oneof=owner collaborator"`
	PermissionLevel string     `json:"permission_level" validate:"required,is-permission-level"`
	ExpiresAt       *time.Time `json:"expires_at"`
}

// Collaborator is one row of the item's collaborator view.
type Collaborator struct {
	UserID          string                 `json:"user_id"`
	Username        string                 `json:"username"`
	OwnershipType   models.OwnershipType   `json:"ownership_type"`
	PermissionLevel models.PermissionLevel `json:"permission_level"`
	GrantedBy       string                 `json:"granted_by"`
	GrantedAt       time.Time              `json:"granted_at"`
	ExpiresAt       *time.Time             `json:"expires_at,omitempty"`
}
