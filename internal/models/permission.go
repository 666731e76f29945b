package models

import "time"

// ItemPermission is an explicit grant on a portfolio item. At most one row
// exists per (user, item) pair; grants and revokes upsert against the
// composite unique index instead of inserting duplicates.
//
// Revocation and expiry are both soft: the row survives for audit and its
// effective state is computed at read time by State.
type ItemPermission struct {
	BaseModel
	UserID          string          `gorm:"not null;index:idx_item_permission_user_item,unique" json:"user_id"`
	ItemID          string          `gorm:"not null;index:idx_item_permission_user_item,unique" json:"item_id"`
	OwnershipType   OwnershipType   `gorm:"type:varchar(20);not null" json:"ownership_type"`
	PermissionLevel PermissionLevel `gorm:"type:varchar(20);not null" json:"permission_level"`
	GrantedBy       string          `gorm:"not null" json:"granted_by"`
	GrantedAt       time.Time       `gorm:"not null" json:"granted_at"`
	ExpiresAt       *time.Time      `json:"expires_at"`
	IsActive        bool            `gorm:"not null;default:true" json:"is_active"`

	User *User          `gorm:"foreignKey:UserID" json:"-"`
	Item *PortfolioItem `gorm:"foreignKey:ItemID" json:"-"`
}

// State computes the effective grant state at the given instant. This is the
// single place where the is_active flag and expires_at are combined; every
// reader (resolver, collaborator listing) must go through it so the two never
// diverge on what "void" means.
func (p *ItemPermission) State(now time.Time) GrantState {
	if !p.IsActive {
		return GrantStateRevoked
	}
	if p.ExpiresAt != nil && p.ExpiresAt.Before(now) {
		return GrantStateExpired
	}
	return GrantStateActive
}

// ShareLink is a token-addressed public view of an item.
type ShareLink struct {
	BaseModel
	ItemID    string     `gorm:"not null;index" json:"item_id"`
	Token     string     `gorm:"uniqueIndex;not null" json:"token"`
	CreatedBy string     `gorm:"not null" json:"created_by"`
	ExpiresAt *time.Time `json:"expires_at"`
	IsActive  bool       `gorm:"not null;default:true" json:"is_active"`
	ViewCount int64      `gorm:"not null;default:0" json:"view_count"`

	Item *PortfolioItem `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}

// Usable reports whether the link still resolves.
func (l *ShareLink) Usable(now time.Time) bool {
	if !l.IsActive {
		return false
	}
	return l.ExpiresAt == nil || l.ExpiresAt.After(now)
}
