package models

type User struct {
	BaseModel
	Username     string     `gorm:"uniqueIndex;not null" json:"username"`
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"not null" json:"-"`
	Role         UserRole   `gorm:"type:varchar(20);not null;default:'collector'" json:"role"`
	Status       UserStatus `gorm:"type:varchar(20);default:'active'" json:"status"`
	Bio          string     `json:"bio"`
	AvatarURL    string     `json:"avatar_url"`

	// Plan and quota fields. Nil caps mean unlimited.
	SubscriptionType     SubscriptionType `gorm:"type:varchar(20);not null;default:'free'" json:"subscription_type"`
	MaxItems             *int             `json:"max_items"`
	MaxStorageMB         *float64         `json:"max_storage_mb"`
	CurrentStorageUsedMB float64          `gorm:"not null;default:0" json:"current_storage_used_mb"`

	// Relations
	Items       []PortfolioItem  `gorm:"foreignKey:UserID" json:"-"`
	Permissions []ItemPermission `gorm:"foreignKey:UserID" json:"-"`
	Favorites   []Favorite       `gorm:"foreignKey:UserID" json:"-"`
}

// IsAdminRole reports whether the user's role carries the platform-wide
// override. Checked separately from per-item capability resolution.
func (u *User) IsAdminRole() bool {
	return u.Role == UserRoleAdmin || u.Role == UserRoleSuperadmin
}

// HasUnlimitedQuota reports whether plan or role collapses every quota cap,
// regardless of the numeric values stored on the row.
func (u *User) HasUnlimitedQuota() bool {
	return u.SubscriptionType == SubscriptionUnlimited ||
		u.SubscriptionType == SubscriptionPaid ||
		u.IsAdminRole()
}
