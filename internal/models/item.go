package models

import "gorm.io/datatypes"

// PortfolioItem is a showcased artwork. UserID is the uploader and never
// changes; collaboration happens through ItemPermission grants on top.
type PortfolioItem struct {
	BaseModel
	UserID      string  `gorm:"not null;index" json:"user_id"`
	Title       string  `gorm:"not null" json:"title"`
	Description string  `json:"description"`
	Category    string  `gorm:"index" json:"category"`
	ImageURL    string  `json:"image_url"`
	FileSizeMB  float64 `gorm:"not null;default:0" json:"file_size_mb"`

	// Marketplace metadata: listing links keyed by marketplace name,
	// e.g. {"objkt": "https://objkt.com/asset/...", "opensea": "..."}.
	Marketplaces  datatypes.JSON `gorm:"type:jsonb" json:"marketplaces"`
	TezosContract string         `json:"tezos_contract"`
	TezosTokenID  string         `json:"tezos_token_id"`

	IsPublic  bool  `gorm:"default:true" json:"is_public"`
	ViewCount int64 `gorm:"not null;default:0" json:"view_count"`

	// Relations
	Owner       *User            `gorm:"foreignKey:UserID" json:"owner,omitempty"`
	Permissions []ItemPermission `gorm:"foreignKey:ItemID" json:"-"`
	Favorites   []Favorite       `gorm:"foreignKey:ItemID" json:"-"`
}

type Category struct {
	BaseModel
	Name         string `gorm:"uniqueIndex;not null" json:"name"`
	Description  string `json:"description"`
	DisplayOrder int    `gorm:"default:0" json:"display_order"`
}

type Favorite struct {
	BaseModel
	UserID string `gorm:"not null;index:idx_favorite_user_item,unique" json:"user_id"`
	ItemID string `gorm:"not null;index:idx_favorite_user_item,unique" json:"item_id"`

	Item *PortfolioItem `gorm:"foreignKey:ItemID" json:"item,omitempty"`
}
