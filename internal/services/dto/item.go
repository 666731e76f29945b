package dto

import "time"

type CreateItemRequest struct {
	Title         string            `json:"title" validate:"required,max=200"`
	Description   string            `json:"description" validate:"max=2000"`
	Category      string            `json:"category" validate:"max=100"`
	ImageURL      string            `json:"image_url" validate:"omitempty,url"`
	FileSizeMB    float64           `json:"file_size_mb" validate:"gte=0"`
	Marketplaces  map[string]string `json:"marketplaces"`
	TezosContract string            `json:"tezos_contract"`
	TezosTokenID  string            `json:"tezos_token_id"`
	IsPublic      *bool             `json:"is_public"`
}

type UpdateItemRequest struct {
	Title         *string           `json:"title" validate:"omitempty,max=200"`
	Description   *string           `json:"description" validate:"omitempty,max=2000"`
	Category      *string           `json:"category" validate:"omitempty,max=100"`
	ImageURL      *string           `json:"image_url" validate:"omitempty,url"`
	Marketplaces  map[string]string `json:"marketplaces"`
	TezosContract *string           `json:"tezos_contract"`
	TezosTokenID  *string           `json:"tezos_token_id"`
	IsPublic      *bool             `json:"is_public"`
}

type CreateShareLinkRequest struct {
	ExpiresAt *time.Time `json:"expires_at"`
}

type CategoryRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	Description  string `json:"description" validate:"max=1000"`
	DisplayOrder int    `json:"display_order"`
}
