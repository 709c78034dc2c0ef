package models

import (
	"time"
)

// Banner placements on the storefront.
const (
	BannerLocationHead    = "head"    // hero block on top
	BannerLocationMiddle  = "middle"  // mid-page promo strip
	BannerLocationCatalog = "catalog" // catalog block
)

// Banner is a homepage content block.
type Banner struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Cover       string    `gorm:"size:255" json:"cover"`
	Location    string    `gorm:"size:20;index;default:head" json:"location"`
	IsActive    bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// BannerInput holds data for creating a banner.
type BannerInput struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Cover       string `json:"cover"`
	Location    string `json:"location" binding:"required,oneof=head middle catalog"`
	IsActive    *bool  `json:"is_active"`
}
