package models

import (
	"time"
)

// Basket is a user's cart. Exactly one per user, created lazily; the unique
// index on UserID is what makes concurrent first access safe.
type Basket struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	UserID    uint         `gorm:"uniqueIndex;not null" json:"user_id"`
	User      User         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Items     []BasketItem `json:"items"`
	CreatedAt time.Time    `json:"created_at"`
}

// BasketItem is one (product, size, quantity) line. Adding the same product
// and size again increments Quantity instead of inserting a second line.
// Product and Size are delete-protected while referenced here.
type BasketItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BasketID  uint      `gorm:"not null;uniqueIndex:idx_basket_product_size" json:"basket_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_basket_product_size" json:"product_id"`
	Product   Product   `gorm:"constraint:OnDelete:RESTRICT" json:"product"`
	SizeID    *uint     `gorm:"uniqueIndex:idx_basket_product_size" json:"size_id"`
	Size      *Size     `gorm:"constraint:OnDelete:RESTRICT" json:"size,omitempty"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BasketItemInput holds data for adding items to the basket.
type BasketItemInput struct {
	ProductID uint  `json:"product_id" binding:"required"`
	SizeID    *uint `json:"size_id"`
	Quantity  int   `json:"quantity"`
}

// BasketItemRef identifies a line to remove.
type BasketItemRef struct {
	ProductID uint  `json:"product_id" binding:"required"`
	SizeID    *uint `json:"size_id"`
}
