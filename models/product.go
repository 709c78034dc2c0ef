package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Brand groups products; products may carry several brands.
type Brand struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	Title    string    `gorm:"size:120;uniqueIndex;not null" json:"title"`
	Logo     string    `gorm:"size:255" json:"logo"`
	Products []Product `gorm:"many2many:product_brands" json:"-"`
}

// Product represents a catalog item. Prices are exact decimals; OldPrice is
// set only when the product is discounted.
type Product struct {
	ID          uint             `gorm:"primaryKey" json:"id"`
	Title       string           `gorm:"size:200;index;not null" json:"title"`
	Category    string           `gorm:"size:100;index" json:"category"`
	Image       string           `gorm:"size:255" json:"image"`
	OldPrice    *decimal.Decimal `gorm:"type:decimal(10,2)" json:"old_price"`
	NewPrice    decimal.Decimal  `gorm:"type:decimal(10,2);not null" json:"new_price"`
	Description string           `gorm:"type:text" json:"description"`
	IsActive    bool             `gorm:"default:true;index" json:"is_active"`
	CreatedAt   time.Time        `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`

	Brands []Brand        `gorm:"many2many:product_brands" json:"brands"`
	Images []ProductImage `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Stocks []Storage      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

// HasDiscount reports whether the product is currently discounted.
func (p *Product) HasDiscount() bool {
	return p.OldPrice != nil && p.NewPrice.LessThan(*p.OldPrice)
}

// DiscountAmount returns old_price - new_price, or nil when not discounted.
func (p *Product) DiscountAmount() *decimal.Decimal {
	if !p.HasDiscount() {
		return nil
	}
	d := p.OldPrice.Sub(p.NewPrice)
	return &d
}

// ProductImage is an additional gallery image for the product carousel.
type ProductImage struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProductID uint   `gorm:"index;not null" json:"product_id"`
	Image     string `gorm:"size:255;not null" json:"image"`
	Order     int    `gorm:"default:0" json:"order"`
}

// ProductInput holds data for creating/updating a product.
type ProductInput struct {
	Title       string           `json:"title" binding:"required"`
	Category    string           `json:"category"`
	Image       string           `json:"image"`
	OldPrice    *decimal.Decimal `json:"old_price"`
	NewPrice    decimal.Decimal  `json:"new_price" binding:"required"`
	Description string           `json:"description"`
	IsActive    *bool            `json:"is_active"`
	BrandIDs    []uint           `json:"brand_ids"`
}
