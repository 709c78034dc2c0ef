package models

// Size is reference data (S, M, L, XL, ...), sorted by Order then Title.
type Size struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Title string `gorm:"size:16;uniqueIndex;not null" json:"title"`
	Order int    `gorm:"default:0" json:"order"`
}

// Storage is the available quantity for one (product, size) pair. It is the
// sole source of truth for sellable stock; only checkout decrements it.
type Storage struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ProductID uint    `gorm:"not null;uniqueIndex:idx_storage_product_size" json:"product_id"`
	Product   Product `json:"-"`
	SizeID    uint    `gorm:"not null;uniqueIndex:idx_storage_product_size" json:"size_id"`
	Size      Size    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Quantity  int     `gorm:"not null;default:0;check:quantity >= 0" json:"quantity"`
}
