package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Read views are built by explicit projection functions instead of reshaping
// rows at serialization time. Computed fields (discounts, totals, counts)
// live here; anything that needs extra queries (is_favorite, similar
// products, size availability) is resolved by the caller and passed in.

// ProductView is the product shape shared by list and block endpoints.
type ProductView struct {
	ID             uint             `json:"id"`
	Title          string           `json:"title"`
	Category       string           `json:"category"`
	Image          string           `json:"image"`
	OldPrice       *decimal.Decimal `json:"old_price"`
	NewPrice       decimal.Decimal  `json:"new_price"`
	Description    string           `json:"description"`
	IsActive       bool             `json:"is_active"`
	CreatedAt      time.Time        `json:"created_at"`
	Brands         []Brand          `json:"brands"`
	HasDiscount    bool             `json:"has_discount"`
	DiscountAmount *decimal.Decimal `json:"discount_amount"`
	IsFavorite     bool             `json:"is_favorite"`
}

// NewProductView projects a product row; isFavorite is resolved by the
// caller (false for anonymous requests).
func NewProductView(p Product, isFavorite bool) ProductView {
	brands := p.Brands
	if brands == nil {
		brands = []Brand{}
	}
	return ProductView{
		ID:             p.ID,
		Title:          p.Title,
		Category:       p.Category,
		Image:          p.Image,
		OldPrice:       p.OldPrice,
		NewPrice:       p.NewPrice,
		Description:    p.Description,
		IsActive:       p.IsActive,
		CreatedAt:      p.CreatedAt,
		Brands:         brands,
		HasDiscount:    p.HasDiscount(),
		DiscountAmount: p.DiscountAmount(),
		IsFavorite:     isFavorite,
	}
}

// SizeAvailability is one entry of the product-detail size map.
type SizeAvailability struct {
	Available bool `json:"available"`
	Quantity  int  `json:"quantity"`
}

// ProductDetailView extends ProductView with the gallery, per-size
// availability and similar products.
type ProductDetailView struct {
	ProductView
	Gallery []ProductImage              `json:"gallery"`
	Sizes   map[string]SizeAvailability `json:"sizes"`
	Similar []ProductView               `json:"similar"`
}

// BasketItemView is one basket line with its live line total.
type BasketItemView struct {
	ID        uint            `json:"id"`
	Product   ProductView     `json:"product"`
	Size      *string         `json:"size"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// BasketView is the full basket with totals derived from current prices.
type BasketView struct {
	ID         uint             `json:"id"`
	UserID     uint             `json:"user_id"`
	CreatedAt  time.Time        `json:"created_at"`
	Items      []BasketItemView `json:"items"`
	TotalItems int              `json:"total_items"`
	Subtotal   decimal.Decimal  `json:"subtotal"`
}

// NewBasketView projects a basket with preloaded items. Line totals and the
// subtotal are evaluated fresh against current product prices on every call.
func NewBasketView(b Basket) BasketView {
	view := BasketView{
		ID:        b.ID,
		UserID:    b.UserID,
		CreatedAt: b.CreatedAt,
		Items:     []BasketItemView{},
		Subtotal:  decimal.Zero,
	}
	for _, item := range b.Items {
		lineTotal := item.Product.NewPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		var sizeTitle *string
		if item.Size != nil {
			sizeTitle = &item.Size.Title
		}
		view.Items = append(view.Items, BasketItemView{
			ID:        item.ID,
			Product:   NewProductView(item.Product, false),
			Size:      sizeTitle,
			Quantity:  item.Quantity,
			LineTotal: lineTotal,
		})
		view.TotalItems += item.Quantity
		view.Subtotal = view.Subtotal.Add(lineTotal)
	}
	return view
}

// OrderItemView is one order line with its frozen snapshot price.
type OrderItemView struct {
	ID        uint            `json:"id"`
	Product   ProductView     `json:"product"`
	Size      *string         `json:"size"`
	Quantity  int             `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// OrderView is the order shape for list responses.
type OrderView struct {
	ID         uint            `json:"id"`
	Status     OrderStatus     `json:"status"`
	TotalPrice decimal.Decimal `json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	Items      []OrderItemView `json:"items"`
}

// OrderDetailView adds the summed item count.
type OrderDetailView struct {
	OrderView
	TotalItems int `json:"total_items"`
}

// NewOrderView projects an order with preloaded items.
func NewOrderView(o Order) OrderView {
	view := OrderView{
		ID:         o.ID,
		Status:     o.Status,
		TotalPrice: o.TotalPrice,
		CreatedAt:  o.CreatedAt,
		Items:      []OrderItemView{},
	}
	for _, item := range o.Items {
		var sizeTitle *string
		if item.Size != nil {
			sizeTitle = &item.Size.Title
		}
		view.Items = append(view.Items, OrderItemView{
			ID:        item.ID,
			Product:   NewProductView(item.Product, false),
			Size:      sizeTitle,
			Quantity:  item.Quantity,
			Price:     item.Price,
			LineTotal: item.LineTotal(),
		})
	}
	return view
}

// NewOrderDetailView projects an order for the detail endpoint.
func NewOrderDetailView(o Order) OrderDetailView {
	view := OrderDetailView{OrderView: NewOrderView(o)}
	for _, item := range o.Items {
		view.TotalItems += item.Quantity
	}
	return view
}

// BrandView is a brand with its product count for the popular-brands block.
type BrandView struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	Logo         string `json:"logo"`
	ProductCount int    `json:"product_count"`
}
