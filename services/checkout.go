package services

import (
	"errors"

	"shopapi/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Checkout converts the user's basket into an order in one transaction:
// validate stock per line, snapshot prices into order items, decrement
// stock and clear the basket. Any failure rolls the whole thing back; a
// checkout never produces a partially-fulfilled order.
func Checkout(db *gorm.DB, userID uint) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var basket models.Basket
		err := tx.
			Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("basket_items.id") }).
			Preload("Items.Product").
			Where("user_id = ?", userID).
			First(&basket).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEmptyBasket
		}
		if err != nil {
			return err
		}
		if len(basket.Items) == 0 {
			return ErrEmptyBasket
		}

		order = models.Order{
			UserID:     userID,
			Status:     models.OrderStatusPending,
			TotalPrice: decimal.Zero,
		}
		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return err
		}

		total := decimal.Zero
		for _, line := range basket.Items {
			if err := reserveStock(tx, &line); err != nil {
				return err
			}

			// Price is snapshotted from the product's current new_price,
			// not the price when the line was added.
			item := models.OrderItem{
				OrderID:   order.ID,
				ProductID: line.ProductID,
				SizeID:    line.SizeID,
				Quantity:  line.Quantity,
				Price:     line.Product.NewPrice,
			}
			if err := tx.Omit(clause.Associations).Create(&item).Error; err != nil {
				return err
			}
			total = total.Add(item.LineTotal())
		}

		if err := tx.Model(&order).Update("total_price", total).Error; err != nil {
			return err
		}
		order.TotalPrice = total

		// The basket row itself stays for reuse; only its lines go.
		return tx.Where("basket_id = ?", basket.ID).Delete(&models.BasketItem{}).Error
	})
	if err != nil {
		return nil, err
	}

	err = db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id") }).
		Preload("Items.Product").
		Preload("Items.Product.Brands").
		Preload("Items.Size").
		First(&order, order.ID).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// reserveStock checks and decrements the stock row for one basket line. A
// pair without a stock row is treated as unconstrained and skipped. The row
// is locked on PostgreSQL; SQLite has no FOR UPDATE, so the quantity guard
// on the decrement is what keeps concurrent checkouts from overselling
// there.
func reserveStock(tx *gorm.DB, line *models.BasketItem) error {
	if line.SizeID == nil {
		return nil
	}

	query := tx.Where("product_id = ? AND size_id = ?", line.ProductID, *line.SizeID)
	if tx.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var stock models.Storage
	err := query.First(&stock).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	if stock.Quantity < line.Quantity {
		return &InsufficientStockError{
			Product:   line.Product.Title,
			Available: stock.Quantity,
			Requested: line.Quantity,
		}
	}

	result := tx.Model(&models.Storage{}).
		Where("id = ? AND quantity >= ?", stock.ID, line.Quantity).
		Update("quantity", gorm.Expr("quantity - ?", line.Quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &InsufficientStockError{
			Product:   line.Product.Title,
			Available: stock.Quantity,
			Requested: line.Quantity,
		}
	}
	return nil
}
