package services

import (
	"errors"

	"shopapi/models"

	"gorm.io/gorm"
)

func orderPreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("order_items.id") }).
		Preload("Items.Product").
		Preload("Items.Product.Brands").
		Preload("Items.Size")
}

// ListOrders returns the user's orders, newest first.
func ListOrders(db *gorm.DB, userID uint) ([]models.Order, error) {
	var orders []models.Order
	err := orderPreloads(db).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	return orders, err
}

// GetOrder returns one of the user's orders with its items.
func GetOrder(db *gorm.DB, userID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := orderPreloads(db).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, &NotFoundError{Resource: "order"}
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListAllOrders returns every order, newest first. Admin only.
func ListAllOrders(db *gorm.DB) ([]models.Order, error) {
	var orders []models.Order
	err := orderPreloads(db).Order("created_at DESC, id DESC").Find(&orders).Error
	return orders, err
}

// UpdateOrderStatus moves an order along the status machine. Cancelling
// puts the reserved stock back for every line that has a stock row.
func UpdateOrderStatus(db *gorm.DB, orderID uint, next models.OrderStatus) (*models.Order, error) {
	if !next.Valid() {
		return nil, &InvalidInputError{Detail: "unknown order status: " + string(next)}
	}

	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		err := tx.Preload("Items").First(&order, orderID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "order"}
		}
		if err != nil {
			return err
		}

		if !order.Status.CanTransitionTo(next) {
			return &InvalidTransitionError{From: string(order.Status), To: string(next)}
		}

		if next == models.OrderStatusCancelled {
			if err := restoreStock(tx, order.Items); err != nil {
				return err
			}
		}

		return tx.Model(&order).Update("status", next).Error
	})
	if err != nil {
		return nil, err
	}
	order.Status = next
	return &order, nil
}

// restoreStock returns cancelled quantities to storage. Lines without a
// stock row were never decremented, so the zero-row update is a no-op.
func restoreStock(tx *gorm.DB, items []models.OrderItem) error {
	for _, item := range items {
		if item.SizeID == nil {
			continue
		}
		err := tx.Model(&models.Storage{}).
			Where("product_id = ? AND size_id = ?", item.ProductID, *item.SizeID).
			Update("quantity", gorm.Expr("quantity + ?", item.Quantity)).Error
		if err != nil {
			return err
		}
	}
	return nil
}
