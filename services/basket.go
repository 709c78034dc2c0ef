package services

import (
	"errors"

	"shopapi/models"

	"gorm.io/gorm"
)

// GetOrCreateBasket returns the user's single basket, creating an empty one
// on first access. The unique index on user_id resolves concurrent first
// calls: the loser of the insert race re-reads the winner's row.
func GetOrCreateBasket(db *gorm.DB, userID uint) (*models.Basket, error) {
	var basket models.Basket
	err := db.Where("user_id = ?", userID).First(&basket).Error
	if err == nil {
		return &basket, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	basket = models.Basket{UserID: userID}
	if err := db.Create(&basket).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := db.Where("user_id = ?", userID).First(&basket).Error; err != nil {
				return nil, err
			}
			return &basket, nil
		}
		return nil, err
	}
	return &basket, nil
}

// LoadBasket returns the user's basket with its lines in insertion order and
// products/sizes preloaded. A user without a basket gets an empty one.
func LoadBasket(db *gorm.DB, userID uint) (*models.Basket, error) {
	basket, err := GetOrCreateBasket(db, userID)
	if err != nil {
		return nil, err
	}
	err = db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("basket_items.id") }).
		Preload("Items.Product").
		Preload("Items.Product.Brands").
		Preload("Items.Size").
		First(basket, basket.ID).Error
	if err != nil {
		return nil, err
	}
	return basket, nil
}

// AddBasketItem adds quantity of (product, size) to the user's basket. An
// existing line for the pair is incremented instead of duplicated. Stock is
// deliberately not checked here; the basket may hold more than is in stock
// and checkout is the only place that enforces availability.
func AddBasketItem(db *gorm.DB, userID uint, input models.BasketItemInput) (*models.BasketItem, error) {
	if input.ProductID == 0 {
		return nil, &InvalidInputError{Detail: "product_id is required"}
	}
	if input.Quantity < 1 {
		return nil, &InvalidInputError{Detail: "quantity must be at least 1"}
	}

	var product models.Product
	if err := db.First(&product, input.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "product"}
		}
		return nil, err
	}
	if input.SizeID != nil {
		var size models.Size
		if err := db.First(&size, *input.SizeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &NotFoundError{Resource: "size"}
			}
			return nil, err
		}
	}

	basket, err := GetOrCreateBasket(db, userID)
	if err != nil {
		return nil, err
	}

	var item models.BasketItem
	err = db.Transaction(func(tx *gorm.DB) error {
		query := tx.Where("basket_id = ? AND product_id = ?", basket.ID, input.ProductID)
		if input.SizeID != nil {
			query = query.Where("size_id = ?", *input.SizeID)
		} else {
			query = query.Where("size_id IS NULL")
		}

		err := query.First(&item).Error
		if err == nil {
			return incrementLine(tx, &item, input.Quantity)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		item = models.BasketItem{
			BasketID:  basket.ID,
			ProductID: input.ProductID,
			SizeID:    input.SizeID,
			Quantity:  input.Quantity,
		}
		if err := tx.Create(&item).Error; err != nil {
			// Lost an insert race for the same line; fold into the winner.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				if err := query.First(&item).Error; err != nil {
					return err
				}
				return incrementLine(tx, &item, input.Quantity)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func incrementLine(tx *gorm.DB, item *models.BasketItem, by int) error {
	if err := tx.Model(item).
		Update("quantity", gorm.Expr("quantity + ?", by)).Error; err != nil {
		return err
	}
	return tx.First(item, item.ID).Error
}

// RemoveBasketItem deletes the basket line(s) for the product; when sizeID
// is given only the matching size line is removed. A miss is reported as
// not found rather than silently ignored.
func RemoveBasketItem(db *gorm.DB, userID uint, ref models.BasketItemRef) error {
	if ref.ProductID == 0 {
		return &InvalidInputError{Detail: "product_id is required"}
	}

	basket, err := GetOrCreateBasket(db, userID)
	if err != nil {
		return err
	}

	query := db.Where("basket_id = ? AND product_id = ?", basket.ID, ref.ProductID)
	if ref.SizeID != nil {
		query = query.Where("size_id = ?", *ref.SizeID)
	}

	result := query.Delete(&models.BasketItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: "basket item"}
	}
	return nil
}
