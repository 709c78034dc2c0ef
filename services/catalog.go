package services

import (
	"errors"

	"shopapi/models"

	"gorm.io/gorm"
)

// CreateProduct inserts a catalog item and attaches its brands.
func CreateProduct(db *gorm.DB, input models.ProductInput) (*models.Product, error) {
	brands, err := resolveBrands(db, input.BrandIDs)
	if err != nil {
		return nil, err
	}

	product := models.Product{
		Title:       input.Title,
		Category:    input.Category,
		Image:       input.Image,
		OldPrice:    input.OldPrice,
		NewPrice:    input.NewPrice,
		Description: input.Description,
		IsActive:    true,
		Brands:      brands,
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}
	if err := db.Create(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct replaces the mutable fields and the brand set.
func UpdateProduct(db *gorm.DB, productID uint, input models.ProductInput) (*models.Product, error) {
	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "product"}
		}
		return nil, err
	}

	brands, err := resolveBrands(db, input.BrandIDs)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"title":       input.Title,
		"category":    input.Category,
		"image":       input.Image,
		"old_price":   input.OldPrice,
		"new_price":   input.NewPrice,
		"description": input.Description,
	}
	if input.IsActive != nil {
		updates["is_active"] = *input.IsActive
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&product).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Model(&product).Association("Brands").Replace(brands)
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product together with its images, stock rows and
// favorites. Products referenced by basket or order lines are
// delete-protected; historical orders must keep resolvable references.
func DeleteProduct(db *gorm.DB, productID uint) error {
	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "product"}
		}
		return err
	}

	var refs int64
	if err := db.Model(&models.BasketItem{}).Where("product_id = ?", productID).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return &ProtectedError{Resource: "product", Detail: "referenced by basket lines"}
	}
	if err := db.Model(&models.OrderItem{}).Where("product_id = ?", productID).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return &ProtectedError{Resource: "product", Detail: "referenced by order lines"}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&models.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", productID).Delete(&models.Storage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", productID).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&product).Association("Brands").Clear(); err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
}

// DeleteSize removes a size unless basket or order lines reference it.
func DeleteSize(db *gorm.DB, sizeID uint) error {
	var size models.Size
	if err := db.First(&size, sizeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Resource: "size"}
		}
		return err
	}

	var refs int64
	if err := db.Model(&models.BasketItem{}).Where("size_id = ?", sizeID).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return &ProtectedError{Resource: "size", Detail: "referenced by basket lines"}
	}
	if err := db.Model(&models.OrderItem{}).Where("size_id = ?", sizeID).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return &ProtectedError{Resource: "size", Detail: "referenced by order lines"}
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("size_id = ?", sizeID).Delete(&models.Storage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&size).Error
	})
}

func resolveBrands(db *gorm.DB, ids []uint) ([]models.Brand, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var brands []models.Brand
	if err := db.Where("id IN ?", ids).Find(&brands).Error; err != nil {
		return nil, err
	}
	if len(brands) != len(ids) {
		return nil, &NotFoundError{Resource: "brand"}
	}
	return brands, nil
}
