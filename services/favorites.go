package services

import (
	"errors"

	"shopapi/models"

	"gorm.io/gorm"
)

// ListFavorites returns the user's favorites with products preloaded.
func ListFavorites(db *gorm.DB, userID uint) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := db.
		Preload("Product").
		Preload("Product.Brands").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&favorites).Error
	return favorites, err
}

// AddFavorite marks a product as favorite. Adding twice returns the
// existing row with created=false; the unique (user, product) index keeps
// racing calls from creating two rows.
func AddFavorite(db *gorm.DB, userID, productID uint) (*models.Favorite, bool, error) {
	var product models.Product
	if err := db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, &NotFoundError{Resource: "product"}
		}
		return nil, false, err
	}

	var favorite models.Favorite
	err := db.Where("user_id = ? AND product_id = ?", userID, productID).First(&favorite).Error
	if err == nil {
		return &favorite, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	favorite = models.Favorite{UserID: userID, ProductID: productID}
	if err := db.Create(&favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if err := db.Where("user_id = ? AND product_id = ?", userID, productID).First(&favorite).Error; err != nil {
				return nil, false, err
			}
			return &favorite, false, nil
		}
		return nil, false, err
	}
	return &favorite, true, nil
}

// RemoveFavorite unmarks a product; removing an absent favorite is an error.
func RemoveFavorite(db *gorm.DB, userID, productID uint) error {
	result := db.Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return &NotFoundError{Resource: "favorite"}
	}
	return nil
}
