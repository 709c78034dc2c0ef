package services

import (
	"testing"

	"shopapi/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	// A single connection keeps every query on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Brand{},
		&models.Size{},
		&models.Product{},
		&models.ProductImage{},
		&models.Storage{},
		&models.Basket{},
		&models.BasketItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Favorite{},
		&models.Banner{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Email: email, Password: "x", IsActive: true}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createProduct(t *testing.T, db *gorm.DB, title, price string) models.Product {
	t.Helper()
	product := models.Product{
		Title:    title,
		Category: "shoes",
		NewPrice: decimal.RequireFromString(price),
		IsActive: true,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func createSize(t *testing.T, db *gorm.DB, title string, order int) models.Size {
	t.Helper()
	size := models.Size{Title: title, Order: order}
	require.NoError(t, db.Create(&size).Error)
	return size
}

func setStock(t *testing.T, db *gorm.DB, productID, sizeID uint, quantity int) models.Storage {
	t.Helper()
	stock := models.Storage{ProductID: productID, SizeID: sizeID, Quantity: quantity}
	require.NoError(t, db.Create(&stock).Error)
	return stock
}

func stockQuantity(t *testing.T, db *gorm.DB, productID, sizeID uint) int {
	t.Helper()
	var stock models.Storage
	require.NoError(t, db.Where("product_id = ? AND size_id = ?", productID, sizeID).First(&stock).Error)
	return stock.Quantity
}

func basketLineCount(t *testing.T, db *gorm.DB, basketID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&models.BasketItem{}).Where("basket_id = ?", basketID).Count(&count).Error)
	return count
}
