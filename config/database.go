package config

import (
	"fmt"
	"log"
	"os"

	"shopapi/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Getenv returns the environment variable or a fallback for local development.
func Getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// InitDB connects to PostgreSQL and migrates the schema.
func InitDB() {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		Getenv("DB_HOST", "localhost"),
		Getenv("DB_USER", "shopapi"),
		Getenv("DB_PASSWORD", "shopapi"),
		Getenv("DB_NAME", "shopapi"),
		Getenv("DB_PORT", "5432"),
		Getenv("DB_SSLMODE", "disable"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	log.Println("database connection established")
}

// Migrate creates or updates the tables for all models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
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
	)
}
