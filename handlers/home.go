package handlers

import (
	"net/http"
	"strconv"

	"shopapi/models"
	"shopapi/services"

	"github.com/gin-gonic/gin"
)

// GetHeadBanner returns the latest active hero banner.
func GetHeadBanner(c *gin.Context) {
	banners, err := bannersByLocation(c, models.BannerLocationHead, 1)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"banners": banners})
}

// GetMiddleBanners returns active mid-page banners.
func GetMiddleBanners(c *gin.Context) {
	banners, err := bannersByLocation(c, models.BannerLocationMiddle, limitParam(c, "limit", 10))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"banners": banners})
}

// GetCatalogBanners returns active catalog-block banners.
func GetCatalogBanners(c *gin.Context) {
	banners, err := bannersByLocation(c, models.BannerLocationCatalog, limitParam(c, "limit", 10))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"banners": banners})
}

// GetPopularBrands returns brands ordered by catalog presence.
func GetPopularBrands(c *gin.Context) {
	brands, err := popularBrands(c, limitParam(c, "limit", 4))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"brands": brands})
}

// GetBestsellers returns the most-favorited active products.
func GetBestsellers(c *gin.Context) {
	products, err := bestsellerProducts(c, limitParam(c, "limit", 12))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": productViews(c, products)})
}

// GetDiscounts returns active discounted products, biggest discount first.
func GetDiscounts(c *gin.Context) {
	products, err := discountedProducts(c, limitParam(c, "limit", 12))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": productViews(c, products)})
}

// GetHomeIndex returns every homepage block in one payload.
func GetHomeIndex(c *gin.Context) {
	headBanner, err := bannersByLocation(c, models.BannerLocationHead, 1)
	if err != nil {
		respondError(c, err)
		return
	}
	brands, err := popularBrands(c, limitParam(c, "brands", 4))
	if err != nil {
		respondError(c, err)
		return
	}
	bestsellers, err := bestsellerProducts(c, limitParam(c, "best", 12))
	if err != nil {
		respondError(c, err)
		return
	}
	discounts, err := discountedProducts(c, limitParam(c, "disc", 12))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"head_banner": headBanner,
		"brands":      brands,
		"bestsellers": productViews(c, bestsellers),
		"discounts":   productViews(c, discounts),
	})
}

// CreateBanner adds a homepage banner. Staff only.
func CreateBanner(c *gin.Context) {
	var input models.BannerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "invalid_input"})
		return
	}

	banner := models.Banner{
		Title:       input.Title,
		Description: input.Description,
		Cover:       input.Cover,
		Location:    input.Location,
		IsActive:    true,
	}
	if input.IsActive != nil {
		banner.IsActive = *input.IsActive
	}
	if err := db(c).Create(&banner).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"banner": banner})
}

// DeleteBanner removes a banner. Staff only.
func DeleteBanner(c *gin.Context) {
	bannerID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid banner ID", "kind": "invalid_input"})
		return
	}

	result := db(c).Delete(&models.Banner{}, bannerID)
	if result.Error != nil {
		respondError(c, result.Error)
		return
	}
	if result.RowsAffected == 0 {
		respondError(c, &services.NotFoundError{Resource: "banner"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "banner deleted"})
}

func bannersByLocation(c *gin.Context, location string, limit int) ([]models.Banner, error) {
	banners := []models.Banner{}
	err := db(c).
		Where("is_active = ? AND location = ?", true, location).
		Order("id DESC").
		Limit(limit).
		Find(&banners).Error
	return banners, err
}

func popularBrands(c *gin.Context, limit int) ([]models.BrandView, error) {
	brands := []models.BrandView{}
	err := db(c).Model(&models.Brand{}).
		Select("brands.id, brands.title, brands.logo, COUNT(product_brands.product_id) AS product_count").
		Joins("LEFT JOIN product_brands ON product_brands.brand_id = brands.id").
		Group("brands.id").
		Order("product_count DESC, brands.title ASC").
		Limit(limit).
		Scan(&brands).Error
	return brands, err
}

func bestsellerProducts(c *gin.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := db(c).Model(&models.Product{}).
		Select("products.*, COUNT(favorites.id) AS fav_count").
		Joins("LEFT JOIN favorites ON favorites.product_id = products.id").
		Where("products.is_active = ?", true).
		Group("products.id").
		Order("fav_count DESC, products.created_at DESC").
		Limit(limit).
		Preload("Brands").
		Find(&products).Error
	return products, err
}

func discountedProducts(c *gin.Context, limit int) ([]models.Product, error) {
	var products []models.Product
	err := db(c).
		Preload("Brands").
		Where("is_active = ? AND old_price IS NOT NULL AND new_price < old_price", true).
		Order("(old_price - new_price) DESC, created_at DESC").
		Limit(limit).
		Find(&products).Error
	return products, err
}
