package handlers

import (
	"net/http"
	"strconv"

	"shopapi/middleware"
	"shopapi/models"
	"shopapi/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetAllProducts lists active products with optional filters:
// min_price, max_price, category, brand, limit, offset.
func GetAllProducts(c *gin.Context) {
	query := db(c).Model(&models.Product{}).Preload("Brands")

	// Inactive products stay hidden unless explicitly requested.
	if v := c.Query("is_active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid is_active", "kind": "invalid_input"})
			return
		}
		query = query.Where("products.is_active = ?", active)
	} else {
		query = query.Where("products.is_active = ?", true)
	}

	if v := c.Query("min_price"); v != "" {
		min, err := decimal.NewFromString(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_price", "kind": "invalid_input"})
			return
		}
		query = query.Where("products.new_price >= ?", min)
	}
	if v := c.Query("max_price"); v != "" {
		max, err := decimal.NewFromString(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_price", "kind": "invalid_input"})
			return
		}
		query = query.Where("products.new_price <= ?", max)
	}
	if v := c.Query("category"); v != "" {
		query = query.Where("products.category = ?", v)
	}
	if v := c.Query("brand"); v != "" {
		brandID, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid brand", "kind": "invalid_input"})
			return
		}
		query = query.
			Joins("JOIN product_brands ON product_brands.product_id = products.id").
			Where("product_brands.brand_id = ?", brandID)
	}

	var products []models.Product
	err := query.
		Order("products.created_at DESC, products.id DESC").
		Limit(limitParam(c, "limit", 50)).
		Offset(limitParam(c, "offset", 0)).
		Find(&products).Error
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": productViews(c, products)})
}

// GetProduct returns the product detail: gallery, per-size availability and
// similar products. Sizes without a stock row show quantity 0 here even
// though checkout treats them as unconstrained.
func GetProduct(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID", "kind": "invalid_input"})
		return
	}

	var product models.Product
	err = db(c).
		Preload("Brands").
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("product_images.\"order\", product_images.id") }).
		Where("is_active = ?", true).
		First(&product, productID).Error
	if err != nil {
		respondError(c, &services.NotFoundError{Resource: "product"})
		return
	}

	var sizes []models.Size
	if err := db(c).Order("\"order\", title").Find(&sizes).Error; err != nil {
		respondError(c, err)
		return
	}
	var stocks []models.Storage
	if err := db(c).Where("product_id = ?", product.ID).Find(&stocks).Error; err != nil {
		respondError(c, err)
		return
	}
	stockMap := make(map[uint]int, len(stocks))
	for _, s := range stocks {
		stockMap[s.SizeID] = s.Quantity
	}
	sizeMap := make(map[string]models.SizeAvailability, len(sizes))
	for _, size := range sizes {
		qty := stockMap[size.ID]
		sizeMap[size.Title] = models.SizeAvailability{Available: qty > 0, Quantity: qty}
	}

	var similar []models.Product
	err = db(c).
		Preload("Brands").
		Where("is_active = ? AND category = ? AND id <> ?", true, product.Category, product.ID).
		Order("created_at DESC, id DESC").
		Limit(limitParam(c, "similar", 8)).
		Find(&similar).Error
	if err != nil {
		respondError(c, err)
		return
	}

	isFavorite := false
	if set := favoriteSet(c, []uint{product.ID}); set != nil {
		isFavorite = set[product.ID]
	}

	view := models.ProductDetailView{
		ProductView: models.NewProductView(product, isFavorite),
		Gallery:     product.Images,
		Sizes:       sizeMap,
		Similar:     productViews(c, similar),
	}
	if view.Gallery == nil {
		view.Gallery = []models.ProductImage{}
	}

	c.JSON(http.StatusOK, gin.H{"product": view})
}

// CreateProduct adds a new product. Staff only.
func CreateProduct(c *gin.Context) {
	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "invalid_input"})
		return
	}

	product, err := services.CreateProduct(db(c), input)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "product created", "product_id": product.ID})
}

// UpdateProduct updates a product. Staff only.
func UpdateProduct(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID", "kind": "invalid_input"})
		return
	}

	var input models.ProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "invalid_input"})
		return
	}

	if _, err := services.UpdateProduct(db(c), uint(productID), input); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product updated"})
}

// DeleteProduct removes a product unless basket or order lines still
// reference it. Staff only.
func DeleteProduct(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID", "kind": "invalid_input"})
		return
	}

	if err := services.DeleteProduct(db(c), uint(productID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

// productViews projects products, resolving is_favorite for the caller.
func productViews(c *gin.Context, products []models.Product) []models.ProductView {
	ids := make([]uint, 0, len(products))
	for _, p := range products {
		ids = append(ids, p.ID)
	}
	set := favoriteSet(c, ids)

	views := []models.ProductView{}
	for _, p := range products {
		views = append(views, models.NewProductView(p, set[p.ID]))
	}
	return views
}

// favoriteSet returns the caller's favorites among the given products, or
// nil for anonymous requests.
func favoriteSet(c *gin.Context, productIDs []uint) map[uint]bool {
	userID, ok := middleware.UserID(c)
	if !ok || len(productIDs) == 0 {
		return nil
	}

	var favorites []models.Favorite
	if err := db(c).Where("user_id = ? AND product_id IN ?", userID, productIDs).Find(&favorites).Error; err != nil {
		return nil
	}
	set := make(map[uint]bool, len(favorites))
	for _, f := range favorites {
		set[f.ProductID] = true
	}
	return set
}

// limitParam parses a non-negative integer query parameter.
func limitParam(c *gin.Context, name string, fallback int) int {
	v := c.Query(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
