package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"shopapi/models"
	"shopapi/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetSizes lists all sizes in display order.
func GetSizes(c *gin.Context) {
	sizes := []models.Size{}
	if err := db(c).Order("\"order\", title").Find(&sizes).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sizes": sizes})
}

// SizeInput is used for adding sizes.
type SizeInput struct {
	Title string `json:"title" binding:"required"`
	Order int    `json:"order"`
}

// CreateSize adds a size. Staff only.
func CreateSize(c *gin.Context) {
	var input SizeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "invalid_input"})
		return
	}

	size := models.Size{Title: input.Title, Order: input.Order}
	if err := db(c).Create(&size).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "size title already exists", "kind": "invalid_input"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"size": size})
}

// DeleteSize removes a size unless basket or order lines reference it.
// Staff only.
func DeleteSize(c *gin.Context) {
	sizeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid size ID", "kind": "invalid_input"})
		return
	}

	if err := services.DeleteSize(db(c), uint(sizeID)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "size deleted"})
}

// StorageInput sets the available quantity for one (product, size) pair.
type StorageInput struct {
	SizeID   uint `json:"size_id" binding:"required"`
	Quantity int  `json:"quantity"`
}

// SetStorage upserts a stock row for a product. Staff only; checkout is the
// only other writer and it only decrements.
func SetStorage(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID", "kind": "invalid_input"})
		return
	}

	var input StorageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "invalid_input"})
		return
	}
	if input.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity cannot be negative", "kind": "invalid_input"})
		return
	}

	var product models.Product
	if err := db(c).First(&product, productID).Error; err != nil {
		respondError(c, &services.NotFoundError{Resource: "product"})
		return
	}
	var size models.Size
	if err := db(c).First(&size, input.SizeID).Error; err != nil {
		respondError(c, &services.NotFoundError{Resource: "size"})
		return
	}

	var stock models.Storage
	err = db(c).Where("product_id = ? AND size_id = ?", product.ID, size.ID).First(&stock).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		stock = models.Storage{ProductID: product.ID, SizeID: size.ID, Quantity: input.Quantity}
		err = db(c).Create(&stock).Error
	case err == nil:
		err = db(c).Model(&stock).Update("quantity", input.Quantity).Error
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"storage": stock})
}
