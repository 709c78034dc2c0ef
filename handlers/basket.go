package handlers

import (
	"net/http"

	"shopapi/middleware"
	"shopapi/models"
	"shopapi/services"

	"github.com/gin-gonic/gin"
)

// GetBasket returns the user's basket with line totals and fresh subtotals.
func GetBasket(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	basket, err := services.LoadBasket(db(c), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"basket": models.NewBasketView(*basket)})
}

// AddToBasket adds a product/size line or increments an existing one.
func AddToBasket(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var input models.BasketItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "invalid_input"})
		return
	}

	item, err := services.AddBasketItem(db(c), userID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "added to basket", "item": item})
}

// RemoveFromBasket removes the matching line; missing lines are a 404.
func RemoveFromBasket(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var ref models.BasketItemRef
	if err := c.ShouldBindJSON(&ref); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "invalid_input"})
		return
	}

	if err := services.RemoveBasketItem(db(c), userID, ref); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "removed from basket"})
}
