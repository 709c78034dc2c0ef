package handlers

import (
	"net/http"
	"strconv"

	"shopapi/middleware"
	"shopapi/models"
	"shopapi/services"

	"github.com/gin-gonic/gin"
)

// GetFavorites lists the user's favorite products.
func GetFavorites(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	favorites, err := services.ListFavorites(db(c), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	productIDs := []uint{}
	views := []models.ProductView{}
	for _, f := range favorites {
		productIDs = append(productIDs, f.ProductID)
		views = append(views, models.NewProductView(f.Product, true))
	}

	c.JSON(http.StatusOK, gin.H{
		"product_ids": productIDs,
		"products":    views,
	})
}

// AddFavorite marks a product as favorite; 201 when created, 200 when it
// already was one.
func AddFavorite(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID", "kind": "invalid_input"})
		return
	}

	userID, _ := middleware.UserID(c)

	favorite, created, err := services.AddFavorite(db(c), userID, uint(productID))
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{"favorite": favorite})
}

// RemoveFavorite unmarks a product; 404 when it was not a favorite.
func RemoveFavorite(c *gin.Context) {
	productID, err := strconv.Atoi(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID", "kind": "invalid_input"})
		return
	}

	userID, _ := middleware.UserID(c)

	if err := services.RemoveFavorite(db(c), userID, uint(productID)); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
