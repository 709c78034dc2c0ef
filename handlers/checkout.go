package handlers

import (
	"net/http"

	"shopapi/middleware"
	"shopapi/models"
	"shopapi/services"

	"github.com/gin-gonic/gin"
)

// Checkout converts the basket to an order. All-or-nothing: on any failure
// no order exists, no stock moved and the basket is untouched.
func Checkout(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	order, err := services.Checkout(db(c), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"order": models.NewOrderDetailView(*order)})
}
