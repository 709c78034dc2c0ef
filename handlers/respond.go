package handlers

import (
	"errors"
	"log"
	"net/http"

	"shopapi/config"
	"shopapi/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// db returns the shared connection bound to the request context so an
// aborted request rolls back any transaction it started.
func db(c *gin.Context) *gorm.DB {
	return config.DB.WithContext(c.Request.Context())
}

// respondError maps domain errors to structured 4xx responses. Everything
// else is an infrastructure failure and surfaces as a 500.
func respondError(c *gin.Context, err error) {
	var notFound *services.NotFoundError
	var invalidInput *services.InvalidInputError
	var insufficientStock *services.InsufficientStockError
	var invalidTransition *services.InvalidTransitionError
	var protected *services.ProtectedError

	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error(), "kind": "not_found"})
	case errors.As(err, &invalidInput):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "invalid_input"})
	case errors.Is(err, services.ErrEmptyBasket):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "empty_basket"})
	case errors.As(err, &insufficientStock):
		c.JSON(http.StatusConflict, gin.H{
			"error":     err.Error(),
			"kind":      "insufficient_stock",
			"product":   insufficientStock.Product,
			"available": insufficientStock.Available,
			"requested": insufficientStock.Requested,
		})
	case errors.As(err, &protected):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "kind": "protected"})
	case errors.As(err, &invalidTransition):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "invalid_transition"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "kind": "invalid_credentials"})
	case errors.Is(err, services.ErrInvalidRefreshToken):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "invalid_refresh_token"})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error", "kind": "internal"})
	}
}
