package handlers

import (
	"net/http"

	"shopapi/config"

	"github.com/gin-gonic/gin"
)

// CheckConnection verifies the database is reachable.
func CheckConnection(c *gin.Context) {
	sqlDB, err := config.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "database connection failed", "kind": "internal"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
