package middleware

import (
	"net/http"
	"strings"

	"shopapi/utils"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware handles authentication check
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := claimsFromHeader(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing token", "kind": "unauthorized"})
			c.Abort()
			return
		}

		c.Set("userID", claims.UserID)
		c.Set("isStaff", claims.IsStaff)
		c.Next()
	}
}

// OptionalAuth resolves the user when a valid bearer token is present but
// lets anonymous requests through. Public product endpoints use it to fill
// is_favorite.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := claimsFromHeader(c); ok {
			c.Set("userID", claims.UserID)
			c.Set("isStaff", claims.IsStaff)
		}
		c.Next()
	}
}

// StaffRequired ensures the authenticated user is staff.
func StaffRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		isStaff, exists := c.Get("isStaff")
		if !exists || isStaff != true {
			c.JSON(http.StatusForbidden, gin.H{"error": "staff privileges required", "kind": "forbidden"})
			c.Abort()
			return
		}
		c.Next()
	}
}

func claimsFromHeader(c *gin.Context) (*utils.JWTClaim, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, false
	}

	// Extract token from "Bearer <token>"
	splitToken := strings.Split(authHeader, "Bearer ")
	if len(splitToken) != 2 {
		return nil, false
	}

	claims, err := utils.ValidateToken(splitToken[1])
	if err != nil {
		return nil, false
	}
	return claims, true
}

// UserID returns the authenticated user's id from the request context.
func UserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
