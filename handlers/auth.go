package handlers

import (
	"net/http"

	"shopapi/middleware"
	"shopapi/models"
	"shopapi/services"
	"shopapi/utils"

	"github.com/gin-gonic/gin"
)

// RegisterUser creates a new account and signs the user in.
func RegisterUser(c *gin.Context) {
	var input models.UserRegister
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "invalid_input"})
		return
	}

	user, err := services.RegisterUser(db(c), input)
	if err != nil {
		respondError(c, err)
		return
	}

	access, refresh, err := issueTokens(c, user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":    user,
		"access":  access,
		"refresh": refresh,
	})
}

// LoginUser authenticates by email and password.
func LoginUser(c *gin.Context) {
	var input models.UserLogin
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "invalid_input"})
		return
	}

	user, err := services.AuthenticateUser(db(c), input.Email, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	access, refresh, err := issueTokens(c, user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    user,
		"access":  access,
		"refresh": refresh,
	})
}

// RefreshToken exchanges a refresh token for a new access/refresh pair.
func RefreshToken(c *gin.Context) {
	var input struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "invalid_input"})
		return
	}

	fresh, user, err := services.RotateRefreshToken(db(c), input.Refresh)
	if err != nil {
		respondError(c, err)
		return
	}

	access, err := utils.GenerateAccessToken(user.ID, user.Email, user.IsStaff)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access":  access,
		"refresh": fresh.Token,
	})
}

// Me returns the authenticated user's profile.
func Me(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var user models.User
	if err := db(c).First(&user, userID).Error; err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// UpdateMe patches profile fields.
func UpdateMe(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var input models.UserUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "kind": "invalid_input"})
		return
	}

	updates := map[string]interface{}{}
	if input.Username != nil {
		updates["username"] = *input.Username
	}
	if input.PhoneNumber != nil {
		updates["phone_number"] = *input.PhoneNumber
	}
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.Avatar != nil {
		updates["avatar"] = *input.Avatar
	}

	var user models.User
	if err := db(c).First(&user, userID).Error; err != nil {
		respondError(c, err)
		return
	}
	if len(updates) > 0 {
		if err := db(c).Model(&user).Updates(updates).Error; err != nil {
			respondError(c, err)
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// LogoutUser revokes the presented refresh token.
func LogoutUser(c *gin.Context) {
	userID, _ := middleware.UserID(c)

	var input struct {
		Refresh string `json:"refresh" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "refresh token required", "kind": "invalid_input"})
		return
	}

	if err := services.RevokeRefreshToken(db(c), userID, input.Refresh); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func issueTokens(c *gin.Context, user *models.User) (string, string, error) {
	access, err := utils.GenerateAccessToken(user.ID, user.Email, user.IsStaff)
	if err != nil {
		return "", "", err
	}
	refresh, err := services.IssueRefreshToken(db(c), user.ID)
	if err != nil {
		return "", "", err
	}
	return access, refresh.Token, nil
}
