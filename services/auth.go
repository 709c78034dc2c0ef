package services

import (
	"errors"
	"time"

	"shopapi/models"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RefreshTokenTTL is how long a refresh token can be exchanged.
const RefreshTokenTTL = 7 * 24 * time.Hour

// ErrInvalidCredentials is returned for a bad email/password pair.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrInvalidRefreshToken is returned for an unknown, revoked or expired
// refresh token.
var ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")

// RegisterUser creates an account with a hashed password.
func RegisterUser(db *gorm.DB, input models.UserRegister) (*models.User, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:       input.Email,
		Password:    string(hashed),
		Username:    input.Username,
		PhoneNumber: input.PhoneNumber,
		Address:     input.Address,
		IsActive:    true,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, &InvalidInputError{Detail: "email already registered"}
		}
		return nil, err
	}
	return &user, nil
}

// AuthenticateUser checks an email/password pair.
func AuthenticateUser(db *gorm.DB, email, password string) (*models.User, error) {
	var user models.User
	err := db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

// IssueRefreshToken stores a fresh opaque token for the user.
func IssueRefreshToken(db *gorm.DB, userID uint) (*models.RefreshToken, error) {
	token := models.RefreshToken{
		Token:     uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(RefreshTokenTTL),
	}
	if err := db.Create(&token).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// RotateRefreshToken exchanges an active refresh token for a new one,
// revoking the old so each token works exactly once.
func RotateRefreshToken(db *gorm.DB, tokenValue string) (*models.RefreshToken, *models.User, error) {
	var fresh *models.RefreshToken
	var user models.User

	err := db.Transaction(func(tx *gorm.DB) error {
		var current models.RefreshToken
		err := tx.Where("token = ?", tokenValue).First(&current).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidRefreshToken
		}
		if err != nil {
			return err
		}
		if !current.Active(time.Now()) {
			return ErrInvalidRefreshToken
		}

		if err := tx.Model(&current).Update("revoked", true).Error; err != nil {
			return err
		}
		if err := tx.First(&user, current.UserID).Error; err != nil {
			return err
		}

		fresh, err = IssueRefreshToken(tx, current.UserID)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return fresh, &user, nil
}

// RevokeRefreshToken invalidates a refresh token on logout.
func RevokeRefreshToken(db *gorm.DB, userID uint, tokenValue string) error {
	var token models.RefreshToken
	err := db.Where("token = ? AND user_id = ?", tokenValue, userID).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrInvalidRefreshToken
	}
	if err != nil {
		return err
	}
	if !token.Active(time.Now()) {
		return ErrInvalidRefreshToken
	}
	return db.Model(&token).Update("revoked", true).Error
}
