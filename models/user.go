package models

import (
	"time"
)

// User represents an account; login is by email.
type User struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Email       string    `gorm:"size:254;uniqueIndex;not null" json:"email"`
	Password    string    `gorm:"not null" json:"-"` // bcrypt hash, never serialized
	Username    string    `gorm:"size:150" json:"username"`
	PhoneNumber string    `gorm:"size:32" json:"phone_number"`
	Address     string    `gorm:"size:255" json:"address"`
	Avatar      string    `gorm:"size:255" json:"avatar"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
	IsStaff     bool      `gorm:"default:false" json:"is_staff"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// RefreshToken is an opaque, revocable token backing /auth/refresh and logout.
type RefreshToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"size:36;uniqueIndex;not null" json:"token"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
	CreatedAt time.Time `json:"created_at"`
}

// Active reports whether the token can still be exchanged.
func (t *RefreshToken) Active(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiresAt)
}

// UserRegister holds data needed for registration
type UserRegister struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Username    string `json:"username"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// UserLogin holds data needed for login
type UserLogin struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserUpdate holds the profile fields a user may change on /auth/me.
type UserUpdate struct {
	Username    *string `json:"username"`
	PhoneNumber *string `json:"phone_number"`
	Address     *string `json:"address"`
	Avatar      *string `json:"avatar"`
}
