package Models

import (
	"gorm.io/gorm"
)

// LoginAdmin is the single operator account. Restore deliberately never
// overwrites this table so credentials survive a backup round-trip.
type LoginAdmin struct {
	gorm.Model
	Username     string `json:"username" gorm:"size:100;uniqueIndex;not null"`
	PasswordHash []byte `json:"-" gorm:"not null"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
