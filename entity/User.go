package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         Role   `gorm:"size:16;not null;default:CASHIER" json:"role"`

	ProfileImage *string `json:"profileImage"`
	Theme        *string `json:"theme"`
	FontSize     *int    `json:"fontSize"`

	Orders []Order `json:"-"`
}
