package entity

import (
	"gorm.io/gorm"
)

type Product struct {
	gorm.Model
	Name        string          `gorm:"not null" json:"name"`
	Description *string         `json:"description"`
	Price       int64           `gorm:"not null;check:price >= 0" json:"price"`
	Stock       int             `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	Category    ProductCategory `gorm:"size:16;not null;default:FOOD;index" json:"category"`
	ImageURL    *string         `json:"imageUrl"`
	IsActive    bool            `gorm:"not null;index" json:"isActive"`

	// soft-deleted products stay referenced by past order items
	OrderItems []OrderItem `json:"-"`
}
