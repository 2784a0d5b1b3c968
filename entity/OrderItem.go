package entity

import (
	"gorm.io/gorm"
)

// OrderItem is written once together with its Order and never updated.
type OrderItem struct {
	gorm.Model
	Quantity    int    `gorm:"not null;check:quantity >= 1" json:"quantity"`
	Price       int64  `gorm:"not null" json:"price"` // unit price at time of sale
	LineTotal   int64  `gorm:"not null" json:"lineTotal"`
	ProductName string `json:"productName"`

	OrderID uint  `gorm:"not null;index" json:"orderId"`
	Order   Order `json:"-"`

	ProductID uint    `gorm:"not null;index" json:"productId"`
	Product   Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
}
