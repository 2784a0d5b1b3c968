package entity

import (
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	Status OrderStatus `gorm:"size:16;not null;index" json:"status"`

	Subtotal  int64 `gorm:"not null" json:"subtotal"`
	Tax       int64 `gorm:"not null" json:"tax"`
	Packaging int64 `gorm:"not null" json:"packaging"`
	Total     int64 `gorm:"not null;check:total >= 0" json:"total"`

	DiningMode    DiningMode    `gorm:"size:16;not null" json:"diningMode"`
	TableNo       string        `json:"tableNo,omitempty"`
	CustomerName  string        `json:"customerName,omitempty"`
	PaymentMethod PaymentMethod `gorm:"size:16" json:"paymentMethod,omitempty"`
	Notes         string        `json:"orderNotes,omitempty"`

	UserID uint `gorm:"not null;index" json:"userId"`
	User   User `json:"-"`

	Items []OrderItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}
