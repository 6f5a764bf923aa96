package entity

import (
	"gorm.io/gorm"
)

type Order struct {
	gorm.Model
	OrderNumber string `gorm:"uniqueIndex;size:32" json:"orderNumber"`

	UserID uint `json:"userId"`
	User   User `json:"-"`

	Status OrderStatus `gorm:"size:32;not null;default:pending" json:"status"`

	Address string `json:"address"`
	Phone   string `json:"phone"`
	Note    string `json:"note"`

	// totals frozen at checkout
	Subtotal    int64 `json:"subtotal"`
	Tax         int64 `json:"tax"`
	DeliveryFee int64 `json:"deliveryFee"`
	Total       int64 `json:"total"`

	// preload on the detail endpoint only
	Items []OrderItem `json:"-"`
}
