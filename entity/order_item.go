package entity

import (
	"gorm.io/gorm"
)

// OrderItem is a frozen copy of one cart line at checkout time.
type OrderItem struct {
	gorm.Model
	OrderID uint  `json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID uint   `json:"menuItemId"`
	Name       string `json:"name"`
	Qty        int    `json:"qty"`
	UnitPrice  int64  `json:"unitPrice"`
	Total      int64  `json:"total"`
	Note       string `json:"note"`

	Selections []OrderItemSelection `json:"selections"`
}
