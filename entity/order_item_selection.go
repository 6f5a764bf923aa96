package entity

import (
	"gorm.io/gorm"
)

type OrderItemSelection struct {
	gorm.Model
	OrderItemID uint `json:"orderItemId"`

	CustomizationID       uint   `json:"customizationId"`
	CustomizationOptionID uint   `json:"customizationOptionId"`
	Label                 string `json:"label"`
	FreeText              string `json:"freeText,omitempty"`
	PriceDelta            int64  `json:"priceDelta"`
}
