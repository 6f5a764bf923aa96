package entity

import (
	"gorm.io/gorm"
)

type CartItemSelection struct {
	gorm.Model
	CartItemID uint     `json:"cartItemId"`
	CartItem   CartItem `json:"-"`

	CustomizationID uint          `json:"customizationId"`
	Customization   Customization `json:"-"`

	CustomizationOptionID uint                `json:"customizationOptionId"`
	CustomizationOption   CustomizationOption `json:"-"`

	Label      string `json:"label"`
	FreeText   string `json:"freeText,omitempty"`
	PriceDelta int64  `json:"priceDelta"`
}
