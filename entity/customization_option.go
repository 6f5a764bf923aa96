package entity

import (
	"gorm.io/gorm"
)

type CustomizationOption struct {
	gorm.Model
	CustomizationID uint          `json:"customizationId"`
	Customization   Customization `json:"-"`

	Label       string `gorm:"not null" json:"label"`
	PriceDelta  int64  `json:"priceDelta"`
	IsDefault   bool   `json:"isDefault"`
	IsAvailable bool   `gorm:"not null;default:true" json:"isAvailable"`
	SortOrder   int    `json:"sortOrder"`
}
