package entity

import (
	"gorm.io/gorm"
)

type PackageItem struct {
	gorm.Model
	PackageID uint `json:"packageId"`

	MenuItemID uint     `json:"menuItemId"`
	MenuItem   MenuItem `json:"-"`

	Qty int `gorm:"not null;default:1" json:"qty"`
}
