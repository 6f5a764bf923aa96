package entity

import (
	"gorm.io/gorm"
)

// Customization is a named modifier group on a menu item, e.g. "Spice Level".
type Customization struct {
	gorm.Model
	Name       string `gorm:"not null" json:"name"`
	MinSelect  int    `json:"minSelect"`
	MaxSelect  int    `json:"maxSelect"`
	IsRequired bool   `json:"isRequired"`
	SortOrder  int    `json:"sortOrder"`

	Options []CustomizationOption `json:"options"`

	MenuItems []MenuItem `gorm:"many2many:menu_customizations;" json:"-"`
}
