package entity

import (
	"gorm.io/gorm"
)

type MenuCategory struct {
	gorm.Model
	Name      string `gorm:"uniqueIndex;not null" json:"name"`
	SortOrder int    `gorm:"not null;default:0" json:"sortOrder"`
	IsActive  bool   `gorm:"not null;default:true" json:"isActive"`

	Items []MenuItem `gorm:"foreignKey:CategoryID" json:"-"`
}
