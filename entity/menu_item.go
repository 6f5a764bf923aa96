package entity

import (
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Price       int64  `gorm:"not null" json:"price"`
	ImageURL    string `json:"imageUrl"`
	IsAvailable bool   `gorm:"not null;default:true" json:"isAvailable"`

	CategoryID uint         `json:"categoryId"`
	Category   MenuCategory `json:"-"`

	// preload on the detail endpoint only
	Customizations []Customization `gorm:"many2many:menu_customizations;" json:"customizations,omitempty"`
	OrderItems     []OrderItem     `json:"-"`
}
