package entity

import (
	"gorm.io/gorm"
)

// Package is a fixed bundle of menu items sold at one price.
type Package struct {
	gorm.Model
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Price       int64  `gorm:"not null" json:"price"`
	ImageURL    string `json:"imageUrl"`
	IsActive    bool   `gorm:"not null;default:true" json:"isActive"`

	Items []PackageItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}
