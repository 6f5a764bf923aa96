package entity

import (
	"gorm.io/gorm"
)

// Cart is the server-held copy of a user's cart. The storefront works
// against the durable snapshot store; this table is the remote that the
// synchronizer reconciles with on a timer.
type Cart struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex" json:"userId"`
	User   User `json:"-"`

	Items []CartItem `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}
