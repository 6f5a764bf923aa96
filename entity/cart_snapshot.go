package entity

import (
	"time"
)

// CartSnapshot is one durable key-value row behind the cart store backend.
// A whole cart is one JSON blob, overwritten atomically on every save.
type CartSnapshot struct {
	Key       string    `gorm:"primaryKey;size:128" json:"key"`
	Data      []byte    `gorm:"not null" json:"-"`
	UpdatedAt time.Time `json:"updatedAt"`
}
