package entity

type MenuCustomization struct {
	MenuItemID      uint `gorm:"primaryKey" json:"menuItemId"`
	CustomizationID uint `gorm:"primaryKey" json:"customizationId"`
	SortOrder       int  `gorm:"not null;default:0" json:"sortOrder"`
}
