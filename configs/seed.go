package configs

import (
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/entity"
)

// SeedAdmin creates the back office account named by ADMIN_EMAIL and
// ADMIN_PASSWORD. Skips silently when either is unset or the account exists.
func SeedAdmin(db *gorm.DB, cfg Config, log *zap.Logger) error {
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("email = ?", cfg.AdminEmail).Count(&count).Error; err != nil {
		return fmt.Errorf("check admin account: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := entity.User{
		Email:     cfg.AdminEmail,
		Password:  string(hash),
		FirstName: "Mina",
		LastName:  "Admin",
		Role:      "admin",
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("create admin account: %w", err)
	}

	log.Info("seeded admin account", zap.String("email", cfg.AdminEmail))
	return nil
}

// SeedDemo loads a small demo menu for local development. Gated by
// SEED_DEMO and skipped when any category already exists.
func SeedDemo(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&entity.MenuCategory{}).Count(&count).Error; err != nil {
		return fmt.Errorf("check demo data: %w", err)
	}
	if count > 0 {
		return nil
	}

	spice := entity.Customization{
		Name:       "Spice Level",
		MinSelect:  1,
		MaxSelect:  1,
		IsRequired: true,
		Options: []entity.CustomizationOption{
			{Label: "Mild", SortOrder: 1, IsDefault: true, IsAvailable: true},
			{Label: "Medium", SortOrder: 2, IsAvailable: true},
			{Label: "Hot", PriceDelta: 0, SortOrder: 3, IsAvailable: true},
		},
	}
	extras := entity.Customization{
		Name:      "Extras",
		MinSelect: 0,
		MaxSelect: 3,
		Options: []entity.CustomizationOption{
			{Label: "Extra Chicken", PriceDelta: 350, SortOrder: 1, IsAvailable: true},
			{Label: "Extra Plantain", PriceDelta: 200, SortOrder: 2, IsAvailable: true},
			{Label: "Fried Egg", PriceDelta: 150, SortOrder: 3, IsAvailable: true},
		},
	}

	mains := entity.MenuCategory{Name: "Mains", SortOrder: 1, IsActive: true}
	sides := entity.MenuCategory{Name: "Sides", SortOrder: 2, IsActive: true}
	drinks := entity.MenuCategory{Name: "Drinks", SortOrder: 3, IsActive: true}

	jollof := entity.MenuItem{
		Name:           "Jollof Bowl",
		Description:    "Smoky tomato rice with grilled chicken and plantain.",
		Price:          1499,
		IsAvailable:    true,
		Category:       mains,
		Customizations: []entity.Customization{spice, extras},
	}
	waakye := entity.MenuItem{
		Name:        "Waakye Plate",
		Description: "Rice and beans with shito, gari, and boiled egg.",
		Price:       1399,
		IsAvailable: true,
		Category:    mains,
	}
	suya := entity.MenuItem{
		Name:        "Suya Wrap",
		Description: "Spiced grilled beef wrapped with onions and fresh tomato.",
		Price:       1199,
		IsAvailable: true,
		Category:    mains,
	}
	puff := entity.MenuItem{
		Name:        "Puff Puff (6)",
		Description: "Sweet fried dough, six per order.",
		Price:       499,
		IsAvailable: true,
		Category:    sides,
	}
	sobolo := entity.MenuItem{
		Name:        "Sobolo",
		Description: "Chilled hibiscus drink with ginger and pineapple.",
		Price:       399,
		IsAvailable: true,
		Category:    drinks,
	}

	for _, item := range []*entity.MenuItem{&jollof, &waakye, &suya, &puff, &sobolo} {
		if err := db.Create(item).Error; err != nil {
			return fmt.Errorf("seed menu item %q: %w", item.Name, err)
		}
	}

	feast := entity.Package{
		Name:        "Family Feast",
		Description: "Two Jollof Bowls, a Suya Wrap, Puff Puff, and two Sobolo.",
		Price:       4499,
		IsActive:    true,
		Items: []entity.PackageItem{
			{MenuItemID: jollof.ID, Qty: 2},
			{MenuItemID: suya.ID, Qty: 1},
			{MenuItemID: puff.ID, Qty: 1},
			{MenuItemID: sobolo.ID, Qty: 2},
		},
	}
	if err := db.Create(&feast).Error; err != nil {
		return fmt.Errorf("seed package %q: %w", feast.Name, err)
	}

	log.Info("seeded demo menu",
		zap.Int("items", 5),
		zap.Int("packages", 1),
	)
	return nil
}
