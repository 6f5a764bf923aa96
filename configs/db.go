package configs

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/entity"
)

// Connect opens the database named by cfg. sqlite is the default for
// local development, postgres for deployments.
func Connect(cfg Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DBSource)
	case "sqlite", "":
		dialector = sqlite.Open(cfg.DBSource)
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

// Migrate creates or updates every table the app uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},

		&entity.MenuCategory{},
		&entity.MenuItem{},
		&entity.Customization{},
		&entity.CustomizationOption{},

		&entity.Package{},
		&entity.PackageItem{},

		&entity.Cart{},
		&entity.CartItem{},
		&entity.CartItemSelection{},
		&entity.CartSnapshot{},

		&entity.Order{},
		&entity.OrderItem{},
		&entity.OrderItemSelection{},
	)
}
