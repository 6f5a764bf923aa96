package repository

import (
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/entity"

	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

// ---------------- Menu items ----------------

func (r *MenuRepository) Create(item *entity.MenuItem) error {
	return r.DB.Create(item).Error
}

// FindByID loads the item with its category and customization groups,
// options sorted the way the storefront renders them.
func (r *MenuRepository) FindByID(id uint) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := r.DB.
		Preload("Category").
		Preload("Customizations", func(db *gorm.DB) *gorm.DB {
			return db.Order("customizations.sort_order ASC")
		}).
		Preload("Customizations.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("customization_options.sort_order ASC")
		}).
		First(&item, id).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GET /menu, paged with the storefront filters.
func (r *MenuRepository) List(categoryID uint, availableOnly bool, search string, page, limit int) ([]entity.MenuItem, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	offset := (page - 1) * limit

	var total int64
	dbCount := r.DB.Model(&entity.MenuItem{})
	if categoryID != 0 {
		dbCount = dbCount.Where("category_id = ?", categoryID)
	}
	if availableOnly {
		dbCount = dbCount.Where("is_available = ?", true)
	}
	if search != "" {
		dbCount = dbCount.Where("name LIKE ?", "%"+search+"%")
	}
	if err := dbCount.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	db := r.DB.Model(&entity.MenuItem{})
	if categoryID != 0 {
		db = db.Where("category_id = ?", categoryID)
	}
	if availableOnly {
		db = db.Where("is_available = ?", true)
	}
	if search != "" {
		db = db.Where("name LIKE ?", "%"+search+"%")
	}

	var items []entity.MenuItem
	err := db.Preload("Category").
		Order("id DESC").Limit(limit).Offset(offset).
		Find(&items).Error
	return items, total, err
}

func (r *MenuRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.MenuItem{}).Where("id = ?", id).Updates(updates).Error
}

func (r *MenuRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.MenuItem{}, id).Error
}

// ReplaceCustomizations swaps the item's customization groups for the
// given set.
func (r *MenuRepository) ReplaceCustomizations(item *entity.MenuItem, customizations []entity.Customization) error {
	return r.DB.Model(item).Association("Customizations").Replace(customizations)
}

func (r *MenuRepository) CategoryExists(id uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.MenuCategory{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// ---------------- Checkout helpers ----------------

// GetItemBasics pulls just what checkout needs to re-verify a cart line.
func (r *MenuRepository) GetItemBasics(id uint) (entity.MenuItem, error) {
	var m entity.MenuItem
	err := r.DB.Select("id, name, price, is_available").First(&m, id).Error
	return m, err
}
