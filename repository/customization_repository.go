package repository

import (
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/entity"

	"gorm.io/gorm"
)

type CustomizationRepository struct {
	DB *gorm.DB
}

func NewCustomizationRepository(db *gorm.DB) *CustomizationRepository {
	return &CustomizationRepository{DB: db}
}

// FindAll returns every customization group with its options.
func (r *CustomizationRepository) FindAll() ([]entity.Customization, error) {
	var groups []entity.Customization
	err := r.DB.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("customization_options.sort_order ASC")
		}).
		Order("sort_order ASC, name ASC").
		Find(&groups).Error
	return groups, err
}

func (r *CustomizationRepository) FindByID(id uint) (*entity.Customization, error) {
	var group entity.Customization
	err := r.DB.
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("customization_options.sort_order ASC")
		}).
		First(&group, id).Error
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *CustomizationRepository) FindByIDs(ids []uint) ([]entity.Customization, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var groups []entity.Customization
	err := r.DB.Where("id IN ?", ids).Find(&groups).Error
	return groups, err
}

// Create inserts the group and its options in one go.
func (r *CustomizationRepository) Create(group *entity.Customization) error {
	return r.DB.Create(group).Error
}

// ReplaceWithOptions saves the group fields and swaps the option set, all
// in one transaction so a half-updated group never becomes visible.
func (r *CustomizationRepository) ReplaceWithOptions(group *entity.Customization) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Customization{}).Where("id = ?", group.ID).
			Updates(map[string]any{
				"name":        group.Name,
				"min_select":  group.MinSelect,
				"max_select":  group.MaxSelect,
				"is_required": group.IsRequired,
				"sort_order":  group.SortOrder,
			}).Error; err != nil {
			return err
		}
		if err := tx.Where("customization_id = ?", group.ID).
			Delete(&entity.CustomizationOption{}).Error; err != nil {
			return err
		}
		for i := range group.Options {
			group.Options[i].ID = 0
			group.Options[i].CustomizationID = group.ID
		}
		if len(group.Options) == 0 {
			return nil
		}
		return tx.Create(&group.Options).Error
	})
}

func (r *CustomizationRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("customization_id = ?", id).
			Delete(&entity.CustomizationOption{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM menu_customizations WHERE customization_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Customization{}, id).Error
	})
}

// Menu items still using the group block deletion from the admin UI.
func (r *CustomizationRepository) CountAttachedItems(id uint) (int64, error) {
	var count int64
	err := r.DB.Table("menu_customizations").Where("customization_id = ?", id).Count(&count).Error
	return count, err
}
