package repository

import (
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/entity"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) Create(c *entity.MenuCategory) error {
	return r.DB.Create(c).Error
}

func (r *CategoryRepository) FindByID(id uint) (*entity.MenuCategory, error) {
	var c entity.MenuCategory
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) CountByName(name string) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.MenuCategory{}).Where("name = ?", name).Count(&count).Error
	return count, err
}

// List returns categories in menu order. The storefront passes
// activeOnly=true; the back office sees everything.
func (r *CategoryRepository) List(activeOnly bool) ([]entity.MenuCategory, error) {
	q := r.DB.Model(&entity.MenuCategory{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var cats []entity.MenuCategory
	err := q.Order("sort_order ASC, name ASC").Find(&cats).Error
	return cats, err
}

func (r *CategoryRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.MenuCategory{}).Where("id = ?", id).Updates(updates).Error
}

func (r *CategoryRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.MenuCategory{}, id).Error
}

// Items still pointing at the category block deletion.
func (r *CategoryRepository) CountItems(id uint) (int64, error) {
	var count int64
	err := r.DB.Model(&entity.MenuItem{}).Where("category_id = ?", id).Count(&count).Error
	return count, err
}
