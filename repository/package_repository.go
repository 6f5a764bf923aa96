package repository

import (
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/entity"

	"gorm.io/gorm"
)

type PackageRepository struct {
	DB *gorm.DB
}

func NewPackageRepository(db *gorm.DB) *PackageRepository {
	return &PackageRepository{DB: db}
}

// Create inserts the package and its item lines in one go.
func (r *PackageRepository) Create(p *entity.Package) error {
	return r.DB.Create(p).Error
}

func (r *PackageRepository) FindByID(id uint) (*entity.Package, error) {
	var p entity.Package
	err := r.DB.
		Preload("Items.MenuItem").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns packages with their contents. The storefront passes
// activeOnly=true.
func (r *PackageRepository) List(activeOnly bool) ([]entity.Package, error) {
	q := r.DB.Model(&entity.Package{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var pkgs []entity.Package
	err := q.Preload("Items.MenuItem").Order("id DESC").Find(&pkgs).Error
	return pkgs, err
}

// ReplaceWithItems saves the package fields and swaps the item lines in
// one transaction.
func (r *PackageRepository) ReplaceWithItems(p *entity.Package) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.Package{}).Where("id = ?", p.ID).
			Updates(map[string]any{
				"name":        p.Name,
				"description": p.Description,
				"price":       p.Price,
				"image_url":   p.ImageURL,
				"is_active":   p.IsActive,
			}).Error; err != nil {
			return err
		}
		if err := tx.Where("package_id = ?", p.ID).
			Delete(&entity.PackageItem{}).Error; err != nil {
			return err
		}
		for i := range p.Items {
			p.Items[i].ID = 0
			p.Items[i].PackageID = p.ID
		}
		if len(p.Items) == 0 {
			return nil
		}
		return tx.Create(&p.Items).Error
	})
}

func (r *PackageRepository) Delete(id uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("package_id = ?", id).
			Delete(&entity.PackageItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Package{}, id).Error
	})
}

// Menu items named by package lines must exist and be real dishes.
func (r *PackageRepository) ValidateMenuItems(menuIDs []uint) (bool, error) {
	if len(menuIDs) == 0 {
		return true, nil
	}
	var cnt int64
	if err := r.DB.Model(&entity.MenuItem{}).
		Where("id IN ?", menuIDs).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt == int64(len(menuIDs)), nil
}
