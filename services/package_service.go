package services

import (
	"errors"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/entity"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/repository"
)

// PackageService manages the set-meal bundles shown on the storefront.
type PackageService struct {
	Repo *repository.PackageRepository
}

func NewPackageService(repo *repository.PackageRepository) *PackageService {
	return &PackageService{Repo: repo}
}

// ----- DTOs from Controller -----

type PackageItemIn struct {
	MenuItemID uint `json:"menuItemId" binding:"required"`
	Qty        int  `json:"qty" binding:"required,gt=0"`
}

type PackageIn struct {
	Name        string          `json:"name" binding:"required,min=2,max=150"`
	Description string          `json:"description"`
	Price       int64           `json:"price" binding:"required,gt=0"`
	ImageURL    string          `json:"imageUrl"`
	IsActive    *bool           `json:"isActive"`
	Items       []PackageItemIn `json:"items" binding:"required,min=1,dive"`
}

func (s *PackageService) List(activeOnly bool) ([]entity.Package, error) {
	return s.Repo.List(activeOnly)
}

func (s *PackageService) Get(id uint) (*entity.Package, error) {
	return s.Repo.FindByID(id)
}

func (s *PackageService) Create(in *PackageIn) (*entity.Package, error) {
	pkg, err := s.build(in)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(pkg); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(pkg.ID)
}

func (s *PackageService) Update(id uint, in *PackageIn) (*entity.Package, error) {
	if _, err := s.Repo.FindByID(id); err != nil {
		return nil, err
	}
	pkg, err := s.build(in)
	if err != nil {
		return nil, err
	}
	pkg.ID = id
	if err := s.Repo.ReplaceWithItems(pkg); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(id)
}

func (s *PackageService) Delete(id uint) error {
	if _, err := s.Repo.FindByID(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

func (s *PackageService) build(in *PackageIn) (*entity.Package, error) {
	menuIDs := make([]uint, 0, len(in.Items))
	seen := make(map[uint]bool, len(in.Items))
	for _, it := range in.Items {
		if seen[it.MenuItemID] {
			return nil, errors.New("duplicate menu item in package")
		}
		seen[it.MenuItemID] = true
		menuIDs = append(menuIDs, it.MenuItemID)
	}

	ok, err := s.Repo.ValidateMenuItems(menuIDs)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("package references unknown menu items")
	}

	pkg := &entity.Package{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		IsActive:    true,
	}
	if in.IsActive != nil {
		pkg.IsActive = *in.IsActive
	}
	for _, it := range in.Items {
		pkg.Items = append(pkg.Items, entity.PackageItem{
			MenuItemID: it.MenuItemID,
			Qty:        it.Qty,
		})
	}
	return pkg, nil
}
