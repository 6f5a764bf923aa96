package services

import (
	"errors"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/entity"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/repository"
)

type CategoryService struct {
	Repo *repository.CategoryRepository
}

func NewCategoryService(repo *repository.CategoryRepository) *CategoryService {
	return &CategoryService{Repo: repo}
}

// ----- DTOs from Controller -----

type CategoryIn struct {
	Name      string `json:"name" binding:"required,min=2,max=100"`
	SortOrder int    `json:"sortOrder"`
	IsActive  *bool  `json:"isActive"`
}

func (s *CategoryService) List(activeOnly bool) ([]entity.MenuCategory, error) {
	return s.Repo.List(activeOnly)
}

func (s *CategoryService) Get(id uint) (*entity.MenuCategory, error) {
	return s.Repo.FindByID(id)
}

func (s *CategoryService) Create(in *CategoryIn) (*entity.MenuCategory, error) {
	count, err := s.Repo.CountByName(in.Name)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("category name already exists")
	}

	c := &entity.MenuCategory{
		Name:      in.Name,
		SortOrder: in.SortOrder,
		IsActive:  true,
	}
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if err := s.Repo.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CategoryService) Update(id uint, in *CategoryIn) (*entity.MenuCategory, error) {
	if _, err := s.Repo.FindByID(id); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"name":       in.Name,
		"sort_order": in.SortOrder,
	}
	if in.IsActive != nil {
		updates["is_active"] = *in.IsActive
	}
	if err := s.Repo.Update(id, updates); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(id)
}

// Delete refuses while menu items still point at the category, so dishes
// never end up orphaned.
func (s *CategoryService) Delete(id uint) error {
	count, err := s.Repo.CountItems(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("category still has menu items")
	}
	return s.Repo.Delete(id)
}
