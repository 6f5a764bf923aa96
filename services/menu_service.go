package services

import (
	"errors"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/entity"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/repository"
)

type MenuService struct {
	Repo          *repository.MenuRepository
	Customization *repository.CustomizationRepository
}

func NewMenuService(repo *repository.MenuRepository, custRepo *repository.CustomizationRepository) *MenuService {
	return &MenuService{Repo: repo, Customization: custRepo}
}

// ----- DTOs from Controller -----

type MenuItemIn struct {
	Name             string `json:"name" binding:"required,min=2,max=150"`
	Description      string `json:"description"`
	Price            int64  `json:"price" binding:"required,gt=0"`
	ImageURL         string `json:"imageUrl"`
	CategoryID       uint   `json:"categoryId" binding:"required"`
	IsAvailable      *bool  `json:"isAvailable"`
	CustomizationIDs []uint `json:"customizationIds"`
}

type MenuListOut struct {
	Items []entity.MenuItem `json:"items"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// List serves both surfaces: the storefront passes availableOnly=true, the
// back office sees everything.
func (s *MenuService) List(categoryID uint, availableOnly bool, search string, page, limit int) (*MenuListOut, error) {
	items, total, err := s.Repo.List(categoryID, availableOnly, search, page, limit)
	if err != nil {
		return nil, err
	}
	return &MenuListOut{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (s *MenuService) Get(id uint) (*entity.MenuItem, error) {
	return s.Repo.FindByID(id)
}

func (s *MenuService) Create(in *MenuItemIn) (*entity.MenuItem, error) {
	ok, err := s.Repo.CategoryExists(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("category not found")
	}

	item := &entity.MenuItem{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		CategoryID:  in.CategoryID,
		IsAvailable: true,
	}
	if in.IsAvailable != nil {
		item.IsAvailable = *in.IsAvailable
	}
	if err := s.Repo.Create(item); err != nil {
		return nil, err
	}
	if err := s.attachCustomizations(item, in.CustomizationIDs); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(item.ID)
}

func (s *MenuService) Update(id uint, in *MenuItemIn) (*entity.MenuItem, error) {
	item, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	ok, err := s.Repo.CategoryExists(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New("category not found")
	}

	updates := map[string]any{
		"name":        in.Name,
		"description": in.Description,
		"price":       in.Price,
		"image_url":   in.ImageURL,
		"category_id": in.CategoryID,
	}
	if in.IsAvailable != nil {
		updates["is_available"] = *in.IsAvailable
	}
	if err := s.Repo.Update(id, updates); err != nil {
		return nil, err
	}
	if err := s.attachCustomizations(item, in.CustomizationIDs); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(id)
}

func (s *MenuService) Delete(id uint) error {
	if _, err := s.Repo.FindByID(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}

// SetAvailability is the quick toggle on the admin menu board.
func (s *MenuService) SetAvailability(id uint, available bool) (*entity.MenuItem, error) {
	if err := s.Repo.Update(id, map[string]any{"is_available": available}); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(id)
}

func (s *MenuService) SetImage(id uint, url string) (*entity.MenuItem, error) {
	if err := s.Repo.Update(id, map[string]any{"image_url": url}); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(id)
}

// SetCustomizations replaces the modifier groups attached to a menu item.
// An empty list detaches everything.
func (s *MenuService) SetCustomizations(id uint, ids []uint) (*entity.MenuItem, error) {
	item, err := s.Repo.FindByID(id)
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []uint{}
	}
	if err := s.attachCustomizations(item, ids); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(id)
}

func (s *MenuService) attachCustomizations(item *entity.MenuItem, ids []uint) error {
	if ids == nil {
		return nil
	}
	groups, err := s.Customization.FindByIDs(ids)
	if err != nil {
		return err
	}
	if len(groups) != len(ids) {
		return errors.New("customization not found")
	}
	return s.Repo.ReplaceCustomizations(item, groups)
}
