package services

import (
	"errors"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/entity"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/repository"
)

type CustomizationService struct {
	Repo *repository.CustomizationRepository
}

func NewCustomizationService(repo *repository.CustomizationRepository) *CustomizationService {
	return &CustomizationService{Repo: repo}
}

// ----- DTOs from Controller -----

type CustomizationOptionIn struct {
	Label       string `json:"label" binding:"required,min=1,max=100"`
	PriceDelta  int64  `json:"priceDelta"`
	IsDefault   bool   `json:"isDefault"`
	IsAvailable *bool  `json:"isAvailable"`
	SortOrder   int    `json:"sortOrder"`
}

type CustomizationIn struct {
	Name       string                  `json:"name" binding:"required,min=2,max=100"`
	MinSelect  int                     `json:"minSelect" binding:"gte=0"`
	MaxSelect  int                     `json:"maxSelect" binding:"gte=0"`
	IsRequired bool                    `json:"isRequired"`
	SortOrder  int                     `json:"sortOrder"`
	Options    []CustomizationOptionIn `json:"options" binding:"required,min=1,dive"`
}

func (s *CustomizationService) List() ([]entity.Customization, error) {
	return s.Repo.FindAll()
}

func (s *CustomizationService) Get(id uint) (*entity.Customization, error) {
	return s.Repo.FindByID(id)
}

func (s *CustomizationService) Create(in *CustomizationIn) (*entity.Customization, error) {
	group, err := buildCustomization(in)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Create(group); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(group.ID)
}

func (s *CustomizationService) Update(id uint, in *CustomizationIn) (*entity.Customization, error) {
	if _, err := s.Repo.FindByID(id); err != nil {
		return nil, err
	}
	group, err := buildCustomization(in)
	if err != nil {
		return nil, err
	}
	group.ID = id
	if err := s.Repo.ReplaceWithOptions(group); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(id)
}

// Delete refuses while menu items still use the group.
func (s *CustomizationService) Delete(id uint) error {
	count, err := s.Repo.CountAttachedItems(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.New("customization is attached to menu items")
	}
	return s.Repo.Delete(id)
}

func buildCustomization(in *CustomizationIn) (*entity.Customization, error) {
	if in.MaxSelect != 0 && in.MaxSelect < in.MinSelect {
		return nil, errors.New("maxSelect must be at least minSelect")
	}
	if in.IsRequired && in.MinSelect == 0 {
		in.MinSelect = 1
	}

	group := &entity.Customization{
		Name:       in.Name,
		MinSelect:  in.MinSelect,
		MaxSelect:  in.MaxSelect,
		IsRequired: in.IsRequired,
		SortOrder:  in.SortOrder,
	}
	for _, o := range in.Options {
		opt := entity.CustomizationOption{
			Label:       o.Label,
			PriceDelta:  o.PriceDelta,
			IsDefault:   o.IsDefault,
			IsAvailable: true,
			SortOrder:   o.SortOrder,
		}
		if o.IsAvailable != nil {
			opt.IsAvailable = *o.IsAvailable
		}
		group.Options = append(group.Options, opt)
	}
	return group, nil
}
