package services

import (
	"errors"

	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/entity"
	"github.com/Emmanuelfoeh/Mina-kitchen-sub003/repository"
)

// UserAdminService is the back-office view over accounts.
type UserAdminService struct {
	Repo *repository.UserRepository
}

func NewUserAdminService(repo *repository.UserRepository) *UserAdminService {
	return &UserAdminService{Repo: repo}
}

type UserListOut struct {
	Items []entity.User `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

func (s *UserAdminService) List(role string, page, limit int) (*UserListOut, error) {
	if role != "" && role != "customer" && role != "admin" {
		return nil, errors.New("unknown role")
	}
	users, total, err := s.Repo.List(role, page, limit)
	if err != nil {
		return nil, err
	}
	return &UserListOut{Items: users, Total: total, Page: page, Limit: limit}, nil
}

func (s *UserAdminService) Get(id uint) (*entity.User, error) {
	return s.Repo.FindByID(id)
}

// SetRole promotes or demotes an account. The last admin cannot demote
// themselves through this path; the controller blocks self-changes.
func (s *UserAdminService) SetRole(id uint, role string) (*entity.User, error) {
	if role != "customer" && role != "admin" {
		return nil, errors.New("unknown role")
	}
	if _, err := s.Repo.FindByID(id); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(id, map[string]any{"role": role}); err != nil {
		return nil, err
	}
	return s.Repo.FindByID(id)
}

func (s *UserAdminService) Delete(id uint) error {
	if _, err := s.Repo.FindByID(id); err != nil {
		return err
	}
	return s.Repo.Delete(id)
}
