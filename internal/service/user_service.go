package service

import (
	"ery_cursos_backend/internal/model"
	"ery_cursos_backend/internal/repository"
	"ery_cursos_backend/internal/util"
	"fmt"
)

type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

func (s *UserService) GetByID(id uint) (*model.User, error) {
	return s.UserRepo.FindByID(id)
}

func (s *UserService) List(page, limit int) ([]model.User, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.UserRepo.List(page, limit)
}

// ChangeRole updates a user's role; the admin role cannot be granted here,
// it is bound to the configured admin email at registration.
func (s *UserService) ChangeRole(id uint, role model.UserRole) error {
	switch role {
	case model.Student, model.Evaluator, model.Assistant:
	default:
		return fmt.Errorf("%w: role %q cannot be assigned", util.ErrInvalidInput, role)
	}
	return s.UserRepo.UpdateRole(id, role)
}

func (s *UserService) SetActive(id uint, active bool) error {
	return s.UserRepo.SetActive(id, active)
}
