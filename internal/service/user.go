package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/babyduj/shower-api/internal/domain"
	"github.com/babyduj/shower-api/internal/repository"
)

var (
	ErrUserNotFound     = repository.ErrUserNotFound
	ErrPermissionDenied = errors.New("permission denied")
)

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	SetAdmin(ctx context.Context, id uint, admin bool) (domain.User, error)
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	user.PIN = ""

	return user, nil
}

// SetAdmin grants or revokes the admin flag. Only admins may call it.
func (s *UserService) SetAdmin(ctx context.Context, actor domain.User, id uint, admin bool) (domain.User, error) {
	if !actor.Admin {
		return domain.User{}, ErrPermissionDenied
	}

	user, err := s.repo.SetAdmin(ctx, id, admin)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.SetAdmin -> %w", err)
	}
	user.PIN = ""

	return user, nil
}
