package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/babyduj/shower-api/internal/domain"
	"github.com/babyduj/shower-api/internal/repository/dao"
)

var (
	ErrIdentityExists = dao.ErrIdentityExists
	ErrUserNotFound   = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByNames(ctx context.Context, displayName, familyName string) (dao.User, error)
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
	UpdateAdmin(ctx context.Context, id uint, admin bool) (dao.User, error)
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

// Create stores user. user.PIN must already be hashed.
func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		DisplayName: user.DisplayName,
		FamilyName:  user.FamilyName,
		PINHash:     user.PIN,
		Admin:       user.Admin,
		LastLoginAt: user.LastLoginAt,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return userToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return userToDomain(found), nil
}

func (r *UserRepository) FindByNames(ctx context.Context, displayName, familyName string) (domain.User, error) {
	found, err := r.dao.FindByNames(ctx, displayName, familyName)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByNames -> %w", err)
	}

	return userToDomain(found), nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id uint, at time.Time) error {
	if err := r.dao.UpdateLastLogin(ctx, id, at); err != nil {
		return fmt.Errorf("r.dao.UpdateLastLogin -> %w", err)
	}

	return nil
}

func (r *UserRepository) SetAdmin(ctx context.Context, id uint, admin bool) (domain.User, error) {
	updated, err := r.dao.UpdateAdmin(ctx, id, admin)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.UpdateAdmin -> %w", err)
	}

	return userToDomain(updated), nil
}

func userToDomain(u dao.User) domain.User {
	return domain.User{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		FamilyName:  u.FamilyName,
		PIN:         u.PINHash,
		Admin:       u.Admin,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

// publicUser strips the PIN hash from identities embedded in other rows.
func publicUser(u dao.User) domain.User {
	user := userToDomain(u)
	user.PIN = ""

	return user
}
