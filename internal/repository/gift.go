package repository

import (
	"context"
	"fmt"

	"github.com/babyduj/shower-api/internal/domain"
	"github.com/babyduj/shower-api/internal/repository/dao"
)

var ErrGiftNotFound = dao.ErrGiftNotFound

type GiftDAO interface {
	Insert(ctx context.Context, gift dao.Gift) (dao.Gift, error)
	FindByID(ctx context.Context, id uint) (dao.Gift, error)
	FindAll(ctx context.Context) ([]dao.Gift, error)
	Reserve(ctx context.Context, id, userID uint) (bool, error)
	Unreserve(ctx context.Context, id, userID uint) (bool, error)
	Delete(ctx context.Context, id uint) error
}

type GiftRepository struct {
	dao GiftDAO
}

func NewGiftRepository(dao GiftDAO) *GiftRepository {
	return &GiftRepository{
		dao: dao,
	}
}

func (r *GiftRepository) Create(ctx context.Context, gift domain.Gift) (domain.Gift, error) {
	created, err := r.dao.Insert(ctx, dao.Gift{
		Title:       gift.Title,
		Description: gift.Description,
		Price:       gift.Price,
		Link:        gift.Link,
	})
	if err != nil {
		return domain.Gift{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return giftToDomain(created), nil
}

func (r *GiftRepository) FindByID(ctx context.Context, id uint) (domain.Gift, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Gift{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return giftToDomain(found), nil
}

func (r *GiftRepository) FindAll(ctx context.Context) ([]domain.Gift, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	gifts := make([]domain.Gift, 0, len(found))
	for _, g := range found {
		gifts = append(gifts, giftToDomain(g))
	}

	return gifts, nil
}

func (r *GiftRepository) Reserve(ctx context.Context, id, userID uint) (bool, error) {
	ok, err := r.dao.Reserve(ctx, id, userID)
	if err != nil {
		return false, fmt.Errorf("r.dao.Reserve -> %w", err)
	}

	return ok, nil
}

func (r *GiftRepository) Unreserve(ctx context.Context, id, userID uint) (bool, error) {
	ok, err := r.dao.Unreserve(ctx, id, userID)
	if err != nil {
		return false, fmt.Errorf("r.dao.Unreserve -> %w", err)
	}

	return ok, nil
}

func (r *GiftRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func giftToDomain(g dao.Gift) domain.Gift {
	gift := domain.Gift{
		ID:          g.ID,
		Title:       g.Title,
		Description: g.Description,
		Price:       g.Price,
		Link:        g.Link,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
	if g.ReservedBy != nil {
		reserver := publicUser(*g.ReservedBy)
		gift.ReservedBy = &reserver
	}

	return gift
}
