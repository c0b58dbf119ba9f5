package repository

import (
	"context"
	"fmt"

	"github.com/babyduj/shower-api/internal/domain"
	"github.com/babyduj/shower-api/internal/repository/dao"
)

var ErrRevealNotFound = dao.ErrRevealNotFound

type RevealDAO interface {
	Upsert(ctx context.Context, reveal dao.Reveal) (dao.Reveal, error)
	Find(ctx context.Context) (dao.Reveal, error)
}

type RevealRepository struct {
	dao RevealDAO
}

func NewRevealRepository(dao RevealDAO) *RevealRepository {
	return &RevealRepository{
		dao: dao,
	}
}

func (r *RevealRepository) Save(ctx context.Context, reveal domain.Reveal) (domain.Reveal, error) {
	saved, err := r.dao.Upsert(ctx, dao.Reveal{
		Gender:     string(reveal.Gender),
		RevealedAt: reveal.RevealedAt,
	})
	if err != nil {
		return domain.Reveal{}, fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return revealToDomain(saved), nil
}

func (r *RevealRepository) Find(ctx context.Context) (domain.Reveal, error) {
	found, err := r.dao.Find(ctx)
	if err != nil {
		return domain.Reveal{}, fmt.Errorf("r.dao.Find -> %w", err)
	}

	return revealToDomain(found), nil
}

func revealToDomain(r dao.Reveal) domain.Reveal {
	return domain.Reveal{
		Gender:     domain.Gender(r.Gender),
		RevealedAt: r.RevealedAt,
	}
}
