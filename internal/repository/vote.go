package repository

import (
	"context"
	"fmt"

	"github.com/babyduj/shower-api/internal/domain"
	"github.com/babyduj/shower-api/internal/repository/dao"
)

var ErrVoteNotFound = dao.ErrVoteNotFound

type VoteDAO interface {
	Upsert(ctx context.Context, vote dao.Vote) (dao.Vote, error)
	FindByUserID(ctx context.Context, userID uint) (dao.Vote, error)
	FindAll(ctx context.Context) ([]dao.Vote, error)
}

type VoteRepository struct {
	dao VoteDAO
}

func NewVoteRepository(dao VoteDAO) *VoteRepository {
	return &VoteRepository{
		dao: dao,
	}
}

func (r *VoteRepository) Upsert(ctx context.Context, userID uint, gender domain.Gender) (domain.Vote, error) {
	saved, err := r.dao.Upsert(ctx, dao.Vote{
		UserID: userID,
		Gender: string(gender),
	})
	if err != nil {
		return domain.Vote{}, fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return voteToDomain(saved), nil
}

func (r *VoteRepository) FindByUserID(ctx context.Context, userID uint) (domain.Vote, error) {
	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return domain.Vote{}, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	return voteToDomain(found), nil
}

func (r *VoteRepository) FindAll(ctx context.Context) ([]domain.Vote, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	votes := make([]domain.Vote, 0, len(found))
	for _, v := range found {
		votes = append(votes, voteToDomain(v))
	}

	return votes, nil
}

func voteToDomain(v dao.Vote) domain.Vote {
	return domain.Vote{
		ID:        v.ID,
		Voter:     publicUser(v.User),
		Gender:    domain.Gender(v.Gender),
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}
