package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/babyduj/shower-api/internal/domain"
)

var ErrInvalidGender = errors.New("gender must be girl or boy")

type VoteRepository interface {
	Upsert(ctx context.Context, userID uint, gender domain.Gender) (domain.Vote, error)
	FindAll(ctx context.Context) ([]domain.Vote, error)
}

type VoteService struct {
	repo   VoteRepository
	events EventPublisher
}

func NewVoteService(repo VoteRepository, events EventPublisher) *VoteService {
	return &VoteService{
		repo:   repo,
		events: publisherOrNoop(events),
	}
}

// CastVote records voter's prediction. Casting again replaces the previous
// vote in place.
func (s *VoteService) CastVote(ctx context.Context, voter domain.User, gender domain.Gender) (domain.Vote, error) {
	if !gender.Valid() {
		return domain.Vote{}, ErrInvalidGender
	}

	vote, err := s.repo.Upsert(ctx, voter.ID, gender)
	if err != nil {
		return domain.Vote{}, fmt.Errorf("s.repo.Upsert -> %w", err)
	}

	s.events.Publish(newEvent(domain.EventVoteCast, vote.ID, voter.ID))

	return vote, nil
}

// Board builds the votes page for viewer. Results stay hidden until the
// viewer has voted or reveal is requested.
func (s *VoteService) Board(ctx context.Context, viewer domain.User, reveal bool) (domain.VoteBoard, error) {
	votes, err := s.repo.FindAll(ctx)
	if err != nil {
		return domain.VoteBoard{}, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	var board domain.VoteBoard
	if !viewer.Anonymous() {
		for i := range votes {
			if votes[i].Voter.ID == viewer.ID {
				mine := votes[i]
				board.MyVote = &mine
				board.HasVoted = true
				break
			}
		}
	}

	if !board.HasVoted && !reveal {
		board.Hidden = true
		return board, nil
	}

	stats := domain.ComputeVoteStats(votes)
	board.Stats = &stats
	board.Girls = make([]domain.Vote, 0, stats.Girl)
	board.Boys = make([]domain.Vote, 0, stats.Boy)
	for _, v := range votes {
		switch v.Gender {
		case domain.GenderGirl:
			board.Girls = append(board.Girls, v)
		case domain.GenderBoy:
			board.Boys = append(board.Boys, v)
		}
	}

	return board, nil
}
