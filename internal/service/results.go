package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/babyduj/shower-api/internal/domain"
	"github.com/babyduj/shower-api/internal/repository"
)

type RevealRepository interface {
	Save(ctx context.Context, reveal domain.Reveal) (domain.Reveal, error)
	Find(ctx context.Context) (domain.Reveal, error)
}

type ResultsService struct {
	reveals RevealRepository
	votes   VoteRepository
	events  EventPublisher
	now     func() time.Time
}

func NewResultsService(reveals RevealRepository, votes VoteRepository, events EventPublisher) *ResultsService {
	return &ResultsService{
		reveals: reveals,
		votes:   votes,
		events:  publisherOrNoop(events),
		now:     time.Now,
	}
}

// SetReveal records the announced gender. A zero at reveals immediately.
func (s *ResultsService) SetReveal(ctx context.Context, actor domain.User, gender domain.Gender, at time.Time) (domain.Reveal, error) {
	if !actor.Admin {
		return domain.Reveal{}, ErrPermissionDenied
	}
	if !gender.Valid() {
		return domain.Reveal{}, ErrInvalidGender
	}
	if at.IsZero() {
		at = s.now()
	}

	saved, err := s.reveals.Save(ctx, domain.Reveal{Gender: gender, RevealedAt: at.UTC()})
	if err != nil {
		return domain.Reveal{}, fmt.Errorf("s.reveals.Save -> %w", err)
	}

	s.events.Publish(newEvent(domain.EventResultsRevealed, 0, actor.ID))

	return saved, nil
}

// Results always carries the vote stats. The gender and the winners are only
// disclosed once the reveal time has passed.
func (s *ResultsService) Results(ctx context.Context) (domain.Results, error) {
	votes, err := s.votes.FindAll(ctx)
	if err != nil {
		return domain.Results{}, fmt.Errorf("s.votes.FindAll -> %w", err)
	}

	results := domain.Results{Stats: domain.ComputeVoteStats(votes)}

	reveal, err := s.reveals.Find(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrRevealNotFound) {
			return results, nil
		}

		return domain.Results{}, fmt.Errorf("s.reveals.Find -> %w", err)
	}

	if s.now().Before(reveal.RevealedAt) {
		return results, nil
	}

	results.Revealed = true
	results.Reveal = &reveal
	results.Winners = make([]domain.User, 0)
	for _, v := range votes {
		if v.Gender == reveal.Gender {
			results.Winners = append(results.Winners, v.Voter)
		}
	}

	return results, nil
}
