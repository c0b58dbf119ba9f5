package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/babyduj/shower-api/internal/domain"
	"github.com/babyduj/shower-api/internal/repository"
)

var (
	ErrGiftNotFound        = repository.ErrGiftNotFound
	ErrGiftAlreadyReserved = errors.New("gift already reserved by someone else")
	ErrNotReserver         = errors.New("only the current reserver can release this gift")
	ErrInvalidGift         = errors.New("invalid gift")
)

type GiftRepository interface {
	Create(ctx context.Context, gift domain.Gift) (domain.Gift, error)
	FindByID(ctx context.Context, id uint) (domain.Gift, error)
	FindAll(ctx context.Context) ([]domain.Gift, error)
	Reserve(ctx context.Context, id, userID uint) (bool, error)
	Unreserve(ctx context.Context, id, userID uint) (bool, error)
	Delete(ctx context.Context, id uint) error
}

type GiftService struct {
	repo   GiftRepository
	events EventPublisher
}

func NewGiftService(repo GiftRepository, events EventPublisher) *GiftService {
	return &GiftService{
		repo:   repo,
		events: publisherOrNoop(events),
	}
}

func (s *GiftService) ListGifts(ctx context.Context) (domain.GiftList, error) {
	gifts, err := s.repo.FindAll(ctx)
	if err != nil {
		return domain.GiftList{}, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return domain.GiftList{
		Gifts: gifts,
		Stats: domain.ComputeGiftStats(gifts),
	}, nil
}

func (s *GiftService) CreateGift(ctx context.Context, actor domain.User, gift domain.Gift) (domain.Gift, error) {
	if !actor.Admin {
		return domain.Gift{}, ErrPermissionDenied
	}

	gift.Title = strings.TrimSpace(gift.Title)
	if gift.Title == "" {
		return domain.Gift{}, fmt.Errorf("%w: title is required", ErrInvalidGift)
	}
	if gift.Price != nil && *gift.Price < 0 {
		return domain.Gift{}, fmt.Errorf("%w: price cannot be negative", ErrInvalidGift)
	}
	if gift.Price != nil && *gift.Price > domain.MaxGiftPrice {
		return domain.Gift{}, fmt.Errorf("%w: price is too large", ErrInvalidGift)
	}

	created, err := s.repo.Create(ctx, gift)
	if err != nil {
		return domain.Gift{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	s.events.Publish(newEvent(domain.EventGiftCreated, created.ID, actor.ID))

	return created, nil
}

// ReserveGift claims the gift for actor. The claim is a conditional update so
// two concurrent reservations cannot both succeed. Reserving a gift actor
// already holds is a no-op.
func (s *GiftService) ReserveGift(ctx context.Context, actor domain.User, id uint) (domain.Gift, error) {
	ok, err := s.repo.Reserve(ctx, id, actor.ID)
	if err != nil {
		return domain.Gift{}, fmt.Errorf("s.repo.Reserve -> %w", err)
	}

	gift, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Gift{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !ok {
		if gift.IsReservedBy(actor.ID) {
			return gift, nil
		}

		return domain.Gift{}, ErrGiftAlreadyReserved
	}

	s.events.Publish(newEvent(domain.EventGiftReserved, gift.ID, actor.ID))

	return gift, nil
}

func (s *GiftService) UnreserveGift(ctx context.Context, actor domain.User, id uint) (domain.Gift, error) {
	ok, err := s.repo.Unreserve(ctx, id, actor.ID)
	if err != nil {
		return domain.Gift{}, fmt.Errorf("s.repo.Unreserve -> %w", err)
	}

	gift, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Gift{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if !ok {
		return domain.Gift{}, ErrNotReserver
	}

	s.events.Publish(newEvent(domain.EventGiftUnreserved, gift.ID, actor.ID))

	return gift, nil
}

// DeleteGift removes a gift. Non-admins are rejected before anything is touched.
func (s *GiftService) DeleteGift(ctx context.Context, actor domain.User, id uint) error {
	if !actor.Admin {
		return ErrPermissionDenied
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	s.events.Publish(newEvent(domain.EventGiftDeleted, id, actor.ID))

	return nil
}
