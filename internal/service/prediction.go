package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/babyduj/shower-api/internal/domain"
	"github.com/babyduj/shower-api/internal/repository"
)

var ErrInvalidPrediction = errors.New("invalid prediction")

type PredictionRepository interface {
	Upsert(ctx context.Context, userID uint, p domain.Prediction) (domain.Prediction, error)
	FindByUserID(ctx context.Context, userID uint) (domain.Prediction, error)
	FindAll(ctx context.Context) ([]domain.Prediction, error)
	Stats(ctx context.Context) (domain.PredictionStats, error)
}

type PredictionService struct {
	repo   PredictionRepository
	events EventPublisher
}

func NewPredictionService(repo PredictionRepository, events EventPublisher) *PredictionService {
	return &PredictionService{
		repo:   repo,
		events: publisherOrNoop(events),
	}
}

func (s *PredictionService) PutPrediction(ctx context.Context, user domain.User, p domain.Prediction) (domain.Prediction, error) {
	p.BabyName = strings.TrimSpace(p.BabyName)
	if err := checkPrediction(p); err != nil {
		return domain.Prediction{}, err
	}

	saved, err := s.repo.Upsert(ctx, user.ID, p)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("s.repo.Upsert -> %w", err)
	}

	s.events.Publish(newEvent(domain.EventPredictionPut, saved.ID, user.ID))

	return saved, nil
}

func (s *PredictionService) Board(ctx context.Context, viewer domain.User, reveal bool) (domain.PredictionBoard, error) {
	var board domain.PredictionBoard

	if !viewer.Anonymous() {
		mine, err := s.repo.FindByUserID(ctx, viewer.ID)
		switch {
		case err == nil:
			board.Mine = &mine
			board.HasPredicted = true
		case !errors.Is(err, repository.ErrPredictionNotFound):
			return domain.PredictionBoard{}, fmt.Errorf("s.repo.FindByUserID -> %w", err)
		}
	}

	if !board.HasPredicted && !reveal {
		board.Hidden = true
		return board, nil
	}

	predictions, err := s.repo.FindAll(ctx)
	if err != nil {
		return domain.PredictionBoard{}, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	stats, err := s.repo.Stats(ctx)
	if err != nil {
		return domain.PredictionBoard{}, fmt.Errorf("s.repo.Stats -> %w", err)
	}

	board.Predictions = predictions
	board.Stats = &stats

	return board, nil
}

func checkPrediction(p domain.Prediction) error {
	switch {
	case p.BabyName == "":
		return fmt.Errorf("%w: baby name is required", ErrInvalidPrediction)
	case p.BirthDate.IsZero():
		return fmt.Errorf("%w: birth date is required", ErrInvalidPrediction)
	case p.WeightKG < domain.MinWeightKG || p.WeightKG > domain.MaxWeightKG:
		return fmt.Errorf("%w: weight must be between %.1f and %.1f kg", ErrInvalidPrediction, domain.MinWeightKG, domain.MaxWeightKG)
	case p.HeightCM < domain.MinHeightCM || p.HeightCM > domain.MaxHeightCM:
		return fmt.Errorf("%w: height must be between %.0f and %.0f cm", ErrInvalidPrediction, domain.MinHeightCM, domain.MaxHeightCM)
	}

	return nil
}
