package repository

import (
	"context"
	"fmt"

	"github.com/babyduj/shower-api/internal/domain"
	"github.com/babyduj/shower-api/internal/repository/dao"
)

var ErrPredictionNotFound = dao.ErrPredictionNotFound

type PredictionDAO interface {
	Upsert(ctx context.Context, prediction dao.Prediction) (dao.Prediction, error)
	FindByUserID(ctx context.Context, userID uint) (dao.Prediction, error)
	FindAll(ctx context.Context) ([]dao.Prediction, error)
	Averages(ctx context.Context) (dao.PredictionAverages, error)
}

type PredictionRepository struct {
	dao PredictionDAO
}

func NewPredictionRepository(dao PredictionDAO) *PredictionRepository {
	return &PredictionRepository{
		dao: dao,
	}
}

func (r *PredictionRepository) Upsert(ctx context.Context, userID uint, p domain.Prediction) (domain.Prediction, error) {
	saved, err := r.dao.Upsert(ctx, dao.Prediction{
		UserID:    userID,
		BabyName:  p.BabyName,
		BirthDate: p.BirthDate,
		WeightKG:  p.WeightKG,
		HeightCM:  p.HeightCM,
	})
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("r.dao.Upsert -> %w", err)
	}

	return predictionToDomain(saved), nil
}

func (r *PredictionRepository) FindByUserID(ctx context.Context, userID uint) (domain.Prediction, error) {
	found, err := r.dao.FindByUserID(ctx, userID)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("r.dao.FindByUserID -> %w", err)
	}

	return predictionToDomain(found), nil
}

func (r *PredictionRepository) FindAll(ctx context.Context) ([]domain.Prediction, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	predictions := make([]domain.Prediction, 0, len(found))
	for _, p := range found {
		predictions = append(predictions, predictionToDomain(p))
	}

	return predictions, nil
}

func (r *PredictionRepository) Stats(ctx context.Context) (domain.PredictionStats, error) {
	avg, err := r.dao.Averages(ctx)
	if err != nil {
		return domain.PredictionStats{}, fmt.Errorf("r.dao.Averages -> %w", err)
	}

	return domain.NewPredictionStats(avg.Count, avg.AvgWeight, avg.AvgHeight), nil
}

func predictionToDomain(p dao.Prediction) domain.Prediction {
	return domain.Prediction{
		ID:        p.ID,
		Predictor: publicUser(p.User),
		BabyName:  p.BabyName,
		BirthDate: p.BirthDate,
		WeightKG:  p.WeightKG,
		HeightCM:  p.HeightCM,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
