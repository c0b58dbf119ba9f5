package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPredictionNotFound = errors.New("prediction not found")

type Prediction struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:uni_predictions_user_id"`
	User      User      `gorm:"foreignKey:UserID"`
	BabyName  string    `gorm:"not null"`
	BirthDate time.Time `gorm:"type:date;not null"`
	WeightKG  float64   `gorm:"column:weight_kg;not null"`
	HeightCM  float64   `gorm:"column:height_cm;not null"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type PredictionAverages struct {
	Count     int
	AvgWeight float64
	AvgHeight float64
}

type PredictionDAO struct {
	db *gorm.DB
}

func NewPredictionDAO(db *gorm.DB) *PredictionDAO {
	return &PredictionDAO{
		db: db,
	}
}

func (d *PredictionDAO) Upsert(ctx context.Context, prediction Prediction) (Prediction, error) {
	result := d.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"baby_name", "birth_date", "weight_kg", "height_cm", "updated_at",
			}),
		}).
		Create(&prediction)
	if result.Error != nil {
		return Prediction{}, result.Error
	}

	return d.FindByUserID(ctx, prediction.UserID)
}

func (d *PredictionDAO) FindByUserID(ctx context.Context, userID uint) (Prediction, error) {
	var prediction Prediction

	result := d.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&prediction)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Prediction{}, ErrPredictionNotFound
		}

		return Prediction{}, result.Error
	}

	return prediction, nil
}

func (d *PredictionDAO) FindAll(ctx context.Context) ([]Prediction, error) {
	var predictions []Prediction

	result := d.db.WithContext(ctx).Preload("User").Order("updated_at DESC, id DESC").Find(&predictions)
	if result.Error != nil {
		return nil, result.Error
	}

	return predictions, nil
}

func (d *PredictionDAO) Averages(ctx context.Context) (PredictionAverages, error) {
	var avg PredictionAverages

	result := d.db.WithContext(ctx).Model(&Prediction{}).
		Select("COUNT(*) AS count, COALESCE(AVG(weight_kg), 0) AS avg_weight, COALESCE(AVG(height_cm), 0) AS avg_height").
		Scan(&avg)
	if result.Error != nil {
		return PredictionAverages{}, result.Error
	}

	return avg, nil
}
