package domain

import (
	"math"
	"time"
)

const (
	MinWeightKG = 0.5
	MaxWeightKG = 8.0
	MinHeightCM = 30.0
	MaxHeightCM = 70.0
)

type Prediction struct {
	ID        uint      `json:"id"`
	Predictor User      `json:"predictor"`
	BabyName  string    `json:"baby_name"`
	BirthDate time.Time `json:"birth_date"`
	WeightKG  float64   `json:"weight_kg"`
	HeightCM  float64   `json:"height_cm"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PredictionStats struct {
	Count int `json:"count"`
	// AvgWeightKG is rounded to one decimal, AvgHeightCM to the unit.
	AvgWeightKG float64 `json:"avg_weight_kg"`
	AvgHeightCM float64 `json:"avg_height_cm"`
}

func NewPredictionStats(count int, avgWeight, avgHeight float64) PredictionStats {
	if count == 0 {
		return PredictionStats{}
	}

	return PredictionStats{
		Count:       count,
		AvgWeightKG: math.Round(avgWeight*10) / 10,
		AvgHeightCM: math.Round(avgHeight),
	}
}

type PredictionBoard struct {
	Mine         *Prediction
	HasPredicted bool
	Hidden       bool
	Stats        *PredictionStats
	Predictions  []Prediction
}
