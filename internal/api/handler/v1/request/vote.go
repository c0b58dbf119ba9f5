package request

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/babyduj/shower-api/internal/domain"
)

const dateLayout = "2006-01-02"

type CastVoteRequest struct {
	Gender string `json:"gender" example:"girl"`
}

func (req *CastVoteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Gender, validation.Required, validation.In(string(domain.GenderGirl), string(domain.GenderBoy))),
	)
}

type PutPredictionRequest struct {
	BabyName  string  `json:"baby_name" example:"Louise"`
	BirthDate string  `json:"birth_date" example:"2025-09-01"`
	WeightKG  float64 `json:"weight_kg" example:"3.4"`
	HeightCM  float64 `json:"height_cm" example:"50"`
}

func (req *PutPredictionRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.BabyName, validation.Required, validation.RuneLength(1, 50)),
		validation.Field(&req.BirthDate, validation.Required, validation.Date(dateLayout)),
		validation.Field(&req.WeightKG, validation.Required, validation.Min(domain.MinWeightKG), validation.Max(domain.MaxWeightKG)),
		validation.Field(&req.HeightCM, validation.Required, validation.Min(domain.MinHeightCM), validation.Max(domain.MaxHeightCM)),
	)
}

// ToDomain must only be called after Validate succeeded.
func (req *PutPredictionRequest) ToDomain() domain.Prediction {
	birthDate, _ := time.Parse(dateLayout, req.BirthDate)

	return domain.Prediction{
		BabyName:  req.BabyName,
		BirthDate: birthDate,
		WeightKG:  req.WeightKG,
		HeightCM:  req.HeightCM,
	}
}

type RevealRequest struct {
	Gender     string     `json:"gender" example:"girl"`
	RevealedAt *time.Time `json:"revealed_at,omitempty" example:"2025-08-15T18:00:00Z"`
}

func (req *RevealRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Gender, validation.Required, validation.In(string(domain.GenderGirl), string(domain.GenderBoy))),
	)
}
