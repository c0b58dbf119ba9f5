package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/babyduj/shower-api/internal/domain"
)

type AddPhotoRequest struct {
	Title       string `json:"title" example:"Week 20"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url" example:"https://cdn.example/photos/week20.jpg"`
	WeekNumber  int    `json:"week_number" example:"20"`
}

func (req *AddPhotoRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.RuneLength(1, 100)),
		validation.Field(&req.ImageURL, validation.Required, is.URL),
		validation.Field(&req.WeekNumber, validation.Required, validation.Min(domain.MinPregnancyWeek), validation.Max(domain.MaxPregnancyWeek)),
	)
}

func (req *AddPhotoRequest) ToDomain() domain.Photo {
	return domain.Photo{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		WeekNumber:  req.WeekNumber,
	}
}

// UploadPhotoRequest holds the text fields of the multipart upload form. The
// image itself is read from the "image" part.
type UploadPhotoRequest struct {
	Title       string `form:"title"`
	Description string `form:"description"`
	WeekNumber  int    `form:"week_number"`
}

func (req *UploadPhotoRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.RuneLength(1, 100)),
		validation.Field(&req.WeekNumber, validation.Required, validation.Min(domain.MinPregnancyWeek), validation.Max(domain.MaxPregnancyWeek)),
	)
}
