package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/babyduj/shower-api/internal/domain"
)

type CreateGiftRequest struct {
	Title       string   `json:"title" example:"Baby monitor"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty" example:"59.9"`
	Link        *string  `json:"link,omitempty" example:"https://shop.example/monitor"`
}

func (req *CreateGiftRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Title, validation.Required, validation.RuneLength(1, 100)),
		validation.Field(&req.Description, validation.RuneLength(0, 500)),
		validation.Field(&req.Price, validation.Min(0.0), validation.Max(domain.MaxGiftPrice)),
		validation.Field(&req.Link, is.URL),
	)
}

func (req *CreateGiftRequest) ToDomain() domain.Gift {
	return domain.Gift{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Link:        req.Link,
	}
}
