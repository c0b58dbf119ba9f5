package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type GuestBookRequest struct {
	Message   string `json:"message" example:"Can't wait to meet you!"`
	IsPrivate bool   `json:"is_private"`
}

func (req *GuestBookRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Message, validation.Required, validation.RuneLength(1, 1000)),
	)
}

// EditGuestBookRequest changes an existing entry. Omitting is_private keeps
// the entry's current visibility.
type EditGuestBookRequest struct {
	Message   string `json:"message" example:"Can't wait to meet you!"`
	IsPrivate *bool  `json:"is_private,omitempty"`
}

func (req *EditGuestBookRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Message, validation.Required, validation.RuneLength(1, 1000)),
	)
}
