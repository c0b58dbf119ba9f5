package request

import (
	"errors"
	"strings"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
)

const (
	// At least one letter, no control characters.
	namePattern = `^(?=.*\p{L})[^\p{C}]{1,50}$`
	pinPattern  = `^[0-9]{4}$`
)

var (
	nameExp = regexp2.MustCompile(namePattern, regexp2.None)
	pinExp  = regexp2.MustCompile(pinPattern, regexp2.None)

	errInvalidName = errors.New("must be 1 to 50 characters and contain a letter")
	errInvalidPIN  = errors.New("must be exactly 4 digits")
)

type SignupRequest struct {
	DisplayName string `json:"display_name" example:"Alice"`
	FamilyName  string `json:"family_name" example:"Martin"`
	PIN         string `json:"pin" example:"1234"`
}

func (req *SignupRequest) Validate() error {
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	req.FamilyName = strings.TrimSpace(req.FamilyName)

	return validation.ValidateStruct(
		req,
		validation.Field(&req.DisplayName, validation.Required, matches(nameExp, errInvalidName)),
		validation.Field(&req.FamilyName, validation.Required, matches(nameExp, errInvalidName)),
		validation.Field(&req.PIN, validation.Required, matches(pinExp, errInvalidPIN)),
	)
}

type LoginRequest struct {
	DisplayName string `json:"display_name" example:"Alice"`
	FamilyName  string `json:"family_name" example:"Martin"`
	PIN         string `json:"pin" example:"1234"`
}

// Validate only checks presence; a malformed PIN is reported as wrong
// credentials by the service.
func (req *LoginRequest) Validate() error {
	req.DisplayName = strings.TrimSpace(req.DisplayName)
	req.FamilyName = strings.TrimSpace(req.FamilyName)

	return validation.ValidateStruct(
		req,
		validation.Field(&req.DisplayName, validation.Required),
		validation.Field(&req.FamilyName, validation.Required),
		validation.Field(&req.PIN, validation.Required),
	)
}

type SetAdminRequest struct {
	Admin *bool `json:"admin" example:"true"`
}

func (req *SetAdminRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Admin, validation.NotNil),
	)
}

func matches(exp *regexp2.Regexp, err error) validation.Rule {
	return validation.By(func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}

		ok, matchErr := exp.MatchString(s)
		if matchErr != nil || !ok {
			return err
		}

		return nil
	})
}
