package domain

import (
	"strings"
	"time"
)

// User is a signed-up identity. The pair (DisplayName, FamilyName) is unique
// case-insensitively.
type User struct {
	ID          uint       `json:"id"`
	DisplayName string     `json:"display_name"`
	FamilyName  string     `json:"family_name"`
	PIN         string     `json:"-"`
	Admin       bool       `json:"admin"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (u User) FullName() string {
	return strings.TrimSpace(u.DisplayName + " " + u.FamilyName)
}

// Anonymous reports whether u is the zero identity used for signed-out readers.
func (u User) Anonymous() bool {
	return u.ID == 0
}
