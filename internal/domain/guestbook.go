package domain

import "time"

type GuestBookEntry struct {
	ID        uint      `json:"id"`
	Author    User      `json:"author"`
	Message   string    `json:"message"`
	IsPrivate bool      `json:"is_private"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// VisibleTo reports whether viewer may read the entry.
func (e GuestBookEntry) VisibleTo(viewer User) bool {
	if !e.IsPrivate {
		return true
	}

	return viewer.Admin || (!viewer.Anonymous() && viewer.ID == e.Author.ID)
}

func (e GuestBookEntry) EditableBy(user User) bool {
	return !user.Anonymous() && user.ID == e.Author.ID
}

func (e GuestBookEntry) DeletableBy(user User) bool {
	return user.Admin || e.EditableBy(user)
}
