package domain

import "time"

type Reveal struct {
	Gender     Gender    `json:"gender"`
	RevealedAt time.Time `json:"revealed_at"`
}

// Results is the announcement page. Reveal and Winners stay empty until the
// reveal time has passed.
type Results struct {
	Revealed bool
	Reveal   *Reveal
	Stats    VoteStats
	Winners  []User
}
