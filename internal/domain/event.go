package domain

import "time"

type EventType string

const (
	EventVoteCast         EventType = "vote.cast"
	EventPredictionPut    EventType = "prediction.put"
	EventGiftCreated      EventType = "gift.created"
	EventGiftReserved     EventType = "gift.reserved"
	EventGiftUnreserved   EventType = "gift.unreserved"
	EventGiftDeleted      EventType = "gift.deleted"
	EventGuestBookSigned  EventType = "guestbook.signed"
	EventGuestBookDeleted EventType = "guestbook.deleted"
	EventPhotoAdded       EventType = "photo.added"
	EventPhotoDeleted     EventType = "photo.deleted"
	EventPhotoLiked       EventType = "photo.liked"
	EventPhotoUnliked     EventType = "photo.unliked"
	EventResultsRevealed  EventType = "results.revealed"
)

// Event tells open pages that a row changed and should be re-fetched. It
// carries identifiers only, never row content.
type Event struct {
	Type    EventType `json:"type"`
	ID      uint      `json:"id"`
	ActorID uint      `json:"actor_id"`
	At      time.Time `json:"at"`
}
