package service

import (
	"time"

	"github.com/babyduj/shower-api/internal/domain"
)

// EventPublisher fans change notifications out to open pages. Publish must
// not block.
type EventPublisher interface {
	Publish(event domain.Event)
}

type noopPublisher struct{}

func (noopPublisher) Publish(domain.Event) {}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}

	return p
}

func newEvent(t domain.EventType, id, actorID uint) domain.Event {
	return domain.Event{
		Type:    t,
		ID:      id,
		ActorID: actorID,
		At:      time.Now().UTC(),
	}
}
