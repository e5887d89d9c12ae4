// Package queue defines message payloads exchanged over the message broker.
package queue

import (
	"time"

	"github.com/google/uuid"
)

// ListingQueueName is the durable queue carrying listing lifecycle events.
const ListingQueueName = "directory.listings"

// ListingEvent is published whenever a venue, artist or show listing is
// created, updated or deleted. It carries enough for downstream consumers to
// log or trigger notifications without querying the primary database.
type ListingEvent struct {
	EventID    string `json:"event_id"`
	Kind       string `json:"kind"`   // created | updated | deleted
	Entity     string `json:"entity"` // venue | artist | show
	EntityID   uint64 `json:"entity_id"`
	Name       string `json:"name,omitempty"`
	OccurredAt string `json:"occurred_at"`
}

// NewListingEvent stamps a fresh event with an id and UTC timestamp.
func NewListingEvent(kind, entity string, entityID uint64, name string) ListingEvent {
	return ListingEvent{
		EventID:    uuid.NewString(),
		Kind:       kind,
		Entity:     entity,
		EntityID:   entityID,
		Name:       name,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	}
}
