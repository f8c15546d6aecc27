// Package event emits listing lifecycle events to Kafka, best-effort.
package event

import (
	"context"
	"time"
)

// Listing event types.
const (
	TypeListingCreated = "listing.created"
	TypeListingUpdated = "listing.updated"
	TypeListingDeleted = "listing.deleted"
)

// Event is one listing lifecycle event as published to the topic.
type Event struct {
	Type       string    `json:"type"`
	ListingID  string    `json:"listing_id"`
	SellerID   string    `json:"seller_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// New returns an Event of the given type stamped with the current time.
func New(eventType, listingID, sellerID string) *Event {
	return &Event{
		Type:       eventType,
		ListingID:  listingID,
		SellerID:   sellerID,
		OccurredAt: time.Now().UTC(),
	}
}

// Emitter publishes events. Implementations must be safe for concurrent use.
type Emitter interface {
	Emit(ctx context.Context, e *Event) error
}
