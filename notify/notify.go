// Package notify turns booking transitions into outbound events. The
// lifecycle service publishes; a separate worker consumes and delivers, so
// a transition never waits on (or fails with) delivery.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"

	"storagebooking/model"
)

type EventType string

const (
	EventBookingCreated   EventType = "booking.created"
	EventBookingConfirmed EventType = "booking.confirmed"
	EventBookingUpdated   EventType = "booking.updated"
	EventBookingRejected  EventType = "booking.rejected"
	EventBookingCancelled EventType = "booking.cancelled"
	EventItemsReturned    EventType = "booking.items_returned"
	EventItemsPickedUp    EventType = "booking.items_picked_up"
)

type Event struct {
	ID            string         `json:"id"`
	Type          EventType      `json:"type"`
	BookingID     int64          `json:"booking_id"`
	BookingNumber string         `json:"booking_number"`
	UserID        int64          `json:"user_id"`
	TriggeredBy   string         `json:"triggered_by,omitempty"`
	Payload       map[string]any `json:"payload,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
}

func NewEvent(t EventType, b *model.Booking) Event {
	return Event{
		ID:            uuid.NewString(),
		Type:          t,
		BookingID:     b.ID,
		BookingNumber: b.BookingNumber,
		UserID:        b.UserID,
		CreatedAt:     time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Sender delivers a consumed event (email, push, ...). Delivery failures
// are logged by the worker and never retried here.
type Sender interface {
	Send(ctx context.Context, ev Event) error
}
