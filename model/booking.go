// model/booking.go
package model

import "time"

type BookingStatus string

const (
	BookingPending          BookingStatus = "pending"
	BookingConfirmed        BookingStatus = "confirmed"
	BookingRejected         BookingStatus = "rejected"
	BookingCancelledByUser  BookingStatus = "cancelled by user"
	BookingCancelledByAdmin BookingStatus = "cancelled by admin"
	BookingCompleted        BookingStatus = "completed"
	BookingDeleted          BookingStatus = "deleted"
)

// transitions is the full booking state machine. Anything not listed here
// is terminal: re-invoking a transition on a terminal booking fails loudly
// instead of being a no-op.
var transitions = map[BookingStatus][]BookingStatus{
	BookingPending: {
		BookingConfirmed,
		BookingRejected,
		BookingCancelledByUser,
		BookingCancelledByAdmin,
		BookingDeleted,
	},
	BookingConfirmed: {
		BookingCompleted,
		BookingCancelledByUser,
		BookingCancelledByAdmin,
		BookingDeleted,
	},
}

func CanTransition(from, to BookingStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s BookingStatus) Terminal() bool {
	return len(transitions[s]) == 0
}

func (s BookingStatus) Cancelled() bool {
	return s == BookingCancelledByUser || s == BookingCancelledByAdmin
}

// CancelledBy picks the terminal cancellation status for the acting role,
// so the admin/user split never leaks out as ad-hoc strings.
func CancelledBy(elevated bool) BookingStatus {
	if elevated {
		return BookingCancelledByAdmin
	}
	return BookingCancelledByUser
}

type PaymentStatus string

const (
	PaymentInvoiceSent PaymentStatus = "invoice-sent"
	PaymentPaid        PaymentStatus = "paid"
	PaymentRejected    PaymentStatus = "payment-rejected"
	PaymentOverdue     PaymentStatus = "overdue"
)

func (p PaymentStatus) Valid() bool {
	switch p {
	case PaymentInvoiceSent, PaymentPaid, PaymentRejected, PaymentOverdue:
		return true
	}
	return false
}

type ItemStatus string

const (
	ItemPending   ItemStatus = "pending"
	ItemConfirmed ItemStatus = "confirmed"
	ItemCancelled ItemStatus = "cancelled"
	ItemPickedUp  ItemStatus = "picked_up"
	ItemReturned  ItemStatus = "returned"
)

type Booking struct {
	ID            int64          `json:"id"`
	BookingNumber string         `json:"booking_number"`
	UserID        int64          `json:"user_id"`
	Status        BookingStatus  `json:"status"`
	PaymentStatus *PaymentStatus `json:"payment_status,omitempty"`
	InvoiceID     *string        `json:"invoice_id,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// BookingItem is one (item, date range, quantity) line of a booking. The
// date range is inclusive on both ends. Its status is tracked independently
// of the parent booking so items can be picked up and returned separately.
type BookingItem struct {
	ID         int64      `json:"id"`
	BookingID  int64      `json:"booking_id"`
	ItemID     int64      `json:"item_id"`
	LocationID int64      `json:"location_id"`
	Quantity   int64      `json:"quantity"`
	StartDate  time.Time  `json:"start_date"`
	EndDate    time.Time  `json:"end_date"`
	TotalDays  int64      `json:"total_days"`
	Status     ItemStatus `json:"status"`
}

// Overlaps reports whether the item's inclusive range intersects
// [start, end]. Boundary equality counts as overlapping.
func (b BookingItem) Overlaps(start, end time.Time) bool {
	return !b.StartDate.After(end) && !b.EndDate.Before(start)
}
