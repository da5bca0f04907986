package model

import (
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to BookingStatus
		want     bool
	}{
		{BookingPending, BookingConfirmed, true},
		{BookingPending, BookingRejected, true},
		{BookingPending, BookingCancelledByUser, true},
		{BookingPending, BookingCancelledByAdmin, true},
		{BookingPending, BookingDeleted, true},
		{BookingPending, BookingCompleted, false},
		{BookingConfirmed, BookingCompleted, true},
		{BookingConfirmed, BookingCancelledByAdmin, true},
		{BookingConfirmed, BookingDeleted, true},
		{BookingConfirmed, BookingRejected, false},
		{BookingRejected, BookingConfirmed, false},
		{BookingCancelledByUser, BookingPending, false},
		{BookingCancelledByAdmin, BookingDeleted, false},
		{BookingCompleted, BookingDeleted, false},
		{BookingDeleted, BookingDeleted, false},
	}
	for _, c := range cases {
		if got := CanTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestTerminal(t *testing.T) {
	terminal := []BookingStatus{
		BookingRejected, BookingCancelledByUser, BookingCancelledByAdmin,
		BookingCompleted, BookingDeleted,
	}
	for _, s := range terminal {
		if !s.Terminal() {
			t.Errorf("%q should be terminal", s)
		}
	}
	for _, s := range []BookingStatus{BookingPending, BookingConfirmed} {
		if s.Terminal() {
			t.Errorf("%q should not be terminal", s)
		}
	}
}

func TestCancelledBy(t *testing.T) {
	if got := CancelledBy(true); got != BookingCancelledByAdmin {
		t.Errorf("CancelledBy(true) = %q", got)
	}
	if got := CancelledBy(false); got != BookingCancelledByUser {
		t.Errorf("CancelledBy(false) = %q", got)
	}
	if !CancelledBy(true).Cancelled() || !CancelledBy(false).Cancelled() {
		t.Error("both cancellation statuses should report Cancelled")
	}
	if BookingRejected.Cancelled() {
		t.Error("rejected is not a cancellation status")
	}
}

func TestRoleElevated(t *testing.T) {
	elevated := []Role{RoleAdmin, RoleSuperAdmin, RoleMainAdmin, RoleSuperVera, RoleStorageManager}
	for _, r := range elevated {
		if !r.Elevated() {
			t.Errorf("%q should be elevated", r)
		}
	}
	if RoleUser.Elevated() {
		t.Error("user role should not be elevated")
	}
	if Role("intern").Elevated() {
		t.Error("unknown role should not be elevated")
	}
}

func TestPaymentStatusValid(t *testing.T) {
	for _, p := range []PaymentStatus{PaymentInvoiceSent, PaymentPaid, PaymentRejected, PaymentOverdue} {
		if !p.Valid() {
			t.Errorf("%q should be valid", p)
		}
	}
	if PaymentStatus("refunded").Valid() {
		t.Error("unknown payment status should be invalid")
	}
}

func TestOverlaps(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC) }
	it := BookingItem{StartDate: day(10), EndDate: day(15)}

	cases := []struct {
		start, end time.Time
		want       bool
	}{
		{day(1), day(9), false},
		{day(16), day(20), false},
		{day(1), day(10), true},  // boundary equality counts
		{day(15), day(20), true}, // boundary equality counts
		{day(11), day(12), true}, // contained
		{day(1), day(20), true},  // containing
	}
	for _, c := range cases {
		if got := it.Overlaps(c.start, c.end); got != c.want {
			t.Errorf("Overlaps(%v, %v) = %v, want %v", c.start, c.end, got, c.want)
		}
	}
}
