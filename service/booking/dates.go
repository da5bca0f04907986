package booking

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Bookings must start at least this many days after "today". A shorter
// lead produces a warning, not a rejection; zero or negative lead is a
// hard rejection.
const minLeadDays = 2

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// daysUntil counts whole days between the local midnights of from and to.
func daysUntil(from, to time.Time) int {
	return int(math.Ceil(midnight(to).Sub(midnight(from)).Hours() / 24))
}

// totalDays is the day-count of an inclusive range, both endpoints
// normalized to midnight first: ceil((end - start) / 1 day).
func totalDays(start, end time.Time) int64 {
	return int64(math.Ceil(midnight(end).Sub(midnight(start)).Hours() / 24))
}

// newBookingNumber generates a human-readable booking number. It is not
// guaranteed globally unique by construction.
func newBookingNumber(t time.Time) string {
	return fmt.Sprintf("BK-%s-%04d", t.Format("20060102"), rand.Intn(10000))
}
