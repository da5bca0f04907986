package notify

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"storagebooking/model"
)

func TestNewEvent(t *testing.T) {
	b := &model.Booking{ID: 5, BookingNumber: "BK-20260901-0042", UserID: 3}
	ev := NewEvent(EventBookingConfirmed, b)

	require.NotEmpty(t, ev.ID)
	require.Equal(t, EventBookingConfirmed, ev.Type)
	require.Equal(t, int64(5), ev.BookingID)
	require.Equal(t, "BK-20260901-0042", ev.BookingNumber)
	require.Equal(t, int64(3), ev.UserID)
	require.WithinDuration(t, time.Now().UTC(), ev.CreatedAt, time.Minute)

	other := NewEvent(EventBookingConfirmed, b)
	require.NotEqual(t, ev.ID, other.ID)
}

func TestEventRoundTrip(t *testing.T) {
	ev := NewEvent(EventBookingCancelled, &model.Booking{ID: 5, UserID: 3})
	ev.TriggeredBy = "user:9"
	ev.Payload = map[string]any{"soft_deleted": true}

	raw, err := json.Marshal(ev)
	require.NoError(t, err)

	var got Event
	require.NoError(t, json.Unmarshal(raw, &got))
	require.Equal(t, ev.ID, got.ID)
	require.Equal(t, ev.Type, got.Type)
	require.Equal(t, "user:9", got.TriggeredBy)
	require.Equal(t, true, got.Payload["soft_deleted"])
}

func TestLogSender(t *testing.T) {
	s := &LogSender{Log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	ev := NewEvent(EventItemsPickedUp, &model.Booking{ID: 5})
	require.NoError(t, s.Send(context.Background(), ev))
}
