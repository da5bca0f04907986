package notify

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Worker drains the outbound queue and hands events to the Sender.
// Best-effort: a bad payload or failed delivery is logged and dropped.
type Worker struct {
	rdb    *redis.Client
	sender Sender
	log    *slog.Logger
}

func NewWorker(rdb *redis.Client, sender Sender, log *slog.Logger) *Worker {
	return &Worker{rdb: rdb, sender: sender, log: log}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		res, err := w.rdb.BLPop(ctx, 5*time.Second, QueueKey).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			w.log.Error("notification queue read failed", "err", err)
			time.Sleep(time.Second)
			continue
		}
		if len(res) < 2 {
			continue
		}

		var ev Event
		if err := json.Unmarshal([]byte(res[1]), &ev); err != nil {
			w.log.Error("bad notification payload", "err", err)
			continue
		}
		if err := w.sender.Send(ctx, ev); err != nil {
			w.log.Error("notification delivery failed",
				"event_id", ev.ID, "type", ev.Type, "booking_id", ev.BookingID, "err", err)
		}
	}
}

// LogSender is the default delivery backend: it writes the notification to
// the log. Email/push transports plug in behind the same interface.
type LogSender struct {
	Log *slog.Logger
}

func (s *LogSender) Send(_ context.Context, ev Event) error {
	s.Log.Info("notification",
		"event_id", ev.ID,
		"type", ev.Type,
		"booking_id", ev.BookingID,
		"booking_number", ev.BookingNumber,
		"user_id", ev.UserID,
		"triggered_by", ev.TriggeredBy,
	)
	return nil
}
