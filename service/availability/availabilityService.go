// Package availability computes how many units of an item are free to book
// over a date range: total inventory minus quantity already committed to
// overlapping pending/confirmed booking lines. It is a read-only helper;
// the booking lifecycle re-runs the same arithmetic under row locks before
// committing anything.
package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storagebooking/model"
	itemrepo "storagebooking/repository/item"
)

type ErrCode string

const (
	ErrItemNotFound ErrCode = "ITEM_NOT_FOUND"
	ErrBadRange     ErrCode = "BAD_RANGE"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// Result mirrors what callers need to decide bookability. Available may be
// negative when an item is already over-committed; zero or less means not
// bookable.
type Result struct {
	ItemID                int64 `json:"item_id"`
	AlreadyBookedQuantity int64 `json:"alreadyBookedQuantity"`
	AvailableQuantity     int64 `json:"availableQuantity"`
}

type ItemRepo interface {
	Get(ctx context.Context, id int64) (*model.Item, error)
}

type BookingRepo interface {
	SumOverlapping(ctx context.Context, itemID int64, start, end time.Time) (int64, error)
}

type Service interface {
	AvailableQuantity(ctx context.Context, itemID int64, start, end time.Time) (*Result, error)
}

type service struct {
	items    ItemRepo
	bookings BookingRepo
}

func New(items ItemRepo, bookings BookingRepo) Service {
	return &service{items: items, bookings: bookings}
}

func (s *service) AvailableQuantity(ctx context.Context, itemID int64, start, end time.Time) (*Result, error) {
	if end.Before(start) {
		return nil, makeErr(ErrBadRange)
	}

	booked, err := s.bookings.SumOverlapping(ctx, itemID, start, end)
	if err != nil {
		return nil, fmt.Errorf("overlap query for item %d: %w", itemID, err)
	}

	item, err := s.items.Get(ctx, itemID)
	if err != nil {
		if errors.Is(err, itemrepo.ErrNotFound) {
			return nil, makeErr(ErrItemNotFound)
		}
		return nil, fmt.Errorf("fetch item %d: %w", itemID, err)
	}

	return &Result{
		ItemID:                itemID,
		AlreadyBookedQuantity: booked,
		AvailableQuantity:     item.UnitsTotal - booked,
	}, nil
}
