// Package booking owns the booking state machine: creation, confirmation,
// wholesale updates, rejection, cancellation, soft delete, pickup and
// return. Every multi-step write runs in a single transaction with the
// affected item rows locked, so the virtual-stock check and the insert it
// guards cannot be interleaved by a concurrent booking.
package booking

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"storagebooking/model"
	"storagebooking/notify"
	brepo "storagebooking/repository/booking"
	itemrepo "storagebooking/repository/item"
	"storagebooking/util/database"
)

// errors used by controllers

type ErrCode string

const (
	ErrBookingNotFound      ErrCode = "BOOKING_NOT_FOUND"
	ErrItemNotFound         ErrCode = "ITEM_NOT_FOUND"
	ErrForbidden            ErrCode = "FORBIDDEN"
	ErrNoItems              ErrCode = "NO_ITEMS"
	ErrInvalidDates         ErrCode = "INVALID_DATES"
	ErrInvalidQuantity      ErrCode = "INVALID_QUANTITY"
	ErrNoVirtualStock       ErrCode = "NO_VIRTUAL_STOCK"
	ErrNoPhysicalStock      ErrCode = "NO_PHYSICAL_STOCK"
	ErrAlreadyConfirmed     ErrCode = "ALREADY_CONFIRMED"
	ErrAlreadyRejected      ErrCode = "ALREADY_REJECTED"
	ErrAlreadyCancelled     ErrCode = "ALREADY_CANCELLED"
	ErrAlreadyDeleted       ErrCode = "ALREADY_DELETED"
	ErrAlreadyReturned      ErrCode = "ALREADY_RETURNED"
	ErrAlreadyPickedUp      ErrCode = "ALREADY_PICKED_UP"
	ErrNotConfirmed         ErrCode = "NOT_CONFIRMED"
	ErrInvalidTransition    ErrCode = "INVALID_TRANSITION"
	ErrInvalidPaymentStatus ErrCode = "INVALID_PAYMENT_STATUS"
)

type codedError struct {
	code ErrCode
	msg  string
}

func (e codedError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return string(e.code)
}
func (e codedError) Code() ErrCode { return e.code }

func makeErr(c ErrCode, msg string) error { return codedError{code: c, msg: msg} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

// dto

// ItemRequest is one requested booking line.
type ItemRequest struct {
	ItemID    int64
	Quantity  int64
	StartDate time.Time
	EndDate   time.Time
}

// BookingWithItems is the response shape for operations that touch lines.
// Warnings carries the non-fatal short-lead notices from create/update.
type BookingWithItems struct {
	Booking  *model.Booking      `json:"booking"`
	Items    []model.BookingItem `json:"items"`
	Warnings []string            `json:"warnings,omitempty"`
}

// Page wraps a listing with its pagination metadata.
type Page struct {
	Data     []brepo.ListRow `json:"data"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

type Repo interface {
	InsertBooking(ctx context.Context, q database.Queryer, b *model.Booking) (int64, error)
	InsertBookingItems(ctx context.Context, q database.Queryer, items []model.BookingItem) error
	DeleteBookingItems(ctx context.Context, q database.Queryer, bookingID int64) error

	GetBooking(ctx context.Context, id int64) (*model.Booking, error)
	GetBookingForUpdate(ctx context.Context, q database.Queryer, id int64) (*model.Booking, error)
	GetBookingItems(ctx context.Context, bookingID int64) ([]model.BookingItem, error)
	GetBookingItemsForUpdate(ctx context.Context, q database.Queryer, bookingID int64) ([]model.BookingItem, error)

	SumOverlappingQuantity(ctx context.Context, q database.Queryer, itemID int64, start, end time.Time) (int64, error)

	SetBookingStatus(ctx context.Context, q database.Queryer, id int64, status model.BookingStatus) error
	SetBookingItemsStatus(ctx context.Context, q database.Queryer, bookingID int64, status model.ItemStatus) error
	SetBookingItemStatus(ctx context.Context, q database.Queryer, itemRowID int64, status model.ItemStatus) error

	SetPaymentStatus(ctx context.Context, id int64, status *model.PaymentStatus) error

	ListBookings(ctx context.Context, page, pageSize int) ([]brepo.ListRow, int64, error)
	ListUserBookings(ctx context.Context, userID int64, page, pageSize int) ([]brepo.ListRow, int64, error)
	ListOrderedBookings(ctx context.Context, orderBy string, ascending bool, page, pageSize int) ([]brepo.ListRow, int64, error)
	CountBookings(ctx context.Context) (int64, error)
}

type ItemRepo interface {
	LockForUpdate(ctx context.Context, q database.Queryer, id int64) (*model.Item, error)
	AdjustStorage(ctx context.Context, q database.Queryer, id, delta int64) error
}

type UserRepo interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

type Service interface {
	Create(ctx context.Context, userID int64, items []ItemRequest) (*BookingWithItems, error)
	Confirm(ctx context.Context, bookingID int64, actor model.Actor) (*model.Booking, error)
	Update(ctx context.Context, bookingID int64, actor model.Actor, items []ItemRequest) (*BookingWithItems, error)
	Reject(ctx context.Context, bookingID int64, actor model.Actor) (*model.Booking, error)
	Cancel(ctx context.Context, bookingID int64, actor model.Actor) (*BookingWithItems, error)
	Delete(ctx context.Context, bookingID int64, actor model.Actor) (*model.Booking, error)
	ReturnItems(ctx context.Context, bookingID int64, actor model.Actor) (*BookingWithItems, error)
	ConfirmPickup(ctx context.Context, bookingID int64) (*BookingWithItems, error)
	UpdatePaymentStatus(ctx context.Context, bookingID int64, status *model.PaymentStatus) (*model.Booking, error)

	GetAllBookings(ctx context.Context, page, pageSize int) (*Page, error)
	GetUserBookings(ctx context.Context, userID int64, page, pageSize int) (*Page, error)
	GetOrderedBookings(ctx context.Context, orderBy string, ascending bool, page, pageSize int) (*Page, error)
	GetBookingByID(ctx context.Context, id int64) (*BookingWithItems, error)
	GetBookingsCount(ctx context.Context) (int64, error)
}

// ----- Service implementation -----

type service struct {
	tx  database.TxRunner
	r   Repo
	ir  ItemRepo
	ur  UserRepo
	pub notify.Publisher
	log *slog.Logger
}

func New(tx database.TxRunner, r Repo, ir ItemRepo, ur UserRepo, pub notify.Publisher, log *slog.Logger) Service {
	return &service{tx: tx, r: r, ir: ir, ur: ur, pub: pub, log: log}
}

// publish is best-effort: a failed enqueue is logged and never fails the
// transition that triggered it.
func (s *service) publish(ctx context.Context, ev notify.Event) {
	if s.pub == nil {
		return
	}
	if err := s.pub.Publish(ctx, ev); err != nil {
		s.log.Error("notification publish failed",
			"type", ev.Type, "booking_id", ev.BookingID, "err", err)
	}
}

func (s *service) getForUpdate(ctx context.Context, q database.Queryer, id int64) (*model.Booking, error) {
	b, err := s.r.GetBookingForUpdate(ctx, q, id)
	if errors.Is(err, brepo.ErrNotFound) {
		return nil, makeErr(ErrBookingNotFound, fmt.Sprintf("booking %d not found", id))
	}
	return b, err
}

// validateRequest applies the lead-time rule per line: day-diff <= 0 from
// today's midnight is a hard rejection, day-diff of 1 or 2 only warns.
func validateRequest(now time.Time, items []ItemRequest) ([]string, error) {
	if len(items) == 0 {
		return nil, makeErr(ErrNoItems, "booking must contain at least one item")
	}
	var warnings []string
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, makeErr(ErrInvalidQuantity, fmt.Sprintf("item %d: quantity must be positive", it.ItemID))
		}
		if it.EndDate.Before(it.StartDate) {
			return nil, makeErr(ErrInvalidDates, fmt.Sprintf("item %d: end date is before start date", it.ItemID))
		}
		d := daysUntil(now, it.StartDate)
		if d <= 0 {
			return nil, makeErr(ErrInvalidDates, fmt.Sprintf("item %d: start date must be in the future", it.ItemID))
		}
		if d <= minLeadDays {
			warnings = append(warnings,
				fmt.Sprintf("item %d starts in %d day(s); bookings are normally made at least %d days ahead", it.ItemID, d, minLeadDays))
		}
	}
	return warnings, nil
}

// checkAndBuildItems locks each requested item, verifies virtual stock
// (inventory ceiling minus overlapping committed quantity) and physical
// stock, and returns the rows to insert. Any failing line fails the whole
// request.
func (s *service) checkAndBuildItems(ctx context.Context, q database.Queryer, items []ItemRequest) ([]model.BookingItem, error) {
	rows := make([]model.BookingItem, 0, len(items))
	for _, req := range items {
		item, err := s.ir.LockForUpdate(ctx, q, req.ItemID)
		if err != nil {
			if errors.Is(err, itemrepo.ErrNotFound) {
				return nil, makeErr(ErrItemNotFound, fmt.Sprintf("item %d not found", req.ItemID))
			}
			return nil, fmt.Errorf("lock item %d: %w", req.ItemID, err)
		}

		booked, err := s.r.SumOverlappingQuantity(ctx, q, req.ItemID, req.StartDate, req.EndDate)
		if err != nil {
			return nil, fmt.Errorf("overlap query for item %d: %w", req.ItemID, err)
		}
		if item.UnitsTotal-booked < req.Quantity {
			return nil, makeErr(ErrNoVirtualStock, fmt.Sprintf("not enough virtual stock for item %d", req.ItemID))
		}
		if item.UnitsInStorage < req.Quantity {
			return nil, makeErr(ErrNoPhysicalStock, fmt.Sprintf("not enough physical stock for item %d", req.ItemID))
		}

		rows = append(rows, model.BookingItem{
			ItemID:     req.ItemID,
			LocationID: item.LocationID,
			Quantity:   req.Quantity,
			StartDate:  req.StartDate,
			EndDate:    req.EndDate,
			TotalDays:  totalDays(req.StartDate, req.EndDate),
			Status:     model.ItemPending,
		})
	}
	return rows, nil
}

func (s *service) Create(ctx context.Context, userID int64, items []ItemRequest) (*BookingWithItems, error) {
	now := time.Now()
	warnings, err := validateRequest(now, items)
	if err != nil {
		return nil, err
	}

	b := &model.Booking{
		BookingNumber: newBookingNumber(now),
		UserID:        userID,
		Status:        model.BookingPending,
	}
	var rows []model.BookingItem
	err = s.tx.RunTx(ctx, func(q database.Queryer) error {
		var err error
		rows, err = s.checkAndBuildItems(ctx, q, items)
		if err != nil {
			return err
		}
		if _, err = s.r.InsertBooking(ctx, q, b); err != nil {
			return fmt.Errorf("insert booking: %w", err)
		}
		for i := range rows {
			rows[i].BookingID = b.ID
		}
		if err = s.r.InsertBookingItems(ctx, q, rows); err != nil {
			return fmt.Errorf("insert booking items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, notify.NewEvent(notify.EventBookingCreated, b))
	return &BookingWithItems{Booking: b, Items: rows, Warnings: warnings}, nil
}

func (s *service) Confirm(ctx context.Context, bookingID int64, actor model.Actor) (*model.Booking, error) {
	var b *model.Booking
	err := s.tx.RunTx(ctx, func(q database.Queryer) error {
		var err error
		b, err = s.getForUpdate(ctx, q, bookingID)
		if err != nil {
			return err
		}
		if b.Status == model.BookingConfirmed {
			return makeErr(ErrAlreadyConfirmed, "booking already confirmed")
		}
		if !model.CanTransition(b.Status, model.BookingConfirmed) {
			return makeErr(ErrInvalidTransition, fmt.Sprintf("cannot confirm a booking in status %q", b.Status))
		}

		items, err := s.r.GetBookingItemsForUpdate(ctx, q, bookingID)
		if err != nil {
			return err
		}
		// Physical stock is re-checked at confirmation time; any single
		// shortfall fails the whole operation.
		for _, it := range items {
			stock, err := s.ir.LockForUpdate(ctx, q, it.ItemID)
			if err != nil {
				return fmt.Errorf("lock item %d: %w", it.ItemID, err)
			}
			if stock.UnitsInStorage < it.Quantity {
				return makeErr(ErrNoPhysicalStock, fmt.Sprintf("not enough physical stock for item %d", it.ItemID))
			}
		}

		if err := s.r.SetBookingItemsStatus(ctx, q, bookingID, model.ItemConfirmed); err != nil {
			return err
		}
		if err := s.r.SetBookingStatus(ctx, q, bookingID, model.BookingConfirmed); err != nil {
			return err
		}
		b.Status = model.BookingConfirmed
		return nil
	})
	if err != nil {
		return nil, err
	}

	ev := notify.NewEvent(notify.EventBookingConfirmed, b)
	ev.TriggeredBy = fmt.Sprintf("user:%d", actor.ID)
	s.publish(ctx, ev)
	return b, nil
}

func (s *service) Update(ctx context.Context, bookingID int64, actor model.Actor, items []ItemRequest) (*BookingWithItems, error) {
	warnings, err := validateRequest(time.Now(), items)
	if err != nil {
		return nil, err
	}

	var b *model.Booking
	var rows []model.BookingItem
	err = s.tx.RunTx(ctx, func(q database.Queryer) error {
		var err error
		b, err = s.getForUpdate(ctx, q, bookingID)
		if err != nil {
			return err
		}
		if b.Status != model.BookingPending {
			return makeErr(ErrInvalidTransition, "only pending bookings can be updated")
		}
		if actor.ID != b.UserID && !actor.Elevated() {
			return makeErr(ErrForbidden, "only the owner or an administrator can update a booking")
		}

		// Wholesale replace: drop the old lines first so they do not count
		// against their own availability re-check.
		if err := s.r.DeleteBookingItems(ctx, q, bookingID); err != nil {
			return fmt.Errorf("delete booking items: %w", err)
		}
		rows, err = s.checkAndBuildItems(ctx, q, items)
		if err != nil {
			return err
		}
		for i := range rows {
			rows[i].BookingID = bookingID
		}
		return s.r.InsertBookingItems(ctx, q, rows)
	})
	if err != nil {
		return nil, err
	}

	ev := notify.NewEvent(notify.EventBookingUpdated, b)
	ev.TriggeredBy = fmt.Sprintf("user:%d", actor.ID)
	s.publish(ctx, ev)
	return &BookingWithItems{Booking: b, Items: rows, Warnings: warnings}, nil
}

func (s *service) Reject(ctx context.Context, bookingID int64, actor model.Actor) (*model.Booking, error) {
	if !actor.Elevated() {
		return nil, makeErr(ErrForbidden, "only administrators can reject bookings")
	}

	var b *model.Booking
	err := s.tx.RunTx(ctx, func(q database.Queryer) error {
		var err error
		b, err = s.getForUpdate(ctx, q, bookingID)
		if err != nil {
			return err
		}
		if b.Status == model.BookingRejected {
			return makeErr(ErrAlreadyRejected, "booking already rejected")
		}
		if !model.CanTransition(b.Status, model.BookingRejected) {
			return makeErr(ErrInvalidTransition, fmt.Sprintf("cannot reject a booking in status %q", b.Status))
		}
		if err := s.r.SetBookingItemsStatus(ctx, q, bookingID, model.ItemCancelled); err != nil {
			return err
		}
		if err := s.r.SetBookingStatus(ctx, q, bookingID, model.BookingRejected); err != nil {
			return err
		}
		b.Status = model.BookingRejected
		return nil
	})
	if err != nil {
		return nil, err
	}

	ev := notify.NewEvent(notify.EventBookingRejected, b)
	ev.TriggeredBy = fmt.Sprintf("user:%d", actor.ID)
	s.publish(ctx, ev)
	return b, nil
}

func (s *service) Cancel(ctx context.Context, bookingID int64, actor model.Actor) (*BookingWithItems, error) {
	var b *model.Booking
	var items []model.BookingItem
	err := s.tx.RunTx(ctx, func(q database.Queryer) error {
		var err error
		b, err = s.getForUpdate(ctx, q, bookingID)
		if err != nil {
			return err
		}
		if b.Status.Cancelled() {
			return makeErr(ErrAlreadyCancelled, "booking already cancelled")
		}
		if b.Status.Terminal() {
			return makeErr(ErrInvalidTransition, fmt.Sprintf("cannot cancel a booking in status %q", b.Status))
		}
		if !actor.Elevated() {
			if actor.ID != b.UserID {
				return makeErr(ErrForbidden, "only the owner or an administrator can cancel a booking")
			}
			if b.Status == model.BookingConfirmed {
				return makeErr(ErrForbidden, "a confirmed booking can only be cancelled by an administrator")
			}
		}

		items, err = s.r.GetBookingItemsForUpdate(ctx, q, bookingID)
		if err != nil {
			return err
		}
		if err := s.r.SetBookingItemsStatus(ctx, q, bookingID, model.ItemCancelled); err != nil {
			return err
		}
		target := model.CancelledBy(actor.Elevated())
		if err := s.r.SetBookingStatus(ctx, q, bookingID, target); err != nil {
			return err
		}
		b.Status = target
		for i := range items {
			items[i].Status = model.ItemCancelled
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ev := notify.NewEvent(notify.EventBookingCancelled, b)
	ev.TriggeredBy = fmt.Sprintf("user:%d", actor.ID)
	s.publish(ctx, ev)
	return &BookingWithItems{Booking: b, Items: items}, nil
}

// Delete soft-deletes a booking. Items are cancelled first so their
// quantity stops counting against virtual stock.
func (s *service) Delete(ctx context.Context, bookingID int64, actor model.Actor) (*model.Booking, error) {
	if !actor.Elevated() {
		return nil, makeErr(ErrForbidden, "only administrators can delete bookings")
	}

	var b *model.Booking
	err := s.tx.RunTx(ctx, func(q database.Queryer) error {
		var err error
		b, err = s.getForUpdate(ctx, q, bookingID)
		if err != nil {
			return err
		}
		if b.Status == model.BookingDeleted {
			return makeErr(ErrAlreadyDeleted, "booking already deleted")
		}
		if !model.CanTransition(b.Status, model.BookingDeleted) {
			return makeErr(ErrInvalidTransition, fmt.Sprintf("cannot delete a booking in status %q", b.Status))
		}
		if err := s.r.SetBookingItemsStatus(ctx, q, bookingID, model.ItemCancelled); err != nil {
			return err
		}
		if err := s.r.SetBookingStatus(ctx, q, bookingID, model.BookingDeleted); err != nil {
			return err
		}
		b.Status = model.BookingDeleted
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Deletion reuses the cancellation notification template.
	ev := notify.NewEvent(notify.EventBookingCancelled, b)
	ev.TriggeredBy = fmt.Sprintf("user:%d", actor.ID)
	ev.Payload = map[string]any{"soft_deleted": true}
	s.publish(ctx, ev)
	return b, nil
}

func (s *service) ReturnItems(ctx context.Context, bookingID int64, actor model.Actor) (*BookingWithItems, error) {
	var b *model.Booking
	var items []model.BookingItem
	err := s.tx.RunTx(ctx, func(q database.Queryer) error {
		var err error
		b, err = s.getForUpdate(ctx, q, bookingID)
		if err != nil {
			return err
		}
		items, err = s.r.GetBookingItemsForUpdate(ctx, q, bookingID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return makeErr(ErrNoItems, "no booking items found")
		}
		for _, it := range items {
			if it.Status == model.ItemReturned {
				return makeErr(ErrAlreadyReturned, fmt.Sprintf("item %d already returned", it.ItemID))
			}
		}

		if err := s.r.SetBookingStatus(ctx, q, bookingID, model.BookingCompleted); err != nil {
			return err
		}
		b.Status = model.BookingCompleted
		for i := range items {
			it := &items[i]
			if err := s.r.SetBookingItemStatus(ctx, q, it.ID, model.ItemReturned); err != nil {
				return err
			}
			if err := s.ir.AdjustStorage(ctx, q, it.ItemID, it.Quantity); err != nil {
				return fmt.Errorf("restock item %d: %w", it.ItemID, err)
			}
			it.Status = model.ItemReturned
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ev := notify.NewEvent(notify.EventItemsReturned, b)
	ev.TriggeredBy = fmt.Sprintf("user:%d", actor.ID)
	s.publish(ctx, ev)
	return &BookingWithItems{Booking: b, Items: items}, nil
}

// ConfirmPickup hands the goods over: every line must be in confirmed
// status, and the physical count may never go negative.
func (s *service) ConfirmPickup(ctx context.Context, bookingID int64) (*BookingWithItems, error) {
	var b *model.Booking
	var items []model.BookingItem
	err := s.tx.RunTx(ctx, func(q database.Queryer) error {
		var err error
		b, err = s.getForUpdate(ctx, q, bookingID)
		if err != nil {
			return err
		}
		items, err = s.r.GetBookingItemsForUpdate(ctx, q, bookingID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return makeErr(ErrNoItems, "no booking items found")
		}
		for i := range items {
			it := &items[i]
			if it.Status == model.ItemPickedUp {
				return makeErr(ErrAlreadyPickedUp, fmt.Sprintf("item %d already picked up", it.ItemID))
			}
			if it.Status != model.ItemConfirmed {
				return makeErr(ErrNotConfirmed, fmt.Sprintf("item %d is not confirmed for pickup", it.ItemID))
			}
			if err := s.ir.AdjustStorage(ctx, q, it.ItemID, -it.Quantity); err != nil {
				if errors.Is(err, itemrepo.ErrInsufficientStock) {
					return makeErr(ErrNoPhysicalStock, fmt.Sprintf("not enough physical stock for item %d", it.ItemID))
				}
				return fmt.Errorf("take item %d from storage: %w", it.ItemID, err)
			}
			if err := s.r.SetBookingItemStatus(ctx, q, it.ID, model.ItemPickedUp); err != nil {
				return err
			}
			it.Status = model.ItemPickedUp
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// The pickup notification is attributed to the booking's owner, with
	// "system" as fallback when the owner cannot be resolved.
	triggeredBy := "system"
	if owner, err := s.ur.GetByID(ctx, b.UserID); err == nil {
		triggeredBy = owner.Email
	} else {
		s.log.Warn("pickup owner lookup failed", "booking_id", b.ID, "user_id", b.UserID, "err", err)
	}
	ev := notify.NewEvent(notify.EventItemsPickedUp, b)
	ev.TriggeredBy = triggeredBy
	s.publish(ctx, ev)
	return &BookingWithItems{Booking: b, Items: items}, nil
}

// UpdatePaymentStatus sets the payment status unconditionally; it is not
// tied to the booking state machine.
func (s *service) UpdatePaymentStatus(ctx context.Context, bookingID int64, status *model.PaymentStatus) (*model.Booking, error) {
	if status != nil && !status.Valid() {
		return nil, makeErr(ErrInvalidPaymentStatus, fmt.Sprintf("invalid payment status %q", *status))
	}
	b, err := s.r.GetBooking(ctx, bookingID)
	if errors.Is(err, brepo.ErrNotFound) {
		return nil, makeErr(ErrBookingNotFound, fmt.Sprintf("booking %d not found", bookingID))
	}
	if err != nil {
		return nil, err
	}
	if err := s.r.SetPaymentStatus(ctx, bookingID, status); err != nil {
		return nil, fmt.Errorf("set payment status: %w", err)
	}
	b.PaymentStatus = status
	return b, nil
}

func (s *service) GetAllBookings(ctx context.Context, page, pageSize int) (*Page, error) {
	page, pageSize = normalizePage(page, pageSize)
	rows, total, err := s.r.ListBookings(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &Page{Data: rows, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *service) GetUserBookings(ctx context.Context, userID int64, page, pageSize int) (*Page, error) {
	page, pageSize = normalizePage(page, pageSize)
	rows, total, err := s.r.ListUserBookings(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &Page{Data: rows, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *service) GetOrderedBookings(ctx context.Context, orderBy string, ascending bool, page, pageSize int) (*Page, error) {
	page, pageSize = normalizePage(page, pageSize)
	rows, total, err := s.r.ListOrderedBookings(ctx, orderBy, ascending, page, pageSize)
	if err != nil {
		return nil, err
	}
	return &Page{Data: rows, Total: total, Page: page, PageSize: pageSize}, nil
}

func (s *service) GetBookingByID(ctx context.Context, id int64) (*BookingWithItems, error) {
	b, err := s.r.GetBooking(ctx, id)
	if errors.Is(err, brepo.ErrNotFound) {
		return nil, makeErr(ErrBookingNotFound, fmt.Sprintf("booking %d not found", id))
	}
	if err != nil {
		return nil, err
	}
	items, err := s.r.GetBookingItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &BookingWithItems{Booking: b, Items: items}, nil
}

func (s *service) GetBookingsCount(ctx context.Context) (int64, error) {
	return s.r.CountBookings(ctx)
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
