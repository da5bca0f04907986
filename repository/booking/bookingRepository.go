// repository/booking/repo.go
package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"storagebooking/model"
	"storagebooking/util/database"
)

var ErrNotFound = errors.New("booking not found")

// ListRow is a booking joined with its owner, for the paginated listings.
// The user columns ride along in the same query so listing N bookings is
// one round trip, not N+1.
type ListRow struct {
	ID            int64      `json:"id"`
	BookingNumber string     `json:"booking_number"`
	UserID        int64      `json:"user_id"`
	UserEmail     string     `json:"user_email"`
	UserName      string     `json:"user_name"`
	Status        string     `json:"status"`
	PaymentStatus *string    `json:"payment_status,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
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
	SumOverlapping(ctx context.Context, itemID int64, start, end time.Time) (int64, error)

	SetBookingStatus(ctx context.Context, q database.Queryer, id int64, status model.BookingStatus) error
	SetBookingItemsStatus(ctx context.Context, q database.Queryer, bookingID int64, status model.ItemStatus) error
	SetBookingItemStatus(ctx context.Context, q database.Queryer, itemRowID int64, status model.ItemStatus) error

	SetPaymentStatus(ctx context.Context, id int64, status *model.PaymentStatus) error
	SetInvoice(ctx context.Context, id int64, invoiceID string, status model.PaymentStatus) error
	FindByInvoiceID(ctx context.Context, invoiceID string) (*model.Booking, error)

	ListBookings(ctx context.Context, page, pageSize int) ([]ListRow, int64, error)
	ListUserBookings(ctx context.Context, userID int64, page, pageSize int) ([]ListRow, int64, error)
	ListOrderedBookings(ctx context.Context, orderBy string, ascending bool, page, pageSize int) ([]ListRow, int64, error)
	CountBookings(ctx context.Context) (int64, error)
}

type repo struct {
	db *sql.DB
}

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) InsertBooking(ctx context.Context, q database.Queryer, b *model.Booking) (int64, error) {
	const query = `
		INSERT INTO bookings (booking_number, user_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`
	err := q.QueryRowContext(ctx, query, b.BookingNumber, b.UserID, b.Status).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	return b.ID, err
}

func (r *repo) InsertBookingItems(ctx context.Context, q database.Queryer, items []model.BookingItem) error {
	const query = `
		INSERT INTO booking_items (booking_id, item_id, location_id, quantity, start_date, end_date, total_days, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	for i := range items {
		it := &items[i]
		if err := q.QueryRowContext(ctx, query,
			it.BookingID, it.ItemID, it.LocationID, it.Quantity,
			it.StartDate, it.EndDate, it.TotalDays, it.Status,
		).Scan(&it.ID); err != nil {
			return err
		}
	}
	return nil
}

func (r *repo) DeleteBookingItems(ctx context.Context, q database.Queryer, bookingID int64) error {
	const query = `DELETE FROM booking_items WHERE booking_id = $1`
	_, err := q.ExecContext(ctx, query, bookingID)
	return err
}

const bookingCols = `id, booking_number, user_id, status, payment_status, invoice_id, created_at, updated_at`

func scanBooking(row *sql.Row) (*model.Booking, error) {
	var b model.Booking
	var ps, inv sql.NullString
	err := row.Scan(&b.ID, &b.BookingNumber, &b.UserID, &b.Status, &ps, &inv, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if ps.Valid {
		s := model.PaymentStatus(ps.String)
		b.PaymentStatus = &s
	}
	if inv.Valid {
		b.InvoiceID = &inv.String
	}
	return &b, nil
}

func (r *repo) GetBooking(ctx context.Context, id int64) (*model.Booking, error) {
	return scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE id = $1`, id))
}

func (r *repo) GetBookingForUpdate(ctx context.Context, q database.Queryer, id int64) (*model.Booking, error) {
	return scanBooking(q.QueryRowContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE id = $1 FOR UPDATE`, id))
}

const itemCols = `id, booking_id, item_id, location_id, quantity, start_date, end_date, total_days, status`

func scanBookingItems(rows *sql.Rows) ([]model.BookingItem, error) {
	defer rows.Close()
	var out []model.BookingItem
	for rows.Next() {
		var it model.BookingItem
		if err := rows.Scan(&it.ID, &it.BookingID, &it.ItemID, &it.LocationID,
			&it.Quantity, &it.StartDate, &it.EndDate, &it.TotalDays, &it.Status); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *repo) GetBookingItems(ctx context.Context, bookingID int64) ([]model.BookingItem, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemCols+` FROM booking_items WHERE booking_id = $1 ORDER BY id`, bookingID)
	if err != nil {
		return nil, err
	}
	return scanBookingItems(rows)
}

func (r *repo) GetBookingItemsForUpdate(ctx context.Context, q database.Queryer, bookingID int64) ([]model.BookingItem, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+itemCols+` FROM booking_items WHERE booking_id = $1 ORDER BY id FOR UPDATE`, bookingID)
	if err != nil {
		return nil, err
	}
	return scanBookingItems(rows)
}

// SumOverlappingQuantity totals committed quantity for an item over every
// pending/confirmed booking line whose inclusive range intersects
// [start, end]. Boundary equality counts as overlapping.
func (r *repo) SumOverlappingQuantity(ctx context.Context, q database.Queryer, itemID int64, start, end time.Time) (int64, error) {
	const query = `
		SELECT COALESCE(SUM(quantity), 0)
		FROM booking_items
		WHERE item_id = $1
		  AND status IN ('pending', 'confirmed')
		  AND start_date <= $3
		  AND end_date >= $2`
	var sum int64
	err := q.QueryRowContext(ctx, query, itemID, start, end).Scan(&sum)
	return sum, err
}

// SumOverlapping is the lock-free variant for read-only availability checks.
func (r *repo) SumOverlapping(ctx context.Context, itemID int64, start, end time.Time) (int64, error) {
	return r.SumOverlappingQuantity(ctx, r.db, itemID, start, end)
}

func (r *repo) SetBookingStatus(ctx context.Context, q database.Queryer, id int64, status model.BookingStatus) error {
	const query = `
		UPDATE bookings
		SET status = $2,
		    updated_at = NOW()
		WHERE id = $1`
	res, err := q.ExecContext(ctx, query, id, status)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repo) SetBookingItemsStatus(ctx context.Context, q database.Queryer, bookingID int64, status model.ItemStatus) error {
	const query = `UPDATE booking_items SET status = $2 WHERE booking_id = $1`
	_, err := q.ExecContext(ctx, query, bookingID, status)
	return err
}

func (r *repo) SetBookingItemStatus(ctx context.Context, q database.Queryer, itemRowID int64, status model.ItemStatus) error {
	const query = `UPDATE booking_items SET status = $2 WHERE id = $1`
	_, err := q.ExecContext(ctx, query, itemRowID, status)
	return err
}

func (r *repo) SetPaymentStatus(ctx context.Context, id int64, status *model.PaymentStatus) error {
	const query = `
		UPDATE bookings
		SET payment_status = $2,
		    updated_at = NOW()
		WHERE id = $1`
	var v any
	if status != nil {
		v = string(*status)
	}
	res, err := r.db.ExecContext(ctx, query, id, v)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repo) SetInvoice(ctx context.Context, id int64, invoiceID string, status model.PaymentStatus) error {
	const query = `
		UPDATE bookings
		SET invoice_id = $2,
		    payment_status = $3,
		    updated_at = NOW()
		WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, invoiceID, status)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repo) FindByInvoiceID(ctx context.Context, invoiceID string) (*model.Booking, error) {
	return scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE invoice_id = $1`, invoiceID))
}

const listSelect = `
	SELECT
		b.id, b.booking_number, b.user_id,
		u.email, u.full_name,
		b.status, b.payment_status, b.created_at, b.updated_at
	FROM bookings b
	JOIN users u ON u.id = b.user_id`

func (r *repo) listRows(ctx context.Context, query string, args ...any) ([]ListRow, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ListRow
	for rows.Next() {
		var row ListRow
		var ps sql.NullString
		var upd sql.NullTime
		if err := rows.Scan(&row.ID, &row.BookingNumber, &row.UserID,
			&row.UserEmail, &row.UserName, &row.Status, &ps, &row.CreatedAt, &upd); err != nil {
			return nil, err
		}
		if ps.Valid {
			row.PaymentStatus = &ps.String
		}
		if upd.Valid {
			row.UpdatedAt = &upd.Time
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *repo) ListBookings(ctx context.Context, page, pageSize int) ([]ListRow, int64, error) {
	total, err := r.CountBookings(ctx)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.listRows(ctx,
		listSelect+` ORDER BY b.created_at DESC, b.id DESC LIMIT $1 OFFSET $2`,
		pageSize, (page-1)*pageSize)
	return rows, total, err
}

func (r *repo) ListUserBookings(ctx context.Context, userID int64, page, pageSize int) ([]ListRow, int64, error) {
	const countQ = `SELECT COUNT(*) FROM bookings WHERE user_id = $1`
	var total int64
	if err := r.db.QueryRowContext(ctx, countQ, userID).Scan(&total); err != nil {
		return nil, 0, err
	}
	rows, err := r.listRows(ctx,
		listSelect+` WHERE b.user_id = $1 ORDER BY b.created_at DESC, b.id DESC LIMIT $2 OFFSET $3`,
		userID, pageSize, (page-1)*pageSize)
	return rows, total, err
}

// orderColumns whitelists sortable columns; anything else falls back to
// created_at so caller input never reaches the ORDER BY clause raw.
var orderColumns = map[string]string{
	"created_at":     "b.created_at",
	"booking_number": "b.booking_number",
	"status":         "b.status",
	"user_id":        "b.user_id",
}

func (r *repo) ListOrderedBookings(ctx context.Context, orderBy string, ascending bool, page, pageSize int) ([]ListRow, int64, error) {
	col, ok := orderColumns[orderBy]
	if !ok {
		col = "b.created_at"
	}
	dir := "DESC"
	if ascending {
		dir = "ASC"
	}
	total, err := r.CountBookings(ctx)
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.listRows(ctx,
		listSelect+` ORDER BY `+col+` `+dir+`, b.id DESC LIMIT $1 OFFSET $2`,
		pageSize, (page-1)*pageSize)
	return rows, total, err
}

func (r *repo) CountBookings(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&total)
	return total, err
}
