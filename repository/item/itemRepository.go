// repository/item/repo.go
package item

import (
	"context"
	"database/sql"
	"errors"

	"storagebooking/model"
	"storagebooking/util/database"
)

var (
	ErrNotFound          = errors.New("item not found")
	ErrInsufficientStock = errors.New("insufficient physical stock")
)

type Repo interface {
	Get(ctx context.Context, id int64) (*model.Item, error)
	List(ctx context.Context) ([]model.Item, error)
	Create(ctx context.Context, it *model.Item) (int64, error)

	// LockForUpdate takes a row lock on the item so stock checks and the
	// inserts that depend on them stay serialized per item.
	LockForUpdate(ctx context.Context, q database.Queryer, id int64) (*model.Item, error)

	// AdjustStorage moves the physically-present count by delta. The guard
	// is in the statement itself: the count never goes negative or above
	// the inventory ceiling.
	AdjustStorage(ctx context.Context, q database.Queryer, id, delta int64) error
}

type repo struct {
	db *sql.DB
}

func New(db *sql.DB) Repo { return &repo{db: db} }

const itemCols = `id, name, location_id, items_number_total, items_number_currently_in_storage, created_at`

func scanItem(row *sql.Row) (*model.Item, error) {
	var it model.Item
	err := row.Scan(&it.ID, &it.Name, &it.LocationID, &it.UnitsTotal, &it.UnitsInStorage, &it.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *repo) Get(ctx context.Context, id int64) (*model.Item, error) {
	return scanItem(r.db.QueryRowContext(ctx,
		`SELECT `+itemCols+` FROM storage_items WHERE id = $1`, id))
}

func (r *repo) List(ctx context.Context) ([]model.Item, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+itemCols+` FROM storage_items ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Item
	for rows.Next() {
		var it model.Item
		if err := rows.Scan(&it.ID, &it.Name, &it.LocationID, &it.UnitsTotal, &it.UnitsInStorage, &it.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *repo) Create(ctx context.Context, it *model.Item) (int64, error) {
	const query = `
		INSERT INTO storage_items (name, location_id, items_number_total, items_number_currently_in_storage)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		it.Name, it.LocationID, it.UnitsTotal, it.UnitsInStorage,
	).Scan(&it.ID, &it.CreatedAt)
	return it.ID, err
}

func (r *repo) LockForUpdate(ctx context.Context, q database.Queryer, id int64) (*model.Item, error) {
	return scanItem(q.QueryRowContext(ctx,
		`SELECT `+itemCols+` FROM storage_items WHERE id = $1 FOR UPDATE`, id))
}

func (r *repo) AdjustStorage(ctx context.Context, q database.Queryer, id, delta int64) error {
	const query = `
		UPDATE storage_items
		SET items_number_currently_in_storage = items_number_currently_in_storage + $2
		WHERE id = $1
		  AND items_number_currently_in_storage + $2 >= 0
		  AND items_number_currently_in_storage + $2 <= items_number_total`
	res, err := q.ExecContext(ctx, query, id, delta)
	if err != nil {
		return err
	}
	if aff, _ := res.RowsAffected(); aff == 0 {
		return ErrInsufficientStock
	}
	return nil
}
