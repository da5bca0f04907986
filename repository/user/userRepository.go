// repository/user/repo.go
package user

import (
	"context"
	"database/sql"
	"errors"

	"storagebooking/model"
)

var ErrNotFound = errors.New("user not found")

type Repo interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

type repo struct {
	db *sql.DB
}

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const q = `
		SELECT id, email, full_name, role, created_at
		FROM users
		WHERE id = $1`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, id).Scan(&u.ID, &u.Email, &u.FullName, &u.Role, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
