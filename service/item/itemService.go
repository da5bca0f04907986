package item

import (
	"context"
	"errors"
	"strings"

	"storagebooking/model"
	itemrepo "storagebooking/repository/item"
)

type ErrCode string

const (
	ErrBadInput ErrCode = "BAD_INPUT"
	ErrNotFound ErrCode = "NOT_FOUND"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Repo interface {
	Get(ctx context.Context, id int64) (*model.Item, error)
	List(ctx context.Context) ([]model.Item, error)
	Create(ctx context.Context, it *model.Item) (int64, error)
}

type Service interface {
	List(ctx context.Context) ([]model.Item, error)
	Get(ctx context.Context, id int64) (*model.Item, error)
	Create(ctx context.Context, name string, locationID, total, inStorage int64) (*model.Item, error)
}

type service struct {
	r Repo
}

func New(r Repo) Service { return &service{r: r} }

func (s *service) List(ctx context.Context) ([]model.Item, error) {
	return s.r.List(ctx)
}

func (s *service) Get(ctx context.Context, id int64) (*model.Item, error) {
	it, err := s.r.Get(ctx, id)
	if errors.Is(err, itemrepo.ErrNotFound) {
		return nil, makeErr(ErrNotFound)
	}
	return it, err
}

func (s *service) Create(ctx context.Context, name string, locationID, total, inStorage int64) (*model.Item, error) {
	if strings.TrimSpace(name) == "" {
		return nil, makeErr(ErrBadInput)
	}
	if total < 0 || inStorage < 0 || inStorage > total {
		return nil, makeErr(ErrBadInput)
	}
	it := &model.Item{
		Name:           strings.TrimSpace(name),
		LocationID:     locationID,
		UnitsTotal:     total,
		UnitsInStorage: inStorage,
	}
	if _, err := s.r.Create(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}
