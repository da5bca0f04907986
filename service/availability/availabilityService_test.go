package availability_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"storagebooking/model"
	itemrepo "storagebooking/repository/item"
	"storagebooking/service/availability"
)

type itemRepoMock struct {
	item *model.Item
}

func (m *itemRepoMock) Get(_ context.Context, id int64) (*model.Item, error) {
	if m.item == nil || m.item.ID != id {
		return nil, itemrepo.ErrNotFound
	}
	return m.item, nil
}

type bookingRepoMock struct {
	booked int64
	err    error
}

func (m *bookingRepoMock) SumOverlapping(_ context.Context, _ int64, _, _ time.Time) (int64, error) {
	return m.booked, m.err
}

func dates() (time.Time, time.Time) {
	start := time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 5)
}

func TestAvailableQuantity(t *testing.T) {
	cases := []struct {
		name   string
		total  int64
		booked int64
		want   int64
	}{
		{"no overlaps means full inventory", 10, 0, 10},
		{"committed quantity subtracts", 10, 7, 3},
		{"fully booked", 10, 10, 0},
		{"over-committed goes negative", 10, 12, -2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			svc := availability.New(
				&itemRepoMock{item: &model.Item{ID: 1, UnitsTotal: c.total, UnitsInStorage: c.total}},
				&bookingRepoMock{booked: c.booked},
			)
			start, end := dates()
			res, err := svc.AvailableQuantity(context.Background(), 1, start, end)
			require.NoError(t, err)
			require.Equal(t, int64(1), res.ItemID)
			require.Equal(t, c.booked, res.AlreadyBookedQuantity)
			require.Equal(t, c.want, res.AvailableQuantity)
		})
	}
}

func TestAvailableQuantityUnknownItem(t *testing.T) {
	svc := availability.New(&itemRepoMock{}, &bookingRepoMock{})
	start, end := dates()
	_, err := svc.AvailableQuantity(context.Background(), 99, start, end)
	require.Equal(t, availability.ErrItemNotFound, availability.Code(err))
}

func TestAvailableQuantityBadRange(t *testing.T) {
	svc := availability.New(&itemRepoMock{item: &model.Item{ID: 1}}, &bookingRepoMock{})
	start, end := dates()
	_, err := svc.AvailableQuantity(context.Background(), 1, end, start)
	require.Equal(t, availability.ErrBadRange, availability.Code(err))
}

func TestAvailableQuantityRepoError(t *testing.T) {
	svc := availability.New(
		&itemRepoMock{item: &model.Item{ID: 1, UnitsTotal: 10}},
		&bookingRepoMock{err: errors.New("db down")},
	)
	start, end := dates()
	_, err := svc.AvailableQuantity(context.Background(), 1, start, end)
	require.Error(t, err)
	require.Equal(t, availability.ErrCode(""), availability.Code(err))
}
