package repository

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ridehub/ms-route/internal/criteria"
	"github.com/ridehub/ms-route/internal/model"
)

func ptr[V any](v V) *V { return &v }

func newFloor(no int, seatMap int64) *model.Floor {
	return &model.Floor{
		FloorNo:   ptr(no),
		CreatedAt: ptr(time.Unix(0, 0).UTC()),
		SeatMap:   model.NewRef(seatMap),
	}
}

func TestMemoryStore_CRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(FloorTable)

	f := newFloor(1, 10)
	require.NoError(t, s.Insert(ctx, f))
	require.NotNil(t, f.ID)
	assert.Equal(t, int64(1), *f.ID)

	second := newFloor(2, 10)
	require.NoError(t, s.Insert(ctx, second))
	assert.Equal(t, int64(2), *second.ID)

	got, err := s.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, *got.FloorNo)

	// the returned row is a copy
	got.FloorNo = ptr(99)
	again, err := s.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, *again.FloorNo)

	got.PriceFactorFloor = ptr(1.5)
	require.NoError(t, s.Update(ctx, got))
	again, err = s.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 99, *again.FloorNo)
	assert.Equal(t, 1.5, *again.PriceFactorFloor)

	ok, err := s.Exists(ctx, 2)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, s.Delete(ctx, 2))
	ok, err = s.Exists(ctx, 2)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.ErrorIs(t, s.Delete(ctx, 2), ErrNotFound)
	_, err = s.FindByID(ctx, 2)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, &model.Floor{ID: ptr(int64(42))}), ErrNotFound)
	assert.ErrorIs(t, s.Update(ctx, &model.Floor{}), ErrNotFound)
}

func TestMemoryStore_FindAndCount(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(FloorTable)
	for i := 1; i <= 6; i++ {
		require.NoError(t, s.Insert(ctx, newFloor(i%3, int64(i%2+1))))
	}

	values, err := url.ParseQuery("seatMapId.equals=1&sort=floorNo,desc&page=0&size=2")
	require.NoError(t, err)
	q, err := FloorSchema.Parse(values, criteria.Limits{})
	require.NoError(t, err)

	page, err := s.Find(ctx, q)
	require.NoError(t, err)
	total, err := s.Count(ctx, q.Criteria)
	require.NoError(t, err)

	// seat map 1 holds ids 2, 4, 6 with floor numbers 2, 1, 0
	assert.Equal(t, int64(3), total)
	require.Len(t, page, 2)
	assert.Equal(t, int64(2), *page[0].ID)
	assert.Equal(t, int64(4), *page[1].ID)

	all, err := s.Count(ctx, FloorSchema.All())
	require.NoError(t, err)
	assert.Equal(t, int64(6), all)
}
