package repository_test

import (
	"context"
	"shareit/infras/otel/mocks"
	"shareit/internal/domains/booking/model"
	"shareit/internal/domains/booking/repository"
	gModel "shareit/shared/model"
	"shareit/shared/testdb"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func newSQLStore(t *testing.T) repository.Booking {
	t.Helper()

	return repository.New(testdb.Open(t, testdb.Bookings), mocks.NewOtel())
}

func stores(t *testing.T) map[string]repository.Booking {
	t.Helper()

	return map[string]repository.Booking{
		"memory": repository.NewMemory(),
		"sql":    newSQLStore(t),
	}
}

func booking(itemID, bookerID int64, start, end time.Duration, status model.Status) model.Booking {
	return model.Booking{
		StartTime: now.Add(start),
		EndTime:   now.Add(end),
		ItemID:    itemID,
		BookerID:  bookerID,
		Status:    status,
		Metadata:  gModel.Metadata{CreatedAt: now, ModifiedAt: now},
	}
}

func insertAll(t *testing.T, store repository.Booking, bookings ...model.Booking) []model.Booking {
	t.Helper()

	saved := make([]model.Booking, len(bookings))

	for i, b := range bookings {
		var err error

		saved[i], err = store.Insert(context.Background(), b)
		require.NoError(t, err)
	}

	return saved
}

func ids(bookings []model.Booking) []int64 {
	res := make([]int64, len(bookings))
	for i, b := range bookings {
		res[i] = b.ID
	}

	return res
}

const day = 24 * time.Hour

func TestBooking_InsertAndGetByID(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			saved := insertAll(t, store,
				booking(10, 2, day, 2*day, model.StatusWaiting),
				booking(10, 3, 3*day, 4*day, model.StatusWaiting),
			)

			assert.Equal(t, []int64{1, 2}, ids(saved))

			got, err := store.GetByID(ctx, saved[1].ID)
			require.NoError(t, err)
			assert.Equal(t, int64(3), got.BookerID)
			assert.Equal(t, model.StatusWaiting, got.Status)
			assert.True(t, got.StartTime.Equal(now.Add(3*day)))

			missing, err := store.GetByID(ctx, 99)
			require.NoError(t, err)
			assert.False(t, missing.Exists())
		})
	}
}

func TestBooking_FindOrdersLatestFirst(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			insertAll(t, store,
				booking(10, 2, -3*day, -2*day, model.StatusApproved),
				booking(11, 2, 2*day, 3*day, model.StatusWaiting),
				booking(10, 3, day, 2*day, model.StatusRejected),
				booking(12, 2, -day, day, model.StatusApproved),
			)

			byBooker, err := store.FindByBooker(ctx, 2)
			require.NoError(t, err)
			assert.Equal(t, []int64{2, 4, 1}, ids(byBooker))

			byItems, err := store.FindByItemIn(ctx, []int64{10, 12, 10})
			require.NoError(t, err)
			assert.Equal(t, []int64{3, 4, 1}, ids(byItems))

			none, err := store.FindByItemIn(ctx, nil)
			require.NoError(t, err)
			assert.Empty(t, none)

			nobody, err := store.FindByBooker(ctx, 42)
			require.NoError(t, err)
			assert.Empty(t, nobody)
		})
	}
}

func TestBooking_UpdateStatusIsConditional(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			saved := insertAll(t, store, booking(10, 2, day, 2*day, model.StatusWaiting))

			ok, err := store.UpdateStatus(ctx, saved[0].ID, model.StatusWaiting, model.StatusApproved)
			require.NoError(t, err)
			assert.True(t, ok)

			ok, err = store.UpdateStatus(ctx, saved[0].ID, model.StatusWaiting, model.StatusCanceled)
			require.NoError(t, err)
			assert.False(t, ok)

			got, err := store.GetByID(ctx, saved[0].ID)
			require.NoError(t, err)
			assert.Equal(t, model.StatusApproved, got.Status)

			ok, err = store.UpdateStatus(ctx, 99, model.StatusWaiting, model.StatusApproved)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestBooking_SnapshotQueries(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			insertAll(t, store,
				booking(10, 2, -5*day, -4*day, model.StatusApproved),
				booking(10, 3, -2*day, -day, model.StatusApproved),
				booking(10, 4, -day/2, -time.Hour, model.StatusRejected),
				booking(10, 2, day, 2*day, model.StatusApproved),
				booking(10, 3, 3*day, 4*day, model.StatusApproved),
				booking(10, 4, time.Hour, 3*time.Hour, model.StatusWaiting),
				booking(11, 2, -time.Hour, time.Hour, model.StatusApproved),
			)

			last, err := store.FindLastApproved(ctx, 10, now)
			require.NoError(t, err)
			assert.Equal(t, int64(2), last.ID)

			next, err := store.FindNextApproved(ctx, 10, now)
			require.NoError(t, err)
			assert.Equal(t, int64(4), next.ID)

			last, err = store.FindLastApproved(ctx, 11, now)
			require.NoError(t, err)
			assert.False(t, last.Exists())

			next, err = store.FindNextApproved(ctx, 11, now)
			require.NoError(t, err)
			assert.False(t, next.Exists())
		})
	}
}

func TestBooking_ExistsCompleted(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()

			insertAll(t, store,
				booking(10, 2, -2*day, -day, model.StatusApproved),
				booking(10, 3, -2*day, -day, model.StatusRejected),
				booking(10, 4, -day, day, model.StatusApproved),
			)

			tests := []struct {
				name     string
				bookerID int64
				itemID   int64
				expected bool
			}{
				{name: "approved and ended", bookerID: 2, itemID: 10, expected: true},
				{name: "rejected", bookerID: 3, itemID: 10, expected: false},
				{name: "still running", bookerID: 4, itemID: 10, expected: false},
				{name: "other item", bookerID: 2, itemID: 11, expected: false},
				{name: "no bookings", bookerID: 5, itemID: 10, expected: false},
			}

			for _, tt := range tests {
				ok, err := store.ExistsCompleted(ctx, tt.bookerID, tt.itemID, now)
				require.NoError(t, err, tt.name)
				assert.Equal(t, tt.expected, ok, tt.name)
			}
		})
	}
}

func TestMemory_UpdateStatusSingleWinner(t *testing.T) {
	ctx := context.Background()
	store := repository.NewMemory()

	saved := insertAll(t, store, booking(10, 2, day, 2*day, model.StatusWaiting))

	var (
		wg      sync.WaitGroup
		winners atomic.Int32
	)

	targets := []model.Status{model.StatusApproved, model.StatusRejected, model.StatusCanceled}

	for i := range 30 {
		wg.Add(1)

		go func(to model.Status) {
			defer wg.Done()

			ok, err := store.UpdateStatus(ctx, saved[0].ID, model.StatusWaiting, to)
			if err == nil && ok {
				winners.Add(1)
			}
		}(targets[i%len(targets)])
	}

	wg.Wait()

	assert.Equal(t, int32(1), winners.Load())
}
