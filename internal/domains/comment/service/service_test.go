package service_test

import (
	"context"
	"net/http"
	otelMocks "shareit/infras/otel/mocks"
	bookingMocks "shareit/internal/domains/booking/mocks"
	bookingModel "shareit/internal/domains/booking/model"
	bookingServiceMocks "shareit/internal/domains/booking/service/mocks"
	"shareit/internal/domains/comment/model"
	"shareit/internal/domains/comment/model/dto"
	"shareit/internal/domains/comment/repository"
	"shareit/internal/domains/comment/service"
	"shareit/shared/failure"
	gModel "shareit/shared/model"
	"shareit/shared/testdb"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const (
	ownerID  int64 = 1
	renterID int64 = 2
	ghostID  int64 = 99

	drillID int64 = 10
	sawID   int64 = 11
)

var people = map[int64]string{ownerID: "Owner", renterID: "Renter"}

type fixture struct {
	repo     repository.Comment
	bookings *bookingServiceMocks.MockBooking
	items    *bookingMocks.MockItemDirectory
	users    *bookingMocks.MockUserDirectory
	svc      service.Comment
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:     repository.New(testdb.Open(t, testdb.Comments), otelMocks.NewOtel()),
		bookings: bookingServiceMocks.NewMockBooking(ctrl),
		items:    bookingMocks.NewMockItemDirectory(ctrl),
		users:    bookingMocks.NewMockUserDirectory(ctrl),
	}

	f.users.EXPECT().Exists(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id int64) (bool, error) {
			_, ok := people[id]

			return ok, nil
		}).AnyTimes()
	f.users.EXPECT().NamesFor(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, ids []int64) (map[int64]string, error) {
			names := map[int64]string{}
			for _, id := range ids {
				if name, ok := people[id]; ok {
					names[id] = name
				}
			}

			return names, nil
		}).AnyTimes()
	f.items.EXPECT().Item(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id int64) (bookingModel.ItemInfo, error) {
			if id != drillID && id != sawID {
				return bookingModel.ItemInfo{}, nil
			}

			return bookingModel.ItemInfo{ID: id, OwnerID: ownerID, Name: "Drill", Available: true}, nil
		}).AnyTimes()

	f.svc = service.New(f.repo, f.bookings, f.items, f.users, otelMocks.NewOtel())

	return f
}

func TestComment_Create(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.bookings.EXPECT().MayComment(gomock.Any(), renterID, drillID).Return(true, nil)

	comment, err := f.svc.Create(ctx, dto.CreateCommentRequest{Text: "  Works great  "}, drillID, renterID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), comment.ID)
	assert.Equal(t, "Works great", comment.Text)
	assert.Equal(t, "Renter", comment.AuthorName)
	assert.NotEmpty(t, comment.Created)
}

func TestComment_CreateRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.bookings.EXPECT().MayComment(gomock.Any(), ownerID, drillID).Return(false, nil)

	tests := []struct {
		name     string
		itemID   int64
		authorID int64
		code     int
	}{
		{name: "unknown author", itemID: drillID, authorID: ghostID, code: http.StatusNotFound},
		{name: "unknown item", itemID: 42, authorID: renterID, code: http.StatusNotFound},
		{name: "no completed booking", itemID: drillID, authorID: ownerID, code: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, dto.CreateCommentRequest{Text: "Nice"}, tt.itemID, tt.authorID)
			require.Error(t, err)
			assert.Equal(t, tt.code, failure.GetCode(err))
		})
	}

	all, err := f.svc.ListByItems(ctx, []int64{drillID})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestComment_ListByItems(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	base := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)
	seed := []model.Comment{
		{Text: "second", ItemID: drillID, AuthorID: ownerID, Metadata: gModel.Metadata{CreatedAt: base.Add(time.Hour), ModifiedAt: base}},
		{Text: "first", ItemID: drillID, AuthorID: renterID, Metadata: gModel.Metadata{CreatedAt: base, ModifiedAt: base}},
		{Text: "saw", ItemID: sawID, AuthorID: renterID, Metadata: gModel.Metadata{CreatedAt: base, ModifiedAt: base}},
		{Text: "other", ItemID: 12, AuthorID: renterID, Metadata: gModel.Metadata{CreatedAt: base, ModifiedAt: base}},
	}

	for _, comment := range seed {
		_, err := f.repo.Insert(ctx, comment)
		require.NoError(t, err)
	}

	grouped, err := f.svc.ListByItems(ctx, []int64{drillID, sawID, drillID, 42})
	require.NoError(t, err)
	require.Len(t, grouped, 2)

	require.Len(t, grouped[drillID], 2)
	assert.Equal(t, "first", grouped[drillID][0].Text)
	assert.Equal(t, "Renter", grouped[drillID][0].AuthorName)
	assert.Equal(t, "second", grouped[drillID][1].Text)
	assert.Equal(t, "Owner", grouped[drillID][1].AuthorName)

	require.Len(t, grouped[sawID], 1)
	assert.Equal(t, "saw", grouped[sawID][0].Text)

	empty, err := f.svc.ListByItems(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
