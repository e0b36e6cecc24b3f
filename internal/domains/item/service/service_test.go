package service_test

import (
	"context"
	"net/http"
	otelMocks "shareit/infras/otel/mocks"
	bookingMocks "shareit/internal/domains/booking/mocks"
	bookingServiceMocks "shareit/internal/domains/booking/service/mocks"
	bookingModel "shareit/internal/domains/booking/model"
	commentMocks "shareit/internal/domains/comment/service/mocks"
	commentDto "shareit/internal/domains/comment/model/dto"
	"shareit/internal/domains/item/model/dto"
	"shareit/internal/domains/item/repository"
	"shareit/internal/domains/item/service"
	itemMocks "shareit/internal/domains/item/service/mocks"
	"shareit/shared/failure"
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
)

type fixture struct {
	repo     repository.Item
	users    *bookingMocks.MockUserDirectory
	requests *itemMocks.MockRequestDirectory
	bookings *bookingServiceMocks.MockBooking
	comments *commentMocks.MockComment
	svc      service.Item
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	f := &fixture{
		repo:     repository.New(testdb.Open(t, testdb.Items), otelMocks.NewOtel()),
		users:    bookingMocks.NewMockUserDirectory(ctrl),
		requests: itemMocks.NewMockRequestDirectory(ctrl),
		bookings: bookingServiceMocks.NewMockBooking(ctrl),
		comments: commentMocks.NewMockComment(ctrl),
	}

	f.users.EXPECT().Exists(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id int64) (bool, error) {
			return id == ownerID || id == renterID, nil
		}).AnyTimes()

	f.svc = service.New(f.repo, f.users, f.requests, f.bookings, f.comments, otelMocks.NewOtel())

	return f
}

func boolPtr(b bool) *bool {
	return &b
}

func strPtr(s string) *string {
	return &s
}

func int64Ptr(i int64) *int64 {
	return &i
}

func (f *fixture) create(t *testing.T, name, description string, available bool) dto.ItemResponse {
	t.Helper()

	item, err := f.svc.Create(context.Background(), dto.CreateItemRequest{
		Name:        name,
		Description: description,
		Available:   boolPtr(available),
	}, ownerID)
	require.NoError(t, err)

	return item
}

func TestItem_Create(t *testing.T) {
	f := newFixture(t)

	item := f.create(t, " Drill ", "Cordless drill", true)
	assert.Equal(t, int64(1), item.ID)
	assert.Equal(t, "Drill", item.Name)
	assert.Equal(t, ownerID, item.OwnerID)
	assert.True(t, item.Available)

	_, err := f.svc.Create(context.Background(), dto.CreateItemRequest{
		Name: "Saw", Description: "Hand saw", Available: boolPtr(true),
	}, ghostID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestItem_CreateAnsweringRequest(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.requests.EXPECT().Exists(gomock.Any(), int64(7)).Return(true, nil)
	f.requests.EXPECT().Exists(gomock.Any(), int64(8)).Return(false, nil)

	answer, err := f.svc.Create(ctx, dto.CreateItemRequest{
		Name: "Tent", Description: "Two person tent", Available: boolPtr(true), RequestID: int64Ptr(7),
	}, ownerID)
	require.NoError(t, err)
	require.NotNil(t, answer.RequestID)
	assert.Equal(t, int64(7), *answer.RequestID)

	_, err = f.svc.Create(ctx, dto.CreateItemRequest{
		Name: "Kayak", Description: "Single kayak", Available: boolPtr(true), RequestID: int64Ptr(8),
	}, ownerID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	assert.Equal(t, "request not found", failure.GetMessage(err))
}

func TestItem_Update(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	item := f.create(t, "Drill", "Cordless drill", true)

	updated, err := f.svc.Update(ctx, item.ID, dto.UpdateItemRequest{Available: boolPtr(false)}, ownerID)
	require.NoError(t, err)
	assert.False(t, updated.Available)
	assert.Equal(t, "Drill", updated.Name)

	updated, err = f.svc.Update(ctx, item.ID, dto.UpdateItemRequest{Name: strPtr(" Hammer drill ")}, ownerID)
	require.NoError(t, err)
	assert.Equal(t, "Hammer drill", updated.Name)
	assert.False(t, updated.Available)

	unchanged, err := f.svc.Update(ctx, item.ID, dto.UpdateItemRequest{}, ownerID)
	require.NoError(t, err)
	assert.Equal(t, updated, unchanged)

	_, err = f.svc.Update(ctx, item.ID, dto.UpdateItemRequest{Name: strPtr("Stolen")}, renterID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))

	_, err = f.svc.Update(ctx, 42, dto.UpdateItemRequest{Name: strPtr("Nothing")}, ownerID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestItem_GetShowsBookingsOnlyToOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	item := f.create(t, "Drill", "Cordless drill", true)
	now := time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

	comments := map[int64][]commentDto.CommentResponse{
		item.ID: {{ID: 7, Text: "Works great", AuthorName: "Renter"}},
	}

	f.comments.EXPECT().ListByItems(gomock.Any(), []int64{item.ID}).Return(comments, nil).Times(2)
	f.bookings.EXPECT().Snapshot(gomock.Any(), item.ID).Return(bookingModel.Snapshot{
		LastBooking: &bookingModel.Booking{ID: 3, BookerID: renterID, StartTime: now.Add(-48 * time.Hour), EndTime: now.Add(-24 * time.Hour)},
	}, nil).Times(1)

	byOwner, err := f.svc.Get(ctx, item.ID, ownerID)
	require.NoError(t, err)
	require.NotNil(t, byOwner.LastBooking)
	assert.Equal(t, int64(3), byOwner.LastBooking.ID)
	assert.Equal(t, renterID, byOwner.LastBooking.BookerID)
	assert.Nil(t, byOwner.NextBooking)
	assert.Len(t, byOwner.Comments, 1)

	byRenter, err := f.svc.Get(ctx, item.ID, renterID)
	require.NoError(t, err)
	assert.Nil(t, byRenter.LastBooking)
	assert.Nil(t, byRenter.NextBooking)
	assert.Equal(t, "Works great", byRenter.Comments[0].Text)

	_, err = f.svc.Get(ctx, 42, ownerID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestItem_GetByOwner(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	drill := f.create(t, "Drill", "Cordless drill", true)
	saw := f.create(t, "Saw", "Hand saw", false)

	f.comments.EXPECT().ListByItems(gomock.Any(), []int64{drill.ID, saw.ID}).Return(map[int64][]commentDto.CommentResponse{}, nil)
	f.bookings.EXPECT().Snapshot(gomock.Any(), gomock.Any()).Return(bookingModel.Snapshot{}, nil).Times(2)

	items, err := f.svc.GetByOwner(ctx, ownerID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Drill", items[0].Name)
	assert.Equal(t, "Saw", items[1].Name)
	assert.NotNil(t, items[0].Comments)

	none, err := f.svc.GetByOwner(ctx, renterID)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = f.svc.GetByOwner(ctx, ghostID)
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}

func TestItem_Search(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	f.create(t, "Drill", "Cordless DRILL with battery", true)
	f.create(t, "Saw", "Hand saw", true)
	f.create(t, "Old drill", "Broken", false)
	f.create(t, "Ladder", "Aluminium, fits a drill bag", true)

	found, err := f.svc.Search(ctx, "dRiLl")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "Drill", found[0].Name)
	assert.Equal(t, "Ladder", found[1].Name)

	tarp := f.create(t, "Tarp", "Covers 100% of a car", true)

	percent, err := f.svc.Search(ctx, "%")
	require.NoError(t, err)
	require.Len(t, percent, 1)
	assert.Equal(t, tarp.ID, percent[0].ID)

	underscore, err := f.svc.Search(ctx, "_")
	require.NoError(t, err)
	assert.Empty(t, underscore)

	blank, err := f.svc.Search(ctx, "   ")
	require.NoError(t, err)
	assert.NotNil(t, blank)
	assert.Empty(t, blank)
}

func TestDirectory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	directory := service.NewDirectory(f.repo, otelMocks.NewOtel())

	drill := f.create(t, "Drill", "Cordless drill", true)
	saw := f.create(t, "Saw", "Hand saw", false)

	info, err := directory.Item(ctx, saw.ID)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.ItemInfo{ID: saw.ID, OwnerID: ownerID, Name: "Saw", Available: false}, info)

	missing, err := directory.Item(ctx, 42)
	require.NoError(t, err)
	assert.False(t, missing.Exists())

	owned, err := directory.OwnedBy(ctx, ownerID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{drill.ID, saw.ID}, owned)

	owned, err = directory.OwnedBy(ctx, renterID)
	require.NoError(t, err)
	assert.Empty(t, owned)

	names, err := directory.NamesFor(ctx, []int64{drill.ID, 42})
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{drill.ID: "Drill"}, names)
}
