package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"shareit/infras/otel"
	"shareit/infras/postgres"
	"shareit/internal/domains/booking/model"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	gRepo "shareit/shared/repository"
	"shareit/shared/timezone"
	"time"
)

// Booking persists bookings. Lists come back ordered by start time, latest first.
type Booking interface {
	Insert(ctx context.Context, booking model.Booking) (model.Booking, error)
	GetByID(ctx context.Context, id int64) (model.Booking, error)
	FindByBooker(ctx context.Context, bookerID int64) ([]model.Booking, error)
	FindByItemIn(ctx context.Context, itemIDs []int64) ([]model.Booking, error)
	UpdateStatus(ctx context.Context, id int64, from, to model.Status) (bool, error)
	FindLastApproved(ctx context.Context, itemID int64, now time.Time) (model.Booking, error)
	FindNextApproved(ctx context.Context, itemID int64, now time.Time) (model.Booking, error)
	ExistsCompleted(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error)
}

const argExpectedStatus = "status_expected"

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

var latestFirst = gDto.QueryParams{SortBy: model.FieldStartTime, SortDir: gDto.SortDirDesc}

func eq(field string, value any) gDto.Filter {
	return gDto.Filter{Field: field, Value: value, Operator: gDto.FilterOperatorEq, Table: model.TableName}
}

func and(filters ...any) gDto.FilterGroup {
	return gDto.FilterGroup{Filters: filters, Operator: gDto.FilterGroupOperatorAnd}
}

func (r *repositoryImpl) Insert(ctx context.Context, booking model.Booking) (model.Booking, error) {
	id, err := r.Repository.Insert(ctx, booking)
	if err != nil {
		return model.Booking{}, err //nolint:wrapcheck
	}

	booking.ID = id

	return booking, nil
}

func (r *repositoryImpl) GetByID(ctx context.Context, id int64) (model.Booking, error) {
	return r.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
}

func (r *repositoryImpl) FindByBooker(ctx context.Context, bookerID int64) ([]model.Booking, error) {
	return r.GetAll(ctx, latestFirst, and(eq(model.FieldBookerID, bookerID)))
}

func (r *repositoryImpl) FindByItemIn(ctx context.Context, itemIDs []int64) ([]model.Booking, error) {
	if len(itemIDs) == 0 {
		return []model.Booking{}, nil
	}

	return r.GetAll(ctx, latestFirst, shared.FilterByIDs(itemIDs, model.FieldItemID, model.TableName))
}

// UpdateStatus only moves a booking that is still in from; it reports false when another writer got there first.
func (r *repositoryImpl) UpdateStatus(ctx context.Context, id int64, from, to model.Status) (bool, error) {
	ctx, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.UpdateStatus")
	defer scope.End()

	scope.SetAttributes(map[string]any{"booking.id": id, "booking.from": string(from), "booking.to": string(to)})

	filter := and(
		eq(model.FieldID, id),
		gDto.Filter{
			ArgName:  argExpectedStatus,
			Field:    model.FieldStatus,
			Value:    from,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		},
	)

	affected, err := r.Update(ctx, map[string]any{
		model.FieldStatus:        to,
		constant.FieldModifiedAt: timezone.Now(),
	}, filter)
	if err != nil {
		scope.TraceError(err)

		return false, fmt.Errorf("failed to update booking status: %w", err)
	}

	return affected == 1, nil
}

func (r *repositoryImpl) FindLastApproved(ctx context.Context, itemID int64, now time.Time) (model.Booking, error) {
	params := gDto.QueryParams{Limit: 1, SortBy: model.FieldEndTime, SortDir: gDto.SortDirDesc}
	filter := and(
		eq(model.FieldItemID, itemID),
		eq(model.FieldStatus, model.StatusApproved),
		gDto.Filter{Field: model.FieldEndTime, Value: now, Operator: gDto.FilterOperatorLess, Table: model.TableName},
	)

	return r.first(ctx, params, filter)
}

func (r *repositoryImpl) FindNextApproved(ctx context.Context, itemID int64, now time.Time) (model.Booking, error) {
	params := gDto.QueryParams{Limit: 1, SortBy: model.FieldStartTime, SortDir: gDto.SortDirAsc}
	filter := and(
		eq(model.FieldItemID, itemID),
		eq(model.FieldStatus, model.StatusApproved),
		gDto.Filter{Field: model.FieldStartTime, Value: now, Operator: gDto.FilterOperatorGreater, Table: model.TableName},
	)

	return r.first(ctx, params, filter)
}

func (r *repositoryImpl) ExistsCompleted(ctx context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	return r.Exist(ctx, and(
		eq(model.FieldBookerID, bookerID),
		eq(model.FieldItemID, itemID),
		eq(model.FieldStatus, model.StatusApproved),
		gDto.Filter{Field: model.FieldEndTime, Value: now, Operator: gDto.FilterOperatorLess, Table: model.TableName},
	))
}

func (r *repositoryImpl) first(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (model.Booking, error) {
	bookings, err := r.GetAll(ctx, params, filter)
	if err != nil || len(bookings) == 0 {
		return model.Booking{}, err //nolint:wrapcheck
	}

	return bookings[0], nil
}
