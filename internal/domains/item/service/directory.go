package service

import (
	"context"
	"fmt"
	"shareit/infras/otel"
	bookingModel "shareit/internal/domains/booking/model"
	bookingService "shareit/internal/domains/booking/service"
	"shareit/internal/domains/item/model"
	"shareit/internal/domains/item/repository"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
)

type directoryImpl struct {
	repo repository.Item
	otel otel.Otel
}

// NewDirectory exposes items to the booking engine and the comment service.
func NewDirectory(repo repository.Item, otel otel.Otel) bookingService.ItemDirectory {
	return &directoryImpl{
		repo: repo,
		otel: otel,
	}
}

// Item returns a zero ItemInfo when id does not resolve.
func (d *directoryImpl) Item(ctx context.Context, id int64) (info bookingModel.ItemInfo, err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ItemDirectory.Item")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	item, err := d.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName),
		model.FieldID, model.FieldOwnerID, model.FieldName, model.FieldAvailable)
	if err != nil {
		return info, fmt.Errorf("failed to get item: %w", err)
	}

	return bookingModel.ItemInfo{
		ID:        item.ID,
		OwnerID:   item.OwnerID,
		Name:      item.Name,
		Available: item.Available,
	}, nil
}

func (d *directoryImpl) OwnedBy(ctx context.Context, ownerID int64) (ids []int64, err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ItemDirectory.OwnedBy")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	items, err := d.repo.GetAll(ctx, gDto.QueryParams{}, ownedBy(ownerID), model.FieldID)
	if err != nil {
		return nil, fmt.Errorf("failed to get items by owner: %w", err)
	}

	ids = make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	return ids, nil
}

// NamesFor resolves all ids with a single query; unknown ids are absent from the map.
func (d *directoryImpl) NamesFor(ctx context.Context, ids []int64) (names map[int64]string, err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ItemDirectory.NamesFor")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	names = make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	items, err := d.repo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByIDs(ids, model.FieldID, model.TableName), model.FieldID, model.FieldName)
	if err != nil {
		return nil, fmt.Errorf("failed to get item names: %w", err)
	}

	for _, item := range items {
		names[item.ID] = item.Name
	}

	return names, nil
}
