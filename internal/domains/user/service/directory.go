package service

import (
	"context"
	"fmt"
	"shareit/infras/otel"
	bookingService "shareit/internal/domains/booking/service"
	"shareit/internal/domains/user/model"
	"shareit/internal/domains/user/repository"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
)

type directoryImpl struct {
	repo repository.User
	otel otel.Otel
}

// NewDirectory exposes users to the booking engine.
func NewDirectory(repo repository.User, otel otel.Otel) bookingService.UserDirectory {
	return &directoryImpl{
		repo: repo,
		otel: otel,
	}
}

func (d *directoryImpl) Exists(ctx context.Context, id int64) (exist bool, err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UserDirectory.Exists")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exist, err = d.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return false, fmt.Errorf("failed to check if user exists: %w", err)
	}

	return exist, nil
}

// NamesFor resolves all ids with a single query; unknown ids are absent from the map.
func (d *directoryImpl) NamesFor(ctx context.Context, ids []int64) (names map[int64]string, err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UserDirectory.NamesFor")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	names = make(map[int64]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	users, err := d.repo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByIDs(ids, model.FieldID, model.TableName), model.FieldID, model.FieldName)
	if err != nil {
		return nil, fmt.Errorf("failed to get user names: %w", err)
	}

	for _, user := range users {
		names[user.ID] = user.Name
	}

	return names, nil
}
