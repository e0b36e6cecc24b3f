package service

import (
	"context"
	"fmt"
	"shareit/infras/otel"
	itemService "shareit/internal/domains/item/service"
	"shareit/internal/domains/request/model"
	"shareit/internal/domains/request/repository"
	"shareit/shared"
	"shareit/shared/constant"
)

type directoryImpl struct {
	repo repository.Request
	otel otel.Otel
}

// NewDirectory lets the item service check the request a new item answers.
func NewDirectory(repo repository.Request, otel otel.Otel) itemService.RequestDirectory {
	return &directoryImpl{
		repo: repo,
		otel: otel,
	}
}

func (d *directoryImpl) Exists(ctx context.Context, id int64) (exist bool, err error) {
	ctx, scope := d.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RequestDirectory.Exists")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exist, err = d.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return false, fmt.Errorf("failed to check if request exists: %w", err)
	}

	return exist, nil
}
