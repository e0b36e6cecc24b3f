package repository

import (
	"context"
	"shareit/infras/otel"
	"shareit/infras/postgres"
	"shareit/internal/domains/request/model"
	gDto "shareit/shared/dto"
	gRepo "shareit/shared/repository"
)

type Request interface {
	Insert(ctx context.Context, model model.ItemRequest) (int64, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.ItemRequest, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.ItemRequest, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.ItemRequest]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Request {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.ItemRequest](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
