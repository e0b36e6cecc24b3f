package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"shareit/infras/otel"
	"shareit/infras/postgres"
	"shareit/internal/domains/item/model"
	gDto "shareit/shared/dto"
	gRepo "shareit/shared/repository"
)

type Item interface {
	Insert(ctx context.Context, model model.Item) (int64, error)
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Item, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Item, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) (int64, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Item]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Item {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Item](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
