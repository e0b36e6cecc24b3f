package service

//go:generate go run go.uber.org/mock/mockgen -source=./directory.go -destination=../mocks/directory_mock.go -package=mocks

import (
	"context"
	"shareit/internal/domains/booking/model"
)

// ItemDirectory resolves items for the booking engine. A missing item yields a zero ItemInfo.
type ItemDirectory interface {
	Item(ctx context.Context, id int64) (model.ItemInfo, error)
	OwnedBy(ctx context.Context, ownerID int64) ([]int64, error)
	NamesFor(ctx context.Context, ids []int64) (map[int64]string, error)
}

// UserDirectory resolves users for the booking engine.
type UserDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
	NamesFor(ctx context.Context, ids []int64) (map[int64]string, error)
}
