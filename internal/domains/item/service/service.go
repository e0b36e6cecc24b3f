package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"shareit/infras/otel"
	bookingService "shareit/internal/domains/booking/service"
	commentService "shareit/internal/domains/comment/service"
	"shareit/internal/domains/item/model"
	"shareit/internal/domains/item/model/dto"
	"shareit/internal/domains/item/repository"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	msgUserNotFound    = "user not found"
	msgItemNotFound    = "item not found"
	msgRequestNotFound = "request not found"

	argSearchName        = "search_name"
	argSearchDescription = "search_description"
)

type Item interface {
	Create(ctx context.Context, req dto.CreateItemRequest, ownerID int64) (dto.ItemResponse, error)
	Update(ctx context.Context, id int64, req dto.UpdateItemRequest, ownerID int64) (dto.ItemResponse, error)
	Get(ctx context.Context, id, userID int64) (dto.ItemDetailResponse, error)
	GetByOwner(ctx context.Context, ownerID int64) ([]dto.ItemDetailResponse, error)
	Search(ctx context.Context, text string) ([]dto.ItemResponse, error)
}

// RequestDirectory resolves the item requests a new item may answer.
type RequestDirectory interface {
	Exists(ctx context.Context, id int64) (bool, error)
}

type serviceImpl struct {
	repo     repository.Item
	users    bookingService.UserDirectory
	requests RequestDirectory
	bookings bookingService.Booking
	comments commentService.Comment
	otel     otel.Otel
}

func New(
	repo repository.Item,
	users bookingService.UserDirectory,
	requests RequestDirectory,
	bookings bookingService.Booking,
	comments commentService.Comment,
	otel otel.Otel,
) Item {
	return &serviceImpl{
		repo:     repo,
		users:    users,
		requests: requests,
		bookings: bookings,
		comments: comments,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateItemRequest, ownerID int64) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Item.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exist, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound(msgUserNotFound) // nolint:wrapcheck
	}

	if req.RequestID != nil {
		exist, err = s.requests.Exists(ctx, *req.RequestID)
		if err != nil {
			log.Error().Err(err).Msg("failed to check if request exists")

			return res, fmt.Errorf("failed to check if request exists: %w", err)
		}

		if !exist {
			return res, failure.NotFound(msgRequestNotFound) // nolint:wrapcheck
		}
	}

	item := req.ToModel(ownerID)

	item.ID, err = s.repo.Insert(ctx, item)
	if err != nil {
		log.Error().Err(err).Msg("failed to create item")

		return res, fmt.Errorf("failed to create item: %w", err)
	}

	res.FromModel(item)

	return res, nil
}

// Update changes an item on behalf of its owner. Other users see the item as missing.
func (s *serviceImpl) Update(ctx context.Context, id int64, req dto.UpdateItemRequest, ownerID int64) (res dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Item.Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	item, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	if item.OwnerID != ownerID {
		return res, failure.NotFound(msgItemNotFound) // nolint:wrapcheck
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		req.Name = &name
	}

	if req.Description != nil {
		description := strings.TrimSpace(*req.Description)
		req.Description = &description
	}

	updatedFields := shared.TransformFields(req)
	if len(updatedFields) > 0 {
		if _, err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			log.Error().Err(err).Msg("failed to update item")

			return res, fmt.Errorf("failed to update item: %w", err)
		}

		if item, err = s.load(ctx, id); err != nil {
			return res, err
		}
	}

	res.FromModel(item)

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id, userID int64) (res dto.ItemDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Item.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	item, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	details, err := s.details(ctx, []model.Item{item}, userID)
	if err != nil {
		return res, err
	}

	return details[0], nil
}

func (s *serviceImpl) GetByOwner(ctx context.Context, ownerID int64) (res []dto.ItemDetailResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Item.GetByOwner")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exist, err := s.users.Exists(ctx, ownerID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return nil, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return nil, failure.NotFound(msgUserNotFound) // nolint:wrapcheck
	}

	items, err := s.repo.GetAll(ctx, byID, ownedBy(ownerID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get items by owner")

		return nil, fmt.Errorf("failed to get items by owner: %w", err)
	}

	return s.details(ctx, items, ownerID)
}

// Search matches available items whose name or description contains text, ignoring case.
func (s *serviceImpl) Search(ctx context.Context, text string) (res []dto.ItemResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Item.Search")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res = []dto.ItemResponse{}

	text = strings.TrimSpace(text)
	if text == constant.Empty {
		return res, nil
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldAvailable, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.FilterGroup{
				Operator: gDto.FilterGroupOperatorOr,
				Filters: []any{
					gDto.Filter{ArgName: argSearchName, Field: model.FieldName, Value: text, Operator: gDto.FilterOperatorLike, Table: model.TableName},
					gDto.Filter{ArgName: argSearchDescription, Field: model.FieldDescription, Value: text, Operator: gDto.FilterOperatorLike, Table: model.TableName},
				},
			},
		},
	}

	items, err := s.repo.GetAll(ctx, byID, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to search items")

		return nil, fmt.Errorf("failed to search items: %w", err)
	}

	res = make([]dto.ItemResponse, len(items))
	for i, item := range items {
		res[i].FromModel(item)
	}

	return res, nil
}

var byID = gDto.QueryParams{SortBy: model.FieldID, SortDir: gDto.SortDirAsc}

func ownedBy(ownerID int64) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldOwnerID, Value: ownerID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}

func (s *serviceImpl) load(ctx context.Context, id int64) (model.Item, error) {
	item, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get item")

		return item, fmt.Errorf("failed to get item: %w", err)
	}

	if item.ID == 0 {
		return item, failure.NotFound(msgItemNotFound) // nolint:wrapcheck
	}

	return item, nil
}

// details attaches comments to every item and the booking window to the ones viewerID owns.
func (s *serviceImpl) details(ctx context.Context, items []model.Item, viewerID int64) ([]dto.ItemDetailResponse, error) {
	res := make([]dto.ItemDetailResponse, len(items))
	if len(items) == 0 {
		return res, nil
	}

	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	comments, err := s.comments.ListByItems(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	for i, item := range items {
		res[i].FromModel(item, comments[item.ID])

		if item.OwnerID != viewerID {
			continue
		}

		snapshot, err := s.bookings.Snapshot(ctx, item.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to get booking snapshot: %w", err)
		}

		res[i].WithSnapshot(snapshot)
	}

	return res, nil
}
