package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"shareit/infras/otel"
	bookingService "shareit/internal/domains/booking/service"
	itemModel "shareit/internal/domains/item/model"
	itemRepository "shareit/internal/domains/item/repository"
	"shareit/internal/domains/request/model"
	"shareit/internal/domains/request/model/dto"
	"shareit/internal/domains/request/repository"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	msgUserNotFound    = "user not found"
	msgRequestNotFound = "request not found"
	msgInvalidFrom     = "from must not be negative"
	msgInvalidSize     = "size must be positive"
)

type Request interface {
	Create(ctx context.Context, req dto.CreateRequest, requestorID int64) (dto.RequestResponse, error)
	ListOwn(ctx context.Context, requestorID int64) ([]dto.RequestResponse, error)
	ListOthers(ctx context.Context, userID int64, from, size int) ([]dto.RequestResponse, error)
	Get(ctx context.Context, id, userID int64) (dto.RequestResponse, error)
}

type serviceImpl struct {
	repo  repository.Request
	items itemRepository.Item
	users bookingService.UserDirectory
	otel  otel.Otel
}

func New(
	repo repository.Request,
	items itemRepository.Item,
	users bookingService.UserDirectory,
	otel otel.Otel,
) Request {
	return &serviceImpl{
		repo:  repo,
		items: items,
		users: users,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRequest, requestorID int64) (res dto.RequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Request.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.requireUser(ctx, requestorID); err != nil {
		return res, err
	}

	request := req.ToModel(requestorID)

	request.ID, err = s.repo.Insert(ctx, request)
	if err != nil {
		log.Error().Err(err).Msg("failed to create request")

		return res, fmt.Errorf("failed to create request: %w", err)
	}

	res.FromModel(request, nil)

	return res, nil
}

// ListOwn returns the caller's requests, newest first.
func (s *serviceImpl) ListOwn(ctx context.Context, requestorID int64) (res []dto.RequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Request.ListOwn")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.requireUser(ctx, requestorID); err != nil {
		return nil, err
	}

	requests, err := s.repo.GetAll(ctx, newestFirst, byRequestor(requestorID, gDto.FilterOperatorEq))
	if err != nil {
		log.Error().Err(err).Msg("failed to get own requests")

		return nil, fmt.Errorf("failed to get own requests: %w", err)
	}

	return s.present(ctx, requests)
}

// ListOthers returns size requests of other users, newest first, skipping the first from.
func (s *serviceImpl) ListOthers(ctx context.Context, userID int64, from, size int) (res []dto.RequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Request.ListOthers")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if from < 0 {
		return nil, failure.BadRequestFromString(msgInvalidFrom) // nolint:wrapcheck
	}

	if size <= 0 {
		return nil, failure.BadRequestFromString(msgInvalidSize) // nolint:wrapcheck
	}

	if err = s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	params := newestFirst
	params.Offset = from
	params.Limit = size

	requests, err := s.repo.GetAll(ctx, params, byRequestor(userID, gDto.FilterOperatorNotEq))
	if err != nil {
		log.Error().Err(err).Msg("failed to get requests of other users")

		return nil, fmt.Errorf("failed to get requests of other users: %w", err)
	}

	return s.present(ctx, requests)
}

// Get shows any request to any known user, with the items listed in reply.
func (s *serviceImpl) Get(ctx context.Context, id, userID int64) (res dto.RequestResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Request.Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.requireUser(ctx, userID); err != nil {
		return res, err
	}

	request, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Int64("request_id", id).Msg("failed to get request")

		return res, fmt.Errorf("failed to get request: %w", err)
	}

	if request.ID == 0 {
		return res, failure.NotFound(msgRequestNotFound) // nolint:wrapcheck
	}

	answers, err := s.answers(ctx, []int64{request.ID})
	if err != nil {
		return res, err
	}

	res.FromModel(request, answers[request.ID])

	return res, nil
}

func (s *serviceImpl) requireUser(ctx context.Context, userID int64) error {
	exist, err := s.users.Exists(ctx, userID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return failure.NotFound(msgUserNotFound) // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) present(ctx context.Context, requests []model.ItemRequest) ([]dto.RequestResponse, error) {
	res := make([]dto.RequestResponse, len(requests))
	if len(requests) == 0 {
		return res, nil
	}

	ids := make([]int64, len(requests))
	for i, request := range requests {
		ids[i] = request.ID
	}

	answers, err := s.answers(ctx, ids)
	if err != nil {
		return nil, err
	}

	for i, request := range requests {
		res[i].FromModel(request, answers[request.ID])
	}

	return res, nil
}

// answers loads the items that reply to any of requestIDs in one query, grouped by request.
func (s *serviceImpl) answers(ctx context.Context, requestIDs []int64) (map[int64][]dto.Answer, error) {
	items, err := s.items.GetAll(ctx, gDto.QueryParams{SortBy: itemModel.FieldID, SortDir: gDto.SortDirAsc},
		shared.FilterByIDs(requestIDs, itemModel.FieldRequestID, itemModel.TableName),
		itemModel.FieldID, itemModel.FieldName, itemModel.FieldOwnerID, itemModel.FieldRequestID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get items answering requests")

		return nil, fmt.Errorf("failed to get items answering requests: %w", err)
	}

	grouped := make(map[int64][]dto.Answer, len(requestIDs))

	for _, item := range items {
		if item.RequestID == nil {
			continue
		}

		var answer dto.Answer

		answer.FromModel(item)
		grouped[*item.RequestID] = append(grouped[*item.RequestID], answer)
	}

	return grouped, nil
}

var newestFirst = gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}

func byRequestor(userID int64, operator string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldRequestorID, Value: userID, Operator: operator, Table: model.TableName},
		},
	}
}
