package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"shareit/config"
	"shareit/infras/otel"
	"shareit/infras/postgres"
	"shareit/internal/domains/user/model"
	"shareit/internal/domains/user/model/dto"
	"shareit/internal/domains/user/repository"
	"shareit/shared"
	"shareit/shared/cache"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"
	"strconv"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetUser    = "user:get"
	cacheGetAllUser = "user:gets"

	msgUserNotFound = "user not found"
	msgEmailTaken   = "email already registered"
)

type User interface {
	Create(ctx context.Context, req dto.CreateUserRequest) (dto.UserResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams) (dto.GetUsersResponse, error)
	Get(ctx context.Context, id int64) (dto.UserResponse, error)
	Update(ctx context.Context, req dto.UpdateUserRequest, id int64) (dto.UserResponse, error)
	Delete(ctx context.Context, id int64) error
}

type serviceImpl struct {
	repo  repository.User
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.User, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) User {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateUserRequest) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user := req.ToModel()

	if err = s.ensureEmailFree(ctx, user.Email, 0); err != nil {
		return res, err
	}

	user.ID, err = s.repo.Insert(ctx, user)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return res, failure.Conflict(msgEmailTaken) // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to create user")

		return res, fmt.Errorf("failed to create user: %w", err)
	}

	res.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams) (res dto.GetUsersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Sanitize(model.FieldID, model.FieldName, model.FieldEmail, constant.FieldCreatedAt)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllUser, req)

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for users")

		return res, nil
	}

	total, err := s.repo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count users")

		return res, fmt.Errorf("failed to count users: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get users")

		return res, fmt.Errorf("failed to get users: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save users to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id int64) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetUser, strconv.FormatInt(id, 10))

	if cacheErr := s.cache.Get(ctx, cacheKey, &res); cacheErr == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for user")

		return res, nil
	}

	user, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateUserRequest, id int64) (res dto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	req.Normalize()

	user, err := s.load(ctx, id)
	if err != nil {
		return res, err
	}

	if req.Email != nil && *req.Email != user.Email {
		if err = s.ensureEmailFree(ctx, *req.Email, id); err != nil {
			return res, err
		}
	}

	updatedFields := shared.TransformFields(req)
	if len(updatedFields) > 0 {
		if _, err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			if postgres.IsUniqueViolation(err) {
				return res, failure.Conflict(msgEmailTaken) // nolint:wrapcheck
			}

			log.Error().Err(err).Msg("failed to update user")

			return res, fmt.Errorf("failed to update user: %w", err)
		}

		if user, err = s.load(ctx, id); err != nil {
			return res, err
		}

		s.invalidate(ctx, id)
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) Delete(ctx context.Context, id int64) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return failure.NotFound(msgUserNotFound) // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete user")

		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) load(ctx context.Context, id int64) (model.User, error) {
	user, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == 0 {
		return user, failure.NotFound(msgUserNotFound) // nolint:wrapcheck
	}

	return user, nil
}

// ensureEmailFree fails with a conflict when another user already holds email.
func (s *serviceImpl) ensureEmailFree(ctx context.Context, email string, exceptID int64) error {
	filters := []any{
		gDto.Filter{Field: model.FieldEmail, Value: email, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	}

	if exceptID != 0 {
		filters = append(filters, gDto.Filter{Field: model.FieldID, Value: exceptID, Operator: gDto.FilterOperatorNotEq, Table: model.TableName})
	}

	taken, err := s.repo.Exist(ctx, gDto.FilterGroup{Filters: filters, Operator: gDto.FilterGroupOperatorAnd})
	if err != nil {
		log.Error().Err(err).Msg("failed to check if email exists")

		return fmt.Errorf("failed to check if email exists: %w", err)
	}

	if taken {
		return failure.Conflict(msgEmailTaken) // nolint:wrapcheck
	}

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id int64) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetUser, strconv.FormatInt(id, 10))); err != nil {
			log.Error().Err(err).Msg("failed to delete user from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllUser)
	}()
}
