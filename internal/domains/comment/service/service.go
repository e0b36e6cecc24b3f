package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"shareit/infras/otel"
	bookingService "shareit/internal/domains/booking/service"
	"shareit/internal/domains/comment/model"
	"shareit/internal/domains/comment/model/dto"
	"shareit/internal/domains/comment/repository"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	msgUserNotFound = "user not found"
	msgItemNotFound = "item not found"
	msgNotEligible  = "user has not completed a booking of this item"
	sortCommentsBy  = constant.FieldCreatedAt
)

type Comment interface {
	Create(ctx context.Context, req dto.CreateCommentRequest, itemID, authorID int64) (dto.CommentResponse, error)
	ListByItems(ctx context.Context, itemIDs []int64) (map[int64][]dto.CommentResponse, error)
}

type serviceImpl struct {
	repo     repository.Comment
	bookings bookingService.Booking
	items    bookingService.ItemDirectory
	users    bookingService.UserDirectory
	otel     otel.Otel
}

func New(
	repo repository.Comment,
	bookings bookingService.Booking,
	items bookingService.ItemDirectory,
	users bookingService.UserDirectory,
	otel otel.Otel,
) Comment {
	return &serviceImpl{
		repo:     repo,
		bookings: bookings,
		items:    items,
		users:    users,
		otel:     otel,
	}
}

// Create stores a comment from someone who has finished an approved rental of the item.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCommentRequest, itemID, authorID int64) (res dto.CommentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Comment.Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exist, err := s.users.Exists(ctx, authorID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if user exists")

		return res, fmt.Errorf("failed to check if user exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound(msgUserNotFound) // nolint:wrapcheck
	}

	item, err := s.items.Item(ctx, itemID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get item")

		return res, fmt.Errorf("failed to get item: %w", err)
	}

	if !item.Exists() {
		return res, failure.NotFound(msgItemNotFound) // nolint:wrapcheck
	}

	eligible, err := s.bookings.MayComment(ctx, authorID, itemID)
	if err != nil {
		return res, fmt.Errorf("failed to check comment eligibility: %w", err)
	}

	if !eligible {
		return res, failure.BadRequestFromString(msgNotEligible) // nolint:wrapcheck
	}

	comment := req.ToModel(itemID, authorID)

	comment.ID, err = s.repo.Insert(ctx, comment)
	if err != nil {
		log.Error().Err(err).Msg("failed to create comment")

		return res, fmt.Errorf("failed to create comment: %w", err)
	}

	names, err := s.users.NamesFor(ctx, []int64{authorID})
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve author name")

		return res, fmt.Errorf("failed to resolve author name: %w", err)
	}

	res.FromModel(comment, names[authorID])

	return res, nil
}

// ListByItems groups the comments of every item, oldest first, resolving authors in one lookup.
func (s *serviceImpl) ListByItems(ctx context.Context, itemIDs []int64) (res map[int64][]dto.CommentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Comment.ListByItems")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res = make(map[int64][]dto.CommentResponse, len(itemIDs))
	if len(itemIDs) == 0 {
		return res, nil
	}

	params := gDto.QueryParams{SortBy: sortCommentsBy, SortDir: gDto.SortDirAsc}

	comments, err := s.repo.GetAll(ctx, params, shared.FilterByIDs(shared.UniqueIDs(itemIDs), model.FieldItemID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get comments")

		return nil, fmt.Errorf("failed to get comments: %w", err)
	}

	if len(comments) == 0 {
		return res, nil
	}

	authorIDs := make([]int64, len(comments))
	for i, comment := range comments {
		authorIDs[i] = comment.AuthorID
	}

	names, err := s.users.NamesFor(ctx, shared.UniqueIDs(authorIDs))
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve author names")

		return nil, fmt.Errorf("failed to resolve author names: %w", err)
	}

	for _, comment := range comments {
		var response dto.CommentResponse

		response.FromModel(comment, names[comment.AuthorID])
		res[comment.ItemID] = append(res[comment.ItemID], response)
	}

	return res, nil
}
