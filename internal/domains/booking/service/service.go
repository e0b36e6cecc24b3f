package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"shareit/config"
	"shareit/infras/otel"
	"shareit/infras/prometheus"
	"shareit/internal/domains/booking/model"
	"shareit/internal/domains/booking/model/dto"
	"shareit/internal/domains/booking/repository"
	"shareit/shared"
	"shareit/shared/clock"
	"shareit/shared/constant"
	"shareit/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	msgUserNotFound      = "user not found"
	msgItemNotFound      = "item not found"
	msgBookingNotFound   = "booking not found"
	msgItemUnavailable   = "item is not available"
	msgOwnItem           = "owner cannot book their own item"
	msgStartInPast       = "start must not be in the past"
	msgAlreadyProcessed  = "booking already processed"
	msgOnlyOwnerApproves = "only the item owner can approve a booking"
	msgOnlyBookerCancels = "only the booker can cancel a booking"
	msgNotVisible        = "booking is visible only to its booker and the item owner"
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest, bookerID int64) (dto.BookingResponse, error)
	Approve(ctx context.Context, bookingID, ownerID int64, approved bool) (dto.BookingResponse, error)
	Cancel(ctx context.Context, bookingID, userID int64) (dto.BookingResponse, error)
	Get(ctx context.Context, bookingID, userID int64) (dto.BookingResponse, error)
	ListByBooker(ctx context.Context, bookerID int64, state string) ([]dto.BookingResponse, error)
	ListByOwner(ctx context.Context, ownerID int64, state string) ([]dto.BookingResponse, error)
	Snapshot(ctx context.Context, itemID int64) (model.Snapshot, error)
	MayComment(ctx context.Context, userID, itemID int64) (bool, error)
}

type serviceImpl struct {
	repo    repository.Booking
	items   ItemDirectory
	users   UserDirectory
	clock   clock.Clock
	metrics prometheus.Metrics
	cfg     *config.Config
	otel    otel.Otel
}

func New(
	repo repository.Booking,
	items ItemDirectory,
	users UserDirectory,
	clk clock.Clock,
	metrics prometheus.Metrics,
	cfg *config.Config,
	otel otel.Otel,
) Booking {
	return &serviceImpl{
		repo:    repo,
		items:   items,
		users:   users,
		clock:   clk,
		metrics: metrics,
		cfg:     cfg,
		otel:    otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest, bookerID int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.requireUser(ctx, bookerID); err != nil {
		return res, err
	}

	booking, err := req.ToModel(bookerID)
	if err != nil {
		return res, failure.BadRequest(err) // nolint:wrapcheck
	}

	// end is after start, so a start that is not in the past also keeps end in the future
	if booking.StartTime.Before(s.clock.Now()) {
		return res, failure.BadRequestFromString(msgStartInPast) // nolint:wrapcheck
	}

	item, err := s.items.Item(ctx, req.ItemID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get item")

		return res, fmt.Errorf("failed to get item: %w", err)
	}

	if !item.Exists() {
		return res, failure.NotFound(msgItemNotFound) // nolint:wrapcheck
	}

	if !item.Available {
		return res, failure.BadRequestFromString(msgItemUnavailable) // nolint:wrapcheck
	}

	if item.OwnerID == bookerID {
		return res, failure.NotFound(msgOwnItem) // nolint:wrapcheck
	}

	booking, err = s.repo.Insert(ctx, booking)
	if err != nil {
		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	s.metrics.IncBookingTransition(string(booking.Status))

	bookerNames, err := s.users.NamesFor(ctx, []int64{bookerID})
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve booker name")

		return res, fmt.Errorf("failed to resolve booker name: %w", err)
	}

	res.FromModel(booking, bookerNames[bookerID], item.Name)

	return res, nil
}

func (s *serviceImpl) Approve(ctx context.Context, bookingID, ownerID int64, approved bool) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, item, err := s.load(ctx, bookingID)
	if err != nil {
		return res, err
	}

	if item.OwnerID != ownerID {
		return res, failure.Denied(msgOnlyOwnerApproves, s.cfg.App.Booking.DenyAsNotFound) // nolint:wrapcheck
	}

	to := model.StatusRejected
	if approved {
		to = model.StatusApproved
	}

	if booking, err = s.transition(ctx, booking, to); err != nil {
		return res, err
	}

	return s.enrich(ctx, booking, item)
}

func (s *serviceImpl) Cancel(ctx context.Context, bookingID, userID int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Cancel")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, item, err := s.load(ctx, bookingID)
	if err != nil {
		return res, err
	}

	if booking.BookerID != userID {
		return res, failure.Denied(msgOnlyBookerCancels, s.cfg.App.Booking.DenyAsNotFound) // nolint:wrapcheck
	}

	if booking, err = s.transition(ctx, booking, model.StatusCanceled); err != nil {
		return res, err
	}

	return s.enrich(ctx, booking, item)
}

func (s *serviceImpl) Get(ctx context.Context, bookingID, userID int64) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	booking, item, err := s.load(ctx, bookingID)
	if err != nil {
		return res, err
	}

	if booking.BookerID != userID && item.OwnerID != userID {
		return res, failure.Denied(msgNotVisible, s.cfg.App.Booking.DenyAsNotFound) // nolint:wrapcheck
	}

	return s.enrich(ctx, booking, item)
}

func (s *serviceImpl) ListByBooker(ctx context.Context, bookerID int64, state string) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByBooker")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter, err := model.ParseState(state)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if err = s.requireUser(ctx, bookerID); err != nil {
		return nil, err
	}

	bookings, err := s.repo.FindByBooker(ctx, bookerID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings by booker")

		return nil, fmt.Errorf("failed to get bookings by booker: %w", err)
	}

	return s.present(ctx, bookings, filter)
}

func (s *serviceImpl) ListByOwner(ctx context.Context, ownerID int64, state string) (res []dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListByOwner")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter, err := model.ParseState(state)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	if err = s.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	itemIDs, err := s.items.OwnedBy(ctx, ownerID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get items by owner")

		return nil, fmt.Errorf("failed to get items by owner: %w", err)
	}

	bookings, err := s.repo.FindByItemIn(ctx, itemIDs)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings by items")

		return nil, fmt.Errorf("failed to get bookings by items: %w", err)
	}

	return s.present(ctx, bookings, filter)
}

// Snapshot returns the item's most recently finished and soonest upcoming approved bookings.
// Callers must only expose it to the item owner.
func (s *serviceImpl) Snapshot(ctx context.Context, itemID int64) (res model.Snapshot, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Snapshot")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := s.clock.Now()

	last, err := s.repo.FindLastApproved(ctx, itemID, now)
	if err != nil {
		log.Error().Err(err).Msg("failed to get last booking")

		return res, fmt.Errorf("failed to get last booking: %w", err)
	}

	next, err := s.repo.FindNextApproved(ctx, itemID, now)
	if err != nil {
		log.Error().Err(err).Msg("failed to get next booking")

		return res, fmt.Errorf("failed to get next booking: %w", err)
	}

	if last.Exists() {
		res.LastBooking = &last
	}

	if next.Exists() {
		res.NextBooking = &next
	}

	return res, nil
}

// MayComment reports whether userID has finished an approved rental of itemID.
func (s *serviceImpl) MayComment(ctx context.Context, userID, itemID int64) (ok bool, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MayComment")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	ok, err = s.repo.ExistsCompleted(ctx, userID, itemID, s.clock.Now())
	if err != nil {
		log.Error().Err(err).Msg("failed to check completed bookings")

		return false, fmt.Errorf("failed to check completed bookings: %w", err)
	}

	return ok, nil
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

func (s *serviceImpl) load(ctx context.Context, bookingID int64) (model.Booking, model.ItemInfo, error) {
	booking, err := s.repo.GetByID(ctx, bookingID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, model.ItemInfo{}, fmt.Errorf("failed to get booking: %w", err)
	}

	if !booking.Exists() {
		return booking, model.ItemInfo{}, failure.NotFound(msgBookingNotFound) // nolint:wrapcheck
	}

	item, err := s.items.Item(ctx, booking.ItemID)
	if err != nil {
		log.Error().Err(err).Msg("failed to get item")

		return booking, item, fmt.Errorf("failed to get item: %w", err)
	}

	if !item.Exists() {
		return booking, item, failure.NotFound(msgItemNotFound) // nolint:wrapcheck
	}

	return booking, item, nil
}

// transition moves a waiting booking to status. The store update is conditional, so a
// concurrent decision on the same booking makes this one fail as already processed.
func (s *serviceImpl) transition(ctx context.Context, booking model.Booking, status model.Status) (model.Booking, error) {
	if booking.Status != model.StatusWaiting {
		return booking, failure.BadRequestFromString(msgAlreadyProcessed) // nolint:wrapcheck
	}

	ok, err := s.repo.UpdateStatus(ctx, booking.ID, model.StatusWaiting, status)
	if err != nil {
		log.Error().Err(err).Msg("failed to update booking status")

		return booking, fmt.Errorf("failed to update booking status: %w", err)
	}

	if !ok {
		return booking, failure.BadRequestFromString(msgAlreadyProcessed) // nolint:wrapcheck
	}

	s.metrics.IncBookingTransition(string(status))

	booking.Status = status

	return booking, nil
}

func (s *serviceImpl) enrich(ctx context.Context, booking model.Booking, item model.ItemInfo) (res dto.BookingResponse, err error) {
	names, err := s.users.NamesFor(ctx, []int64{booking.BookerID})
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve booker name")

		return res, fmt.Errorf("failed to resolve booker name: %w", err)
	}

	res.FromModel(booking, names[booking.BookerID], item.Name)

	return res, nil
}

// present sorts and filters bookings, then resolves all names with one lookup per directory.
func (s *serviceImpl) present(ctx context.Context, bookings []model.Booking, state model.State) ([]dto.BookingResponse, error) {
	model.SortLatestFirst(bookings)

	now := s.clock.Now()
	matched := make([]model.Booking, 0, len(bookings))

	for _, booking := range bookings {
		if state.Matches(booking, now) {
			matched = append(matched, booking)
		}
	}

	if len(matched) == 0 {
		return []dto.BookingResponse{}, nil
	}

	bookerIDs := make([]int64, len(matched))
	itemIDs := make([]int64, len(matched))

	for i, booking := range matched {
		bookerIDs[i] = booking.BookerID
		itemIDs[i] = booking.ItemID
	}

	bookerNames, err := s.users.NamesFor(ctx, shared.UniqueIDs(bookerIDs))
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve booker names")

		return nil, fmt.Errorf("failed to resolve booker names: %w", err)
	}

	itemNames, err := s.items.NamesFor(ctx, shared.UniqueIDs(itemIDs))
	if err != nil {
		log.Error().Err(err).Msg("failed to resolve item names")

		return nil, fmt.Errorf("failed to resolve item names: %w", err)
	}

	return dto.FromModels(matched, bookerNames, itemNames), nil
}
