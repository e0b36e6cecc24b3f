package booking

import (
	"net/http"
	"shareit/infras/otel"
	"shareit/internal/domains/booking/model"
	"shareit/internal/domains/booking/model/dto"
	"shareit/internal/domains/booking/service"
	"shareit/shared"
	"shareit/shared/constant"
	"shareit/shared/failure"
	"shareit/shared/validator"
	"shareit/transport/http/middleware"
	"shareit/transport/http/response"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const msgInvalidApproved = "approved must be true or false"

type Handler struct {
	service service.Booking
	otel    otel.Otel
}

func New(service service.Booking, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.Get("/", handler.GetBookings)
		routerGroup.Get("/owner", handler.GetOwnerBookings)
		routerGroup.Get("/{id}", handler.GetBookingByID)
		routerGroup.Patch("/{id}", handler.ApproveBooking)
		routerGroup.Delete("/{id}", handler.CancelBooking)
	})
}

// CreateBooking handles a rental request for an item.
// @Summary Request a booking
// @Description Create a WAITING booking of an available item owned by someone else.
// @Tags Booking
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Booker ID"
// @Param request body dto.CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	bookerID, err := middleware.UserID(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.CreateBookingRequest{}

	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Create(ctx, req, bookerID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking created by user " + strconv.FormatInt(bookerID, 10))

	response.WithJSON(writer, http.StatusCreated, booking)
}

// ApproveBooking records the owner's decision on a waiting booking.
// @Summary Approve or reject a booking
// @Tags Booking
// @Produce json
// @Param X-Sharer-User-Id header int true "Item owner ID"
// @Param id path int true "Booking ID"
// @Param approved query bool true "Decision"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [patch]
func (handler *Handler) ApproveBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveBooking")
	defer scope.End()

	ownerID, bookingID, err := callerAndID(request)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	approved := shared.ConvertStringToBool(request.URL.Query().Get(constant.RequestParamApproved))
	if approved == nil {
		response.WithError(writer, failure.BadRequestFromString(msgInvalidApproved))

		return
	}

	booking, err := handler.service.Approve(ctx, bookingID, ownerID, *approved)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("booking_id", bookingID).Msg("failed to decide booking")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Booking " + booking.Status)

	response.WithJSON(writer, http.StatusOK, booking)
}

// CancelBooking withdraws a waiting booking on behalf of its booker.
// @Summary Cancel a booking
// @Tags Booking
// @Produce json
// @Param X-Sharer-User-Id header int true "Booker ID"
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [delete]
func (handler *Handler) CancelBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	userID, bookingID, err := callerAndID(request)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Cancel(ctx, bookingID, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("booking_id", bookingID).Msg("failed to cancel booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, booking)
}

// GetBookingByID returns a booking to its booker or the item owner.
// @Summary Get a booking
// @Tags Booking
// @Produce json
// @Param X-Sharer-User-Id header int true "Booker or item owner ID"
// @Param id path int true "Booking ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/{id} [get]
func (handler *Handler) GetBookingByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookingByID")
	defer scope.End()

	userID, bookingID, err := callerAndID(request)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	booking, err := handler.service.Get(ctx, bookingID, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("booking_id", bookingID).Msg("failed to get booking")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, booking)
}

// GetBookings lists the caller's own bookings.
// @Summary List bookings made by the caller
// @Tags Booking
// @Produce json
// @Param X-Sharer-User-Id header int true "Booker ID"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING, REJECTED or CANCELED" default(ALL)
// @Success 200 {object} response.Data[[]dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings [get]
func (handler *Handler) GetBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBookings")
	defer scope.End()

	bookerID, err := middleware.UserID(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	bookings, err := handler.service.ListByBooker(ctx, bookerID, stateParam(request))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list bookings by booker")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, bookings)
}

// GetOwnerBookings lists bookings of every item the caller owns.
// @Summary List bookings of the caller's items
// @Tags Booking
// @Produce json
// @Param X-Sharer-User-Id header int true "Item owner ID"
// @Param state query string false "ALL, CURRENT, PAST, FUTURE, WAITING, REJECTED or CANCELED" default(ALL)
// @Success 200 {object} response.Data[[]dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/bookings/owner [get]
func (handler *Handler) GetOwnerBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOwnerBookings")
	defer scope.End()

	ownerID, err := middleware.UserID(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	bookings, err := handler.service.ListByOwner(ctx, ownerID, stateParam(request))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list bookings by owner")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, bookings)
}

func callerAndID(request *http.Request) (userID, id int64, err error) {
	if userID, err = middleware.UserID(request.Context()); err != nil {
		return 0, 0, err
	}

	if id, err = shared.ParseID(chi.URLParam(request, constant.RequestParamID)); err != nil {
		return 0, 0, err
	}

	return userID, id, nil
}

func stateParam(request *http.Request) string {
	state := request.URL.Query().Get(constant.RequestParamState)
	if state == constant.Empty {
		return string(model.StateAll)
	}

	return state
}
