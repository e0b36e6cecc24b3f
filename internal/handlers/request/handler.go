package request

import (
	"net/http"
	"shareit/infras/otel"
	"shareit/internal/domains/request/model/dto"
	"shareit/internal/domains/request/service"
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

const (
	msgInvalidFrom = "from must be a number"
	msgInvalidSize = "size must be a number"
)

type Handler struct {
	service service.Request
	otel    otel.Otel
}

func New(service service.Request, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/requests", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRequest)
		routerGroup.Get("/", handler.GetOwnRequests)
		routerGroup.Get("/all", handler.GetOtherRequests)
		routerGroup.Get("/{id}", handler.GetRequestByID)
	})
}

// CreateRequest asks other users for an item.
// @Summary Create an item request
// @Tags Request
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Requestor ID"
// @Param request body dto.CreateRequest true "Create Item Request"
// @Success 201 {object} response.Data[dto.RequestResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/requests [post]
func (handler *Handler) CreateRequest(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRequest")
	defer scope.End()

	requestorID, err := middleware.UserID(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.CreateRequest{}
	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	created, err := handler.service.Create(ctx, req, requestorID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create item request")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, created)
}

// GetOwnRequests lists the caller's requests with the items offered for them.
// @Summary List the caller's item requests
// @Tags Request
// @Produce json
// @Param X-Sharer-User-Id header int true "Requestor ID"
// @Success 200 {object} response.Data[[]dto.RequestResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/requests [get]
func (handler *Handler) GetOwnRequests(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOwnRequests")
	defer scope.End()

	requestorID, err := middleware.UserID(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	requests, err := handler.service.ListOwn(ctx, requestorID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list own item requests")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, requests)
}

// GetOtherRequests pages through requests made by other users.
// @Summary List item requests of other users
// @Tags Request
// @Produce json
// @Param X-Sharer-User-Id header int true "User ID"
// @Param from query int false "Rows to skip" default(0)
// @Param size query int false "Rows to return" default(10)
// @Success 200 {object} response.Data[[]dto.RequestResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/requests/all [get]
func (handler *Handler) GetOtherRequests(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOtherRequests")
	defer scope.End()

	userID, err := middleware.UserID(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	from, size, err := windowParams(request)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	requests, err := handler.service.ListOthers(ctx, userID, from, size)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to list item requests of other users")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, requests)
}

// GetRequestByID shows one request with the items offered for it.
// @Summary Get an item request
// @Tags Request
// @Produce json
// @Param X-Sharer-User-Id header int true "User ID"
// @Param id path int true "Request ID"
// @Success 200 {object} response.Data[dto.RequestResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/requests/{id} [get]
func (handler *Handler) GetRequestByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRequestByID")
	defer scope.End()

	userID, err := middleware.UserID(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	id, err := shared.ParseID(chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		response.WithError(writer, err)

		return
	}

	found, err := handler.service.Get(ctx, id, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("request_id", id).Msg("failed to get item request")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, found)
}

// windowParams reads from and size, falling back to the defaults when absent.
func windowParams(request *http.Request) (from, size int, err error) {
	query := request.URL.Query()

	from = constant.DefaultValueFrom
	if raw := query.Get(constant.RequestParamFrom); raw != constant.Empty {
		if from, err = strconv.Atoi(raw); err != nil {
			return 0, 0, failure.BadRequestFromString(msgInvalidFrom) // nolint:wrapcheck
		}
	}

	size = constant.DefaultValueSize
	if raw := query.Get(constant.RequestParamSize); raw != constant.Empty {
		if size, err = strconv.Atoi(raw); err != nil {
			return 0, 0, failure.BadRequestFromString(msgInvalidSize) // nolint:wrapcheck
		}
	}

	return from, size, nil
}
