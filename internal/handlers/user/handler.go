package user

import (
	"net/http"
	"shareit/infras/otel"
	"shareit/internal/domains/user/model/dto"
	"shareit/internal/domains/user/service"
	"shareit/shared"
	"shareit/shared/constant"
	gDto "shareit/shared/dto"
	"shareit/shared/validator"
	"shareit/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.User
	otel    otel.Otel
}

func New(service service.User, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/users", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateUser)
		routerGroup.Get("/", handler.GetUsers)
		routerGroup.Get("/{id}", handler.GetUserByID)
		routerGroup.Patch("/{id}", handler.UpdateUser)
		routerGroup.Delete("/{id}", handler.DeleteUser)
	})
}

// CreateUser handles the creation of a new user.
// @Summary Create a new user
// @Description Register a user; e-mail addresses are unique.
// @Tags User
// @Accept json
// @Produce json
// @Param request body dto.CreateUserRequest true "Create User Request"
// @Success 201 {object} response.Data[dto.UserResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users [post]
func (handler *Handler) CreateUser(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateUser")
	defer scope.End()

	req := dto.CreateUserRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	user, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create user")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("User created successfully")

	response.WithJSON(writer, http.StatusCreated, user)
}

// GetUsers retrieves a page of users.
// @Summary Get all users
// @Tags User
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[dto.GetUsersResponse]
// @Failure 500 {object} response.Error
// @Router /v1/users [get]
func (handler *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUsers")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	users, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get users")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, users)
}

// GetUserByID retrieves a user by their ID.
// @Summary Get a user by ID
// @Tags User
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Data[dto.UserResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id} [get]
func (handler *Handler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetUserByID")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	user, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("user_id", id).Msg("failed to get user by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, user)
}

// UpdateUser changes the given fields of a user.
// @Summary Update a user by ID
// @Tags User
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body dto.UpdateUserRequest true "Update User Request"
// @Success 200 {object} response.Data[dto.UserResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id} [patch]
func (handler *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateUser")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	req := dto.UpdateUserRequest{}
	if err = validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	user, err := handler.service.Update(ctx, req, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("user_id", id).Msg("failed to update user")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User updated successfully")

	response.WithJSON(w, http.StatusOK, user)
}

// DeleteUser deletes a user by their ID.
// @Summary Delete a user by ID
// @Tags User
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/users/{id} [delete]
func (handler *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteUser")
	defer scope.End()

	id, err := shared.ParseID(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	if err = handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("user_id", id).Msg("failed to delete user")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User deleted successfully")

	response.WithMessage(w, http.StatusOK, "User deleted successfully")
}
