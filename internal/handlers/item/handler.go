package item

import (
	"net/http"
	"shareit/infras/otel"
	commentDto "shareit/internal/domains/comment/model/dto"
	commentService "shareit/internal/domains/comment/service"
	"shareit/internal/domains/item/model/dto"
	"shareit/internal/domains/item/service"
	"shareit/shared"
	"shareit/shared/constant"
	"shareit/shared/validator"
	"shareit/transport/http/middleware"
	"shareit/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service  service.Item
	comments commentService.Comment
	otel     otel.Otel
}

func New(service service.Item, comments commentService.Comment, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		comments: comments,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/items", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateItem)
		routerGroup.Get("/", handler.GetOwnItems)
		routerGroup.Get("/search", handler.SearchItems)
		routerGroup.Get("/{id}", handler.GetItemByID)
		routerGroup.Patch("/{id}", handler.UpdateItem)
		routerGroup.Post("/{id}/comment", handler.CreateComment)
	})
}

// CreateItem lists a new item for rent.
// @Summary Create an item
// @Tags Item
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Owner ID"
// @Param request body dto.CreateItemRequest true "Create Item Request"
// @Success 201 {object} response.Data[dto.ItemResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/items [post]
func (handler *Handler) CreateItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateItem")
	defer scope.End()

	ownerID, err := middleware.UserID(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.CreateItemRequest{}
	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	item, err := handler.service.Create(ctx, req, ownerID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create item")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, item)
}

// UpdateItem changes the given fields of an item owned by the caller.
// @Summary Update an item
// @Tags Item
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Owner ID"
// @Param id path int true "Item ID"
// @Param request body dto.UpdateItemRequest true "Update Item Request"
// @Success 200 {object} response.Data[dto.ItemResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/items/{id} [patch]
func (handler *Handler) UpdateItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateItem")
	defer scope.End()

	ownerID, id, err := callerAndID(request)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := dto.UpdateItemRequest{}
	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	item, err := handler.service.Update(ctx, id, req, ownerID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("item_id", id).Msg("failed to update item")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, item)
}

// GetItemByID shows an item with its comments. The owner also sees the last and next booking.
// @Summary Get an item
// @Tags Item
// @Produce json
// @Param X-Sharer-User-Id header int true "Viewer ID"
// @Param id path int true "Item ID"
// @Success 200 {object} response.Data[dto.ItemDetailResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/items/{id} [get]
func (handler *Handler) GetItemByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetItemByID")
	defer scope.End()

	userID, id, err := callerAndID(request)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	item, err := handler.service.Get(ctx, id, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("item_id", id).Msg("failed to get item")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, item)
}

// GetOwnItems lists the caller's items.
// @Summary List own items
// @Tags Item
// @Produce json
// @Param X-Sharer-User-Id header int true "Owner ID"
// @Success 200 {object} response.Data[[]dto.ItemDetailResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/items [get]
func (handler *Handler) GetOwnItems(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOwnItems")
	defer scope.End()

	ownerID, err := middleware.UserID(ctx)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	items, err := handler.service.GetByOwner(ctx, ownerID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get items by owner")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, items)
}

// SearchItems finds available items by name or description.
// @Summary Search items
// @Tags Item
// @Produce json
// @Param text query string false "Text to look for"
// @Success 200 {object} response.Data[[]dto.ItemResponse]
// @Failure 500 {object} response.Error
// @Router /v1/items/search [get]
func (handler *Handler) SearchItems(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".SearchItems")
	defer scope.End()

	items, err := handler.service.Search(ctx, request.URL.Query().Get(constant.RequestParamText))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search items")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, items)
}

// CreateComment leaves a review on an item the caller has rented.
// @Summary Comment on an item
// @Tags Item
// @Accept json
// @Produce json
// @Param X-Sharer-User-Id header int true "Author ID"
// @Param id path int true "Item ID"
// @Param request body commentDto.CreateCommentRequest true "Create Comment Request"
// @Success 201 {object} response.Data[commentDto.CommentResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/items/{id}/comment [post]
func (handler *Handler) CreateComment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateComment")
	defer scope.End()

	authorID, itemID, err := callerAndID(request)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	req := commentDto.CreateCommentRequest{}
	if err = validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	comment, err := handler.comments.Create(ctx, req, itemID, authorID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Int64("item_id", itemID).Msg("failed to create comment")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, comment)
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
