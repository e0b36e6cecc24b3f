package dto

import (
	itemModel "shareit/internal/domains/item/model"
	"shareit/internal/domains/request/model"
	"shareit/shared/constant"
	gModel "shareit/shared/model"
	"shareit/shared/timezone"
	"strings"
)

type CreateRequest struct {
	Description string `json:"description" validate:"required,notblank,max=1000"`
}

func (c *CreateRequest) ToModel(requestorID int64) model.ItemRequest {
	return model.ItemRequest{
		Description: strings.TrimSpace(c.Description),
		RequestorID: requestorID,
		Metadata:    gModel.NewMetadata(),
	}
}

// Answer is an item listed in reply to a request.
type Answer struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	OwnerID int64  `json:"owner_id"`
}

func (a *Answer) FromModel(item itemModel.Item) {
	a.ID = item.ID
	a.Name = item.Name
	a.OwnerID = item.OwnerID
}

type RequestResponse struct {
	ID          int64    `json:"id"`
	Description string   `json:"description"`
	RequestorID int64    `json:"requestor_id"`
	Created     string   `json:"created"`
	Items       []Answer `json:"items"`
}

func (r *RequestResponse) FromModel(request model.ItemRequest, items []Answer) {
	r.ID = request.ID
	r.Description = request.Description
	r.RequestorID = request.RequestorID
	r.Created = timezone.Format(request.CreatedAt, constant.DateTimeFormat)

	r.Items = items
	if r.Items == nil {
		r.Items = []Answer{}
	}
}
