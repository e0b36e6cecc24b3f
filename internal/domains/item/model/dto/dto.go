package dto

import (
	bookingModel "shareit/internal/domains/booking/model"
	bookingDto "shareit/internal/domains/booking/model/dto"
	commentDto "shareit/internal/domains/comment/model/dto"
	"shareit/internal/domains/item/model"
	gModel "shareit/shared/model"
	"strings"
)

type CreateItemRequest struct {
	Name        string `json:"name"        validate:"required,notblank,max=255"`
	Description string `json:"description" validate:"required,notblank,max=1000"`
	Available   *bool  `json:"available"   validate:"required"`
	RequestID   *int64 `json:"request_id"  validate:"omitempty,gt=0"`
}

func (c *CreateItemRequest) ToModel(ownerID int64) model.Item {
	return model.Item{
		Name:        strings.TrimSpace(c.Name),
		Description: strings.TrimSpace(c.Description),
		Available:   *c.Available,
		OwnerID:     ownerID,
		RequestID:   c.RequestID,
		Metadata:    gModel.NewMetadata(),
	}
}

// UpdateItemRequest is a partial update; nil fields are left untouched.
type UpdateItemRequest struct {
	Name        *string `db:"name"        json:"name"        validate:"omitempty,notblank,max=255"`
	Description *string `db:"description" json:"description" validate:"omitempty,notblank,max=1000"`
	Available   *bool   `db:"available"   json:"available"`
}

type ItemResponse struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
	OwnerID     int64  `json:"owner_id"`
	RequestID   *int64 `json:"request_id,omitempty"`
}

func (r *ItemResponse) FromModel(item model.Item) {
	r.ID = item.ID
	r.Name = item.Name
	r.Description = item.Description
	r.Available = item.Available
	r.OwnerID = item.OwnerID
	r.RequestID = item.RequestID
}

// ItemDetailResponse is an item with its comments; the booking window is only filled for the owner.
type ItemDetailResponse struct {
	ItemResponse
	LastBooking *bookingDto.BookingShortResponse `json:"last_booking"`
	NextBooking *bookingDto.BookingShortResponse `json:"next_booking"`
	Comments    []commentDto.CommentResponse     `json:"comments"`
}

func (r *ItemDetailResponse) FromModel(item model.Item, comments []commentDto.CommentResponse) {
	r.ItemResponse.FromModel(item)

	r.Comments = comments
	if r.Comments == nil {
		r.Comments = []commentDto.CommentResponse{}
	}
}

func (r *ItemDetailResponse) WithSnapshot(snapshot bookingModel.Snapshot) {
	r.LastBooking = bookingDto.NewBookingShort(snapshot.LastBooking)
	r.NextBooking = bookingDto.NewBookingShort(snapshot.NextBooking)
}
