package model

import "shareit/shared/model"

const (
	TableName  = "requests"
	EntityName = "request"

	FieldID          = "id"
	FieldDescription = "description"
	FieldRequestorID = "requestor_id"
)

// ItemRequest is a user's ask for an item nobody offers yet.
type ItemRequest struct {
	ID          int64  `db:"id"           insert:"-"`
	Description string `db:"description"`
	RequestorID int64  `db:"requestor_id"`
	model.Metadata
}
