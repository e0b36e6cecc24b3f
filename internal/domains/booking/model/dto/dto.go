package dto

import (
	"errors"
	"shareit/internal/domains/booking/model"
	"shareit/shared/constant"
	gModel "shareit/shared/model"
	"shareit/shared/timezone"
)

var errEndBeforeStart = errors.New("end must be after start")

type CreateBookingRequest struct {
	ItemID int64  `json:"item_id" validate:"required,gt=0"`
	Start  string `json:"start"   validate:"required,notblank"`
	End    string `json:"end"     validate:"required,notblank"`
}

// ToModel parses the window in the application timezone and builds a waiting booking.
func (c *CreateBookingRequest) ToModel(bookerID int64) (model.Booking, error) {
	start, err := timezone.Parse(constant.DateTimeFormat, c.Start)
	if err != nil {
		return model.Booking{}, err //nolint:wrapcheck
	}

	end, err := timezone.Parse(constant.DateTimeFormat, c.End)
	if err != nil {
		return model.Booking{}, err //nolint:wrapcheck
	}

	if !end.After(start) {
		return model.Booking{}, errEndBeforeStart
	}

	return model.Booking{
		StartTime: start,
		EndTime:   end,
		ItemID:    c.ItemID,
		BookerID:  bookerID,
		Status:    model.StatusWaiting,
		Metadata:  gModel.NewMetadata(),
	}, nil
}

type Reference struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type BookingResponse struct {
	ID     int64     `json:"id"`
	Start  string    `json:"start"`
	End    string    `json:"end"`
	Status string    `json:"status"`
	Booker Reference `json:"booker"`
	Item   Reference `json:"item"`
}

func (r *BookingResponse) FromModel(booking model.Booking, bookerName, itemName string) {
	r.ID = booking.ID
	r.Start = timezone.Format(booking.StartTime, constant.DateTimeFormat)
	r.End = timezone.Format(booking.EndTime, constant.DateTimeFormat)
	r.Status = string(booking.Status)
	r.Booker = Reference{ID: booking.BookerID, Name: bookerName}
	r.Item = Reference{ID: booking.ItemID, Name: itemName}
}

// FromModels enriches every booking from the batch-resolved name maps.
func FromModels(bookings []model.Booking, bookerNames, itemNames map[int64]string) []BookingResponse {
	res := make([]BookingResponse, len(bookings))
	for i, booking := range bookings {
		res[i].FromModel(booking, bookerNames[booking.BookerID], itemNames[booking.ItemID])
	}

	return res
}

type BookingShortResponse struct {
	ID       int64  `json:"id"`
	BookerID int64  `json:"booker_id"`
	Start    string `json:"start"`
	End      string `json:"end"`
}

// NewBookingShort returns nil for an absent booking so it renders as null.
func NewBookingShort(booking *model.Booking) *BookingShortResponse {
	if booking == nil {
		return nil
	}

	return &BookingShortResponse{
		ID:       booking.ID,
		BookerID: booking.BookerID,
		Start:    timezone.Format(booking.StartTime, constant.DateTimeFormat),
		End:      timezone.Format(booking.EndTime, constant.DateTimeFormat),
	}
}
