package model

import (
	"cmp"
	"shareit/shared/model"
	"slices"
	"time"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID        = "id"
	FieldStartTime = "start_time"
	FieldEndTime   = "end_time"
	FieldItemID    = "item_id"
	FieldBookerID  = "booker_id"
	FieldStatus    = "status"
)

type Status string

const (
	StatusWaiting  Status = "WAITING"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
	StatusCanceled Status = "CANCELED"
)

type Booking struct {
	ID        int64     `db:"id"         insert:"-"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
	ItemID    int64     `db:"item_id"`
	BookerID  int64     `db:"booker_id"`
	Status    Status    `db:"status"`
	model.Metadata
}

// Exists reports whether the booking was loaded from the store.
func (b Booking) Exists() bool {
	return b.ID != 0
}

// Current reports whether now falls inside [start, end).
func (b Booking) Current(now time.Time) bool {
	return !b.StartTime.After(now) && now.Before(b.EndTime)
}

func (b Booking) Past(now time.Time) bool {
	return b.EndTime.Before(now)
}

func (b Booking) Future(now time.Time) bool {
	return b.StartTime.After(now)
}

// Completed reports an approved rental that has already ended.
func (b Booking) Completed(now time.Time) bool {
	return b.Status == StatusApproved && b.Past(now)
}

// SortLatestFirst orders bookings by start time descending, newest id first on ties.
func SortLatestFirst(bookings []Booking) {
	slices.SortStableFunc(bookings, func(a, b Booking) int {
		if c := b.StartTime.Compare(a.StartTime); c != 0 {
			return c
		}

		return cmp.Compare(b.ID, a.ID)
	})
}

// Snapshot is the owner's view of an item's closest approved rentals around now.
type Snapshot struct {
	LastBooking *Booking
	NextBooking *Booking
}

// ItemInfo is what the booking engine needs to know about an item.
type ItemInfo struct {
	ID        int64
	OwnerID   int64
	Name      string
	Available bool
}

func (i ItemInfo) Exists() bool {
	return i.ID != 0
}
