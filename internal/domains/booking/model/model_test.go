package model_test

import (
	"net/http"
	"shareit/internal/domains/booking/model"
	"shareit/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC)

func TestParseState(t *testing.T) {
	tests := []struct {
		raw      string
		expected model.State
	}{
		{raw: "ALL", expected: model.StateAll},
		{raw: "current", expected: model.StateCurrent},
		{raw: "Past", expected: model.StatePast},
		{raw: " future ", expected: model.StateFuture},
		{raw: "waiting", expected: model.StateWaiting},
		{raw: "REJECTED", expected: model.StateRejected},
		{raw: "canceled", expected: model.StateCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			state, err := model.ParseState(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, state)
		})
	}

	for _, raw := range []string{"", "APPROVED", "cancelled", "ALL_OF_THEM"} {
		_, err := model.ParseState(raw)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err), raw)
	}
}

func TestState_Matches(t *testing.T) {
	current := model.Booking{ID: 1, StartTime: now, EndTime: now.Add(time.Hour), Status: model.StatusApproved}
	past := model.Booking{ID: 2, StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Hour), Status: model.StatusRejected}
	future := model.Booking{ID: 3, StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour), Status: model.StatusWaiting}
	endingNow := model.Booking{ID: 4, StartTime: now.Add(-time.Hour), EndTime: now, Status: model.StatusCanceled}

	tests := []struct {
		state    model.State
		booking  model.Booking
		expected bool
	}{
		{state: model.StateAll, booking: past, expected: true},
		{state: model.StateCurrent, booking: current, expected: true},
		{state: model.StateCurrent, booking: endingNow, expected: false},
		{state: model.StatePast, booking: past, expected: true},
		{state: model.StatePast, booking: current, expected: false},
		{state: model.StateFuture, booking: future, expected: true},
		{state: model.StateFuture, booking: current, expected: false},
		{state: model.StateWaiting, booking: future, expected: true},
		{state: model.StateRejected, booking: past, expected: true},
		{state: model.StateCanceled, booking: endingNow, expected: true},
		{state: model.StateCanceled, booking: future, expected: false},
		{state: model.State("SOMETIME"), booking: current, expected: false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, tt.state.Matches(tt.booking, now), "%s on booking %d", tt.state, tt.booking.ID)
	}
}

func TestSortLatestFirst(t *testing.T) {
	bookings := []model.Booking{
		{ID: 1, StartTime: now},
		{ID: 2, StartTime: now.Add(time.Hour)},
		{ID: 3, StartTime: now},
		{ID: 4, StartTime: now.Add(-time.Hour)},
	}

	model.SortLatestFirst(bookings)

	ids := make([]int64, len(bookings))
	for i, booking := range bookings {
		ids[i] = booking.ID
	}

	assert.Equal(t, []int64{2, 3, 1, 4}, ids)
}

func TestBooking_Completed(t *testing.T) {
	finished := model.Booking{ID: 1, StartTime: now.Add(-2 * time.Hour), EndTime: now.Add(-time.Hour), Status: model.StatusApproved}
	assert.True(t, finished.Completed(now))

	finished.Status = model.StatusWaiting
	assert.False(t, finished.Completed(now))
}
