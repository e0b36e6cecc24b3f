package model

import (
	"shareit/shared/failure"
	"strings"
	"time"
)

// State selects a subset of bookings in list views.
type State string

const (
	StateAll      State = "ALL"
	StateCurrent  State = "CURRENT"
	StatePast     State = "PAST"
	StateFuture   State = "FUTURE"
	StateWaiting  State = "WAITING"
	StateRejected State = "REJECTED"
	StateCanceled State = "CANCELED"
)

var states = map[string]State{
	string(StateAll):      StateAll,
	string(StateCurrent):  StateCurrent,
	string(StatePast):     StatePast,
	string(StateFuture):   StateFuture,
	string(StateWaiting):  StateWaiting,
	string(StateRejected): StateRejected,
	string(StateCanceled): StateCanceled,
}

// ParseState matches raw case-insensitively against the known states.
func ParseState(raw string) (State, error) {
	state, ok := states[strings.ToUpper(strings.TrimSpace(raw))]
	if !ok {
		return "", failure.BadRequestFromString("unknown state: " + raw) // nolint:wrapcheck
	}

	return state, nil
}

func (s State) Matches(booking Booking, now time.Time) bool {
	switch s {
	case StateAll:
		return true
	case StateCurrent:
		return booking.Current(now)
	case StatePast:
		return booking.Past(now)
	case StateFuture:
		return booking.Future(now)
	case StateWaiting:
		return booking.Status == StatusWaiting
	case StateRejected:
		return booking.Status == StatusRejected
	case StateCanceled:
		return booking.Status == StatusCanceled
	default:
		return false
	}
}
