package repository

import (
	"context"
	"shareit/internal/domains/booking/model"
	"shareit/shared/timezone"
	"sync"
	"time"
)

// memoryImpl keeps bookings in an append-only arena indexed by id, booker and item.
type memoryImpl struct {
	mu       sync.RWMutex
	arena    []model.Booking
	byID     map[int64]int
	byBooker map[int64][]int
	byItem   map[int64][]int
}

func NewMemory() Booking {
	return &memoryImpl{
		byID:     map[int64]int{},
		byBooker: map[int64][]int{},
		byItem:   map[int64][]int{},
	}
}

func (m *memoryImpl) Insert(_ context.Context, booking model.Booking) (model.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	slot := len(m.arena)
	booking.ID = int64(slot + 1)

	m.arena = append(m.arena, booking)
	m.byID[booking.ID] = slot
	m.byBooker[booking.BookerID] = append(m.byBooker[booking.BookerID], slot)
	m.byItem[booking.ItemID] = append(m.byItem[booking.ItemID], slot)

	return booking, nil
}

func (m *memoryImpl) GetByID(_ context.Context, id int64) (model.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	slot, ok := m.byID[id]
	if !ok {
		return model.Booking{}, nil
	}

	return m.arena[slot], nil
}

func (m *memoryImpl) FindByBooker(_ context.Context, bookerID int64) ([]model.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.collect(m.byBooker[bookerID]), nil
}

func (m *memoryImpl) FindByItemIn(_ context.Context, itemIDs []int64) ([]model.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var slots []int

	seen := make(map[int64]struct{}, len(itemIDs))
	for _, itemID := range itemIDs {
		if _, ok := seen[itemID]; ok {
			continue
		}

		seen[itemID] = struct{}{}
		slots = append(slots, m.byItem[itemID]...)
	}

	return m.collect(slots), nil
}

func (m *memoryImpl) UpdateStatus(_ context.Context, id int64, from, to model.Status) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	slot, ok := m.byID[id]
	if !ok || m.arena[slot].Status != from {
		return false, nil
	}

	m.arena[slot].Status = to
	m.arena[slot].ModifiedAt = timezone.Now()

	return true, nil
}

func (m *memoryImpl) FindLastApproved(_ context.Context, itemID int64, now time.Time) (model.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var last model.Booking

	for _, slot := range m.byItem[itemID] {
		booking := m.arena[slot]
		if !booking.Completed(now) {
			continue
		}

		if !last.Exists() || booking.EndTime.After(last.EndTime) {
			last = booking
		}
	}

	return last, nil
}

func (m *memoryImpl) FindNextApproved(_ context.Context, itemID int64, now time.Time) (model.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var next model.Booking

	for _, slot := range m.byItem[itemID] {
		booking := m.arena[slot]
		if booking.Status != model.StatusApproved || !booking.Future(now) {
			continue
		}

		if !next.Exists() || booking.StartTime.Before(next.StartTime) {
			next = booking
		}
	}

	return next, nil
}

func (m *memoryImpl) ExistsCompleted(_ context.Context, bookerID, itemID int64, now time.Time) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, slot := range m.byBooker[bookerID] {
		booking := m.arena[slot]
		if booking.ItemID == itemID && booking.Completed(now) {
			return true, nil
		}
	}

	return false, nil
}

// collect copies the slots out of the arena, latest start first. Caller holds the lock.
func (m *memoryImpl) collect(slots []int) []model.Booking {
	bookings := make([]model.Booking, 0, len(slots))
	for _, slot := range slots {
		bookings = append(bookings, m.arena[slot])
	}

	model.SortLatestFirst(bookings)

	return bookings
}
