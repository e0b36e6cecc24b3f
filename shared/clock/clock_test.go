package clock_test

import (
	"shareit/shared/clock"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRealClock(t *testing.T) {
	c := clock.NewRealClock()

	before := time.Now().Add(-time.Second)
	now := c.Now()

	assert.True(t, now.After(before))
}

func TestMockClock(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	c := clock.NewMockClock(start)

	assert.Equal(t, start, c.Now())

	c.Add(36 * time.Hour)
	assert.Equal(t, start.Add(36*time.Hour), c.Now())

	later := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	c.Set(later)
	assert.Equal(t, later, c.Now())
}
