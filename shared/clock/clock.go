package clock

import (
	"shareit/shared/timezone"
	"sync"
	"time"
)

// Clock supplies the current instant so booking windows can be evaluated deterministically.
type Clock interface {
	Now() time.Time
}

type RealClock struct{}

func NewRealClock() Clock {
	return &RealClock{}
}

// Now returns the current time in the application timezone.
func (c *RealClock) Now() time.Time {
	return timezone.Now()
}

type MockClock struct {
	mu          sync.RWMutex
	currentTime time.Time
}

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{currentTime: t}
}

func (c *MockClock) Now() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.currentTime
}

func (c *MockClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.currentTime = t
}

func (c *MockClock) Add(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.currentTime = c.currentTime.Add(d)
}
