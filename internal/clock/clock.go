package clock

import (
	"sync"
	"time"
)

// Clock allows injecting time in controllers.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

// NewSystem returns a clock backed by time.Now.
func NewSystem() Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

type fixedClock struct {
	now time.Time
}

// NewFixed returns a clock that always returns the same instant (useful for tests).
func NewFixed(t time.Time) Clock {
	return fixedClock{now: t.UTC()}
}

func (f fixedClock) Now() time.Time {
	return f.now
}

// Manual is a clock tests can advance by hand.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

func NewManual(t time.Time) *Manual {
	return &Manual{now: t.UTC()}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}
