package clock

import "time"

// Ticker delivers periodic ticks until stopped. The countdown owns exactly
// one ticker and must stop it on every exit path.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// TickerFactory creates tickers; inject to control time in tests.
type TickerFactory func(d time.Duration) Ticker

type systemTicker struct {
	t *time.Ticker
}

// NewSystemTicker returns a ticker backed by time.Ticker.
func NewSystemTicker(d time.Duration) Ticker {
	return systemTicker{t: time.NewTicker(d)}
}

func (s systemTicker) C() <-chan time.Time {
	return s.t.C
}

func (s systemTicker) Stop() {
	s.t.Stop()
}

// ManualTicker is driven by tests calling Tick.
type ManualTicker struct {
	ch      chan time.Time
	stopped chan struct{}
}

func NewManualTicker() *ManualTicker {
	return &ManualTicker{
		ch:      make(chan time.Time),
		stopped: make(chan struct{}),
	}
}

func (m *ManualTicker) C() <-chan time.Time {
	return m.ch
}

func (m *ManualTicker) Stop() {
	select {
	case <-m.stopped:
	default:
		close(m.stopped)
	}
}

// Tick delivers one tick, or returns once the ticker has been stopped.
func (m *ManualTicker) Tick(t time.Time) {
	select {
	case m.ch <- t:
	case <-m.stopped:
	}
}

// Stopped reports whether Stop has been called.
func (m *ManualTicker) Stopped() bool {
	select {
	case <-m.stopped:
		return true
	default:
		return false
	}
}
