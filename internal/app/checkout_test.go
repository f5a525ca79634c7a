package app

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/champi41/TicketNowMobile/internal/api"
	"github.com/champi41/TicketNowMobile/internal/clock"
	"github.com/champi41/TicketNowMobile/internal/domain"
)

type fakeCheckoutAPI struct {
	reservation    domain.Reservation
	reservationErr error
	event          domain.Event
	eventErr       error
	purchase       domain.Purchase
	checkoutErr    error

	eventCalls    int
	checkoutCalls int
	gotBuyer      domain.Buyer
}

func (f *fakeCheckoutAPI) GetReservation(_ context.Context, _ string) (domain.Reservation, error) {
	if f.reservationErr != nil {
		return domain.Reservation{}, f.reservationErr
	}
	return f.reservation, nil
}

func (f *fakeCheckoutAPI) GetEvent(_ context.Context, _ string) (domain.Event, error) {
	f.eventCalls++
	if f.eventErr != nil {
		return domain.Event{}, f.eventErr
	}
	return f.event, nil
}

func (f *fakeCheckoutAPI) Checkout(_ context.Context, _ string, buyer domain.Buyer) (domain.Purchase, error) {
	f.checkoutCalls++
	f.gotBuyer = buyer
	if f.checkoutErr != nil {
		return domain.Purchase{}, f.checkoutErr
	}
	return f.purchase, nil
}

type fakeLedger struct {
	mu  sync.Mutex
	ids []string
	err error
}

func (f *fakeLedger) Append(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = append(f.ids, id)
	return nil
}

func i64(v int64) *int64 { return &v }

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func TestCheckout_Load(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

	t.Run("ready with reservation and event", func(t *testing.T) {
		fake := &fakeCheckoutAPI{
			reservation: domain.Reservation{ID: "res-1", EventID: "ev-1", ExpiresAt: now.Add(2 * time.Minute)},
			event:       domain.Event{ID: "ev-1", Name: "Jazz Night"},
		}
		co := NewCheckout(fake, &fakeLedger{}, clock.NewFixed(now), WithCheckoutLogger(quietLogger()))

		if err := co.Load(context.Background(), "res-1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if co.State() != StateReady {
			t.Fatalf("expected READY, got %s", co.State())
		}
		if ev, ok := co.Event(); !ok || ev.Name != "Jazz Night" {
			t.Fatalf("expected loaded event, got %v ok=%v", ev, ok)
		}
	})

	t.Run("no event fetch when reservation has no event id", func(t *testing.T) {
		fake := &fakeCheckoutAPI{
			reservation: domain.Reservation{ID: "res-1", ExpiresAt: now.Add(time.Minute)},
		}
		co := NewCheckout(fake, &fakeLedger{}, clock.NewFixed(now), WithCheckoutLogger(quietLogger()))

		if err := co.Load(context.Background(), "res-1"); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if fake.eventCalls != 0 {
			t.Fatalf("expected no event fetch, got %d", fake.eventCalls)
		}
		if co.State() != StateReady {
			t.Fatalf("expected READY, got %s", co.State())
		}
	})

	t.Run("reservation failure yields ERROR", func(t *testing.T) {
		fake := &fakeCheckoutAPI{reservationErr: domain.ErrReservationNotFound}
		co := NewCheckout(fake, &fakeLedger{}, clock.NewFixed(now), WithCheckoutLogger(quietLogger()))

		err := co.Load(context.Background(), "missing")
		if !errors.Is(err, domain.ErrReservationNotFound) {
			t.Fatalf("expected ErrReservationNotFound, got %v", err)
		}
		if co.State() != StateError {
			t.Fatalf("expected ERROR, got %s", co.State())
		}
		if co.ErrorMessage() == "" {
			t.Fatalf("expected an error message for display")
		}
	})

	t.Run("event failure yields ERROR", func(t *testing.T) {
		fake := &fakeCheckoutAPI{
			reservation: domain.Reservation{ID: "res-1", EventID: "ev-1"},
			eventErr:    &api.APIError{Status: 500},
		}
		co := NewCheckout(fake, &fakeLedger{}, clock.NewFixed(now), WithCheckoutLogger(quietLogger()))

		if err := co.Load(context.Background(), "res-1"); err == nil {
			t.Fatalf("expected error")
		}
		if co.State() != StateError {
			t.Fatalf("expected ERROR, got %s", co.State())
		}
	})
}

func TestCheckout_Pricing(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)

	load := func(t *testing.T, res domain.Reservation, ev domain.Event) *Checkout {
		t.Helper()
		fake := &fakeCheckoutAPI{reservation: res, event: ev}
		co := NewCheckout(fake, &fakeLedger{}, clock.NewFixed(now), WithCheckoutLogger(quietLogger()))
		if err := co.Load(context.Background(), res.ID); err != nil {
			t.Fatalf("load: %v", err)
		}
		return co
	}

	t.Run("remaining and total for a fresh reservation", func(t *testing.T) {
		co := load(t, domain.Reservation{
			ID:        "res-1",
			EventID:   "ev-1",
			ExpiresAt: now.Add(120 * time.Second),
			Items: []domain.ReservationItem{
				{Type: "GA", Quantity: 2, UnitPrice: i64(10000)},
			},
		}, domain.Event{ID: "ev-1"})

		if got := co.Remaining(); got != 120 {
			t.Fatalf("expected 120s remaining, got %d", got)
		}
		if got := co.Total(); got != 20000 {
			t.Fatalf("expected total 20000, got %d", got)
		}
	})

	t.Run("unit price fallback chain", func(t *testing.T) {
		co := load(t, domain.Reservation{
			ID:        "res-1",
			EventID:   "ev-1",
			ExpiresAt: now.Add(time.Minute),
			Items: []domain.ReservationItem{
				{Type: "GA", Quantity: 2, Price: i64(8000), UnitPrice: i64(9999)},
				{Type: "VIP", Quantity: 1, UnitPrice: i64(25000)},
				{Type: "BALCONY", Quantity: 3},
				{Type: "UNLISTED", Quantity: 1},
			},
		}, domain.Event{
			ID: "ev-1",
			Tickets: []domain.TicketOffer{
				{Type: "GA", Price: 7000},
				{Type: "BALCONY", Price: 12000},
			},
		})

		items := co.LineItems()
		wantUnits := []int64{8000, 25000, 12000, 0}
		wantSubs := []int64{16000, 25000, 36000, 0}
		for i, it := range items {
			if it.UnitPrice != wantUnits[i] {
				t.Fatalf("item %d: expected unit %d, got %d", i, wantUnits[i], it.UnitPrice)
			}
			if it.Subtotal != wantSubs[i] {
				t.Fatalf("item %d: expected subtotal %d, got %d", i, wantSubs[i], it.Subtotal)
			}
		}
		if got := co.Total(); got != 77000 {
			t.Fatalf("expected total 77000, got %d", got)
		}
	})

	t.Run("explicit subtotal and total win", func(t *testing.T) {
		co := load(t, domain.Reservation{
			ID:         "res-1",
			EventID:    "ev-1",
			ExpiresAt:  now.Add(time.Minute),
			TotalPrice: i64(99000),
			Items: []domain.ReservationItem{
				{Type: "GA", Quantity: 2, UnitPrice: i64(10000), Subtotal: i64(18000)},
			},
		}, domain.Event{ID: "ev-1"})

		if got := co.LineItems()[0].Subtotal; got != 18000 {
			t.Fatalf("expected explicit subtotal 18000, got %d", got)
		}
		if got := co.Total(); got != 99000 {
			t.Fatalf("expected explicit total 99000, got %d", got)
		}
	})
}

func TestCheckout_Expiry(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	buyer := domain.Buyer{Name: "Juan Pérez", Email: "juan@example.cl"}

	t.Run("past expiry is expired immediately", func(t *testing.T) {
		fake := &fakeCheckoutAPI{
			reservation: domain.Reservation{ID: "res-1", ExpiresAt: now.Add(-time.Second)},
		}
		co := NewCheckout(fake, &fakeLedger{}, clock.NewFixed(now), WithCheckoutLogger(quietLogger()))
		if err := co.Load(context.Background(), "res-1"); err != nil {
			t.Fatalf("load: %v", err)
		}

		if !co.Expired() {
			t.Fatalf("expected expired")
		}
		if co.CanConfirm(buyer) {
			t.Fatalf("expected CanConfirm=false for expired reservation")
		}
		if _, err := co.Confirm(context.Background(), buyer); err != domain.ErrReservationExpired {
			t.Fatalf("expected ErrReservationExpired, got %v", err)
		}
		if fake.checkoutCalls != 0 {
			t.Fatalf("expected no checkout call, got %d", fake.checkoutCalls)
		}
	})

	t.Run("countdown ticks down to zero and stops", func(t *testing.T) {
		clk := clock.NewManual(now)
		ticker := clock.NewManualTicker()
		fake := &fakeCheckoutAPI{
			reservation: domain.Reservation{ID: "res-1", ExpiresAt: now.Add(3 * time.Second)},
		}
		co := NewCheckout(fake, &fakeLedger{}, clk,
			WithCheckoutLogger(quietLogger()),
			WithTickerFactory(func(time.Duration) clock.Ticker { return ticker }),
		)
		if err := co.Load(context.Background(), "res-1"); err != nil {
			t.Fatalf("load: %v", err)
		}

		vals := make(chan int)
		done := make(chan struct{})
		go func() {
			co.RunCountdown(context.Background(), func(r int) { vals <- r })
			close(done)
		}()

		if got := <-vals; got != 3 {
			t.Fatalf("expected initial remaining 3, got %d", got)
		}
		clk.Advance(time.Second)
		ticker.Tick(clk.Now())
		if got := <-vals; got != 2 {
			t.Fatalf("expected remaining 2, got %d", got)
		}
		clk.Advance(2 * time.Second)
		ticker.Tick(clk.Now())
		if got := <-vals; got != 0 {
			t.Fatalf("expected remaining 0, got %d", got)
		}

		<-done
		if !ticker.Stopped() {
			t.Fatalf("expected ticker stopped after countdown")
		}
		if !co.Expired() {
			t.Fatalf("expected expired at zero")
		}
	})

	t.Run("countdown is cancelled with its context", func(t *testing.T) {
		ticker := clock.NewManualTicker()
		fake := &fakeCheckoutAPI{
			reservation: domain.Reservation{ID: "res-1", ExpiresAt: now.Add(time.Hour)},
		}
		co := NewCheckout(fake, &fakeLedger{}, clock.NewFixed(now),
			WithCheckoutLogger(quietLogger()),
			WithTickerFactory(func(time.Duration) clock.Ticker { return ticker }),
		)
		if err := co.Load(context.Background(), "res-1"); err != nil {
			t.Fatalf("load: %v", err)
		}

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan struct{})
		first := make(chan int, 1)
		go func() {
			co.RunCountdown(ctx, func(r int) {
				select {
				case first <- r:
				default:
				}
			})
			close(done)
		}()

		<-first
		cancel()
		<-done
		if !ticker.Stopped() {
			t.Fatalf("expected ticker stopped on cancellation")
		}
	})

	t.Run("no countdown without an expiry timestamp", func(t *testing.T) {
		fake := &fakeCheckoutAPI{reservation: domain.Reservation{ID: "res-1"}}
		co := NewCheckout(fake, &fakeLedger{}, clock.NewFixed(now), WithCheckoutLogger(quietLogger()))
		if err := co.Load(context.Background(), "res-1"); err != nil {
			t.Fatalf("load: %v", err)
		}
		if got := co.Remaining(); got != RemainingUnknown {
			t.Fatalf("expected RemainingUnknown, got %d", got)
		}
		co.RunCountdown(context.Background(), func(int) {
			t.Fatalf("expected no ticks without expiry")
		})
	})
}

func TestCheckout_Confirm(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	buyer := domain.Buyer{Name: "Juan Pérez", Email: "juan@example.cl"}

	newReady := func(t *testing.T, fake *fakeCheckoutAPI, led *fakeLedger) *Checkout {
		t.Helper()
		fake.reservation = domain.Reservation{ID: "res-1", ExpiresAt: now.Add(5 * time.Minute)}
		co := NewCheckout(fake, led, clock.NewFixed(now), WithCheckoutLogger(quietLogger()))
		if err := co.Load(context.Background(), "res-1"); err != nil {
			t.Fatalf("load: %v", err)
		}
		return co
	}

	t.Run("success records purchase and confirms", func(t *testing.T) {
		fake := &fakeCheckoutAPI{purchase: domain.Purchase{ID: "pur-1", Total: 20000}}
		led := &fakeLedger{}
		co := newReady(t, fake, led)

		purchase, err := co.Confirm(context.Background(), buyer)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if purchase.ID != "pur-1" {
			t.Fatalf("expected pur-1, got %s", purchase.ID)
		}
		if co.State() != StateConfirmed {
			t.Fatalf("expected CONFIRMED, got %s", co.State())
		}
		if len(led.ids) != 1 || led.ids[0] != "pur-1" {
			t.Fatalf("expected ledger [pur-1], got %v", led.ids)
		}
		if fake.gotBuyer != buyer {
			t.Fatalf("expected buyer %v, got %v", buyer, fake.gotBuyer)
		}
	})

	t.Run("server failure returns to READY without ledger write", func(t *testing.T) {
		fake := &fakeCheckoutAPI{checkoutErr: &api.APIError{Status: 400, Message: "reservation already confirmed"}}
		led := &fakeLedger{}
		co := newReady(t, fake, led)

		_, err := co.Confirm(context.Background(), buyer)
		var apiErr *api.APIError
		if !errors.As(err, &apiErr) || apiErr.Status != 400 {
			t.Fatalf("expected status 400 error, got %v", err)
		}
		if co.State() != StateReady {
			t.Fatalf("expected READY after failure, got %s", co.State())
		}
		if len(led.ids) != 0 {
			t.Fatalf("expected no ledger write, got %v", led.ids)
		}
		if !co.CanConfirm(buyer) {
			t.Fatalf("expected retry to be possible while time remains")
		}
	})

	t.Run("ledger failure does not fail the confirmation", func(t *testing.T) {
		fake := &fakeCheckoutAPI{purchase: domain.Purchase{ID: "pur-1"}}
		led := &fakeLedger{err: errors.New("disk full")}
		co := newReady(t, fake, led)

		if _, err := co.Confirm(context.Background(), buyer); err != nil {
			t.Fatalf("expected confirmation to succeed, got %v", err)
		}
		if co.State() != StateConfirmed {
			t.Fatalf("expected CONFIRMED, got %s", co.State())
		}
	})

	t.Run("rejects short buyer details", func(t *testing.T) {
		fake := &fakeCheckoutAPI{}
		co := newReady(t, fake, &fakeLedger{})

		if _, err := co.Confirm(context.Background(), domain.Buyer{Name: "J", Email: "a@b.c"}); err != domain.ErrBuyerInvalid {
			t.Fatalf("expected ErrBuyerInvalid, got %v", err)
		}
		if fake.checkoutCalls != 0 {
			t.Fatalf("expected no checkout call, got %d", fake.checkoutCalls)
		}
	})

	t.Run("rejects confirm before load", func(t *testing.T) {
		co := NewCheckout(&fakeCheckoutAPI{}, &fakeLedger{}, clock.NewFixed(now), WithCheckoutLogger(quietLogger()))
		if _, err := co.Confirm(context.Background(), buyer); err != domain.ErrNotReady {
			t.Fatalf("expected ErrNotReady, got %v", err)
		}
	})
}
