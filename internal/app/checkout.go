package app

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/champi41/TicketNowMobile/internal/clock"
	"github.com/champi41/TicketNowMobile/internal/domain"
)

// CheckoutAPI is the slice of the API the checkout controller needs.
type CheckoutAPI interface {
	GetReservation(ctx context.Context, id string) (domain.Reservation, error)
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	Checkout(ctx context.Context, reservationID string, buyer domain.Buyer) (domain.Purchase, error)
}

// LedgerAppender records a purchase identifier in local history.
type LedgerAppender interface {
	Append(ctx context.Context, id string) error
}

type CheckoutState string

const (
	StateLoading    CheckoutState = "LOADING"
	StateError      CheckoutState = "ERROR"
	StateReady      CheckoutState = "READY"
	StateSubmitting CheckoutState = "SUBMITTING"
	StateConfirmed  CheckoutState = "CONFIRMED"
)

// RemainingUnknown is returned by Remaining when the reservation carries no
// expiry timestamp.
const RemainingUnknown = -1

// LineItem is one display row of the checkout summary, with prices resolved
// through the fallback chain.
type LineItem struct {
	Type      string
	Quantity  int
	UnitPrice int64
	Subtotal  int64
}

// Checkout drives one reservation through LOADING → {ERROR|READY} →
// SUBMITTING → {CONFIRMED|ERROR}. EXPIRED is a property of READY, derived
// from the countdown, not a separate state.
type Checkout struct {
	apiClient CheckoutAPI
	ledger    LedgerAppender
	clock     clock.Clock
	newTicker clock.TickerFactory
	logger    *log.Logger

	mu          sync.Mutex
	state       CheckoutState
	errMsg      string
	reservation domain.Reservation
	event       domain.Event
	eventLoaded bool
}

func NewCheckout(apiClient CheckoutAPI, ledger LedgerAppender, clk clock.Clock, opts ...CheckoutOption) *Checkout {
	c := &Checkout{
		apiClient: apiClient,
		ledger:    ledger,
		clock:     clk,
		newTicker: clock.NewSystemTicker,
		logger:    log.Default(),
		state:     StateLoading,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type CheckoutOption func(*Checkout)

// WithTickerFactory overrides how countdown tickers are created (tests).
func WithTickerFactory(f clock.TickerFactory) CheckoutOption {
	return func(c *Checkout) {
		if f != nil {
			c.newTicker = f
		}
	}
}

func WithCheckoutLogger(logger *log.Logger) CheckoutOption {
	return func(c *Checkout) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Load fetches the reservation and, when it references an event, that event.
// Both must succeed for the controller to become READY.
func (c *Checkout) Load(ctx context.Context, reservationID string) error {
	c.setState(StateLoading, "")

	res, err := c.apiClient.GetReservation(ctx, reservationID)
	if err != nil {
		err = fmt.Errorf("load reservation %s: %w", reservationID, err)
		c.setState(StateError, err.Error())
		return err
	}

	var ev domain.Event
	eventLoaded := false
	if res.EventID != "" {
		ev, err = c.apiClient.GetEvent(ctx, res.EventID)
		if err != nil {
			err = fmt.Errorf("load event %s: %w", res.EventID, err)
			c.setState(StateError, err.Error())
			return err
		}
		eventLoaded = true
	}

	c.mu.Lock()
	c.reservation = res
	c.event = ev
	c.eventLoaded = eventLoaded
	c.state = StateReady
	c.errMsg = ""
	c.mu.Unlock()
	return nil
}

func (c *Checkout) setState(s CheckoutState, msg string) {
	c.mu.Lock()
	c.state = s
	c.errMsg = msg
	c.mu.Unlock()
}

func (c *Checkout) State() CheckoutState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// ErrorMessage is the display string for the ERROR state.
func (c *Checkout) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

func (c *Checkout) Reservation() domain.Reservation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reservation
}

// Event returns the loaded event and whether the reservation referenced one.
func (c *Checkout) Event() (domain.Event, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.event, c.eventLoaded
}

// Remaining is the whole seconds left until expiry, floored at zero, or
// RemainingUnknown when the reservation has no expiry timestamp.
func (c *Checkout) Remaining() int {
	c.mu.Lock()
	expiry := c.reservation.ExpiresAt
	c.mu.Unlock()
	if expiry.IsZero() {
		return RemainingUnknown
	}
	left := expiry.Sub(c.clock.Now())
	if left <= 0 {
		return 0
	}
	return int(left / time.Second)
}

// Expired reports whether the countdown has reached zero.
func (c *Checkout) Expired() bool {
	return c.Remaining() == 0
}

// RunCountdown recomputes the remaining seconds once per second and reports
// each value to fn, starting immediately. It returns when the countdown hits
// zero or ctx is cancelled; the ticker is stopped on every exit path.
func (c *Checkout) RunCountdown(ctx context.Context, fn func(remaining int)) {
	remaining := c.Remaining()
	if remaining == RemainingUnknown {
		return
	}
	fn(remaining)
	if remaining == 0 {
		return
	}

	ticker := c.newTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C():
			remaining = c.Remaining()
			fn(remaining)
			if remaining == 0 {
				return
			}
		}
	}
}

// LineItems projects the reservation items for display. Unit price resolves
// explicit price → explicit unit_price → event ticket-type price → 0, and
// subtotal explicit subtotal → unit price × quantity, tolerating partial
// backend payloads.
func (c *Checkout) LineItems() []LineItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]LineItem, 0, len(c.reservation.Items))
	for _, it := range c.reservation.Items {
		var unit int64
		switch {
		case it.Price != nil:
			unit = *it.Price
		case it.UnitPrice != nil:
			unit = *it.UnitPrice
		default:
			unit = c.event.TicketPrice(it.Type)
		}
		subtotal := unit * int64(it.Quantity)
		if it.Subtotal != nil {
			subtotal = *it.Subtotal
		}
		items = append(items, LineItem{
			Type:      it.Type,
			Quantity:  it.Quantity,
			UnitPrice: unit,
			Subtotal:  subtotal,
		})
	}
	return items
}

// Total is the reservation's explicit total when present, else the sum of
// the projected subtotals.
func (c *Checkout) Total() int64 {
	c.mu.Lock()
	explicit := c.reservation.TotalPrice
	c.mu.Unlock()
	if explicit != nil {
		return *explicit
	}
	var total int64
	for _, it := range c.LineItems() {
		total += it.Subtotal
	}
	return total
}

// CanConfirm gates submission: READY, not expired, and buyer details past
// the loose client-side check.
func (c *Checkout) CanConfirm(buyer domain.Buyer) bool {
	return c.State() == StateReady && !c.Expired() && buyer.Valid()
}

// Confirm posts the reservation with the buyer details. On success the
// purchase id is appended to the local ledger; a ledger failure is logged
// and swallowed since the purchase already succeeded server-side. On failure
// the controller returns to READY so the user may retry while time remains.
func (c *Checkout) Confirm(ctx context.Context, buyer domain.Buyer) (domain.Purchase, error) {
	c.mu.Lock()
	switch {
	case c.state == StateSubmitting:
		c.mu.Unlock()
		return domain.Purchase{}, domain.ErrAlreadySubmitting
	case c.state != StateReady:
		c.mu.Unlock()
		return domain.Purchase{}, domain.ErrNotReady
	}
	reservationID := c.reservation.ID
	c.state = StateSubmitting
	c.mu.Unlock()

	if c.Remaining() == 0 {
		c.setState(StateReady, "")
		return domain.Purchase{}, domain.ErrReservationExpired
	}
	if !buyer.Valid() {
		c.setState(StateReady, "")
		return domain.Purchase{}, domain.ErrBuyerInvalid
	}

	purchase, err := c.apiClient.Checkout(ctx, reservationID, buyer)
	if err != nil {
		c.setState(StateReady, "")
		return domain.Purchase{}, err
	}

	c.setState(StateConfirmed, "")
	if purchase.ID != "" {
		if err := c.ledger.Append(ctx, purchase.ID); err != nil {
			c.logger.Printf("WARN: failed to record purchase %s in local history: %v", purchase.ID, err)
		}
	}
	return purchase, nil
}
