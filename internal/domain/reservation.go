package domain

import "time"

type ReservationStatus string

const (
	ReservationStatusPending   ReservationStatus = "PENDING"
	ReservationStatusConfirmed ReservationStatus = "CONFIRMED"
)

// Reservation is a time-boxed hold on ticket inventory, issued by the
// backend. The client never mutates it; it only reads the snapshot and later
// confirms it through checkout.
type Reservation struct {
	ID         string
	EventID    string
	Items      []ReservationItem
	Status     ReservationStatus
	CreatedAt  time.Time
	ExpiresAt  time.Time
	TotalPrice *int64
}

// ReservationItem is one ticket-type line inside a reservation. The backend
// may omit any of the price fields; nil means "not supplied", which matters
// for the price fallback chain at checkout.
type ReservationItem struct {
	Type      string
	Quantity  int
	Price     *int64
	UnitPrice *int64
	Subtotal  *int64
}
