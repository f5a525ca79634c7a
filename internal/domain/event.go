package domain

import "time"

// Event is a read-only snapshot of a ticketed event as served by the backend.
type Event struct {
	ID          string
	Name        string
	Category    string
	Location    string
	Date        time.Time
	Image       string
	Description string
	Tickets     []TicketOffer
}

// TicketOffer is one sellable ticket type within an event.
type TicketOffer struct {
	Type      string
	Price     int64
	Available int
}

// TicketPrice returns the unit price for a ticket type, or 0 when the event
// has no offer of that type.
func (e Event) TicketPrice(ticketType string) int64 {
	for _, t := range e.Tickets {
		if t.Type == ticketType {
			return t.Price
		}
	}
	return 0
}
