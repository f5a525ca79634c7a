package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/champi41/TicketNowMobile/internal/api"
	"github.com/champi41/TicketNowMobile/internal/domain"
)

// ReservationAPI is the slice of the API the selection controller needs.
type ReservationAPI interface {
	GetEvent(ctx context.Context, id string) (domain.Event, error)
	CreateReservation(ctx context.Context, eventID string, items []api.ReservationItemRequest) (string, error)
}

// maxPerType mirrors the selection cap of the mobile client.
const maxPerType = 110

// TicketSelection holds the transient per-visit quantity picks for one event
// and turns them into a reservation. Quantities are discarded with the
// controller; nothing is persisted locally.
type TicketSelection struct {
	apiClient ReservationAPI

	mu        sync.Mutex
	event     domain.Event
	loaded    bool
	qty       map[string]int
	reserving bool
}

func NewTicketSelection(apiClient ReservationAPI) *TicketSelection {
	return &TicketSelection{
		apiClient: apiClient,
		qty:       make(map[string]int),
	}
}

// Load fetches the event and resets all quantities to zero.
func (s *TicketSelection) Load(ctx context.Context, eventID string) error {
	ev, err := s.apiClient.GetEvent(ctx, eventID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.event = ev
	s.loaded = true
	s.qty = make(map[string]int)
	for _, t := range ev.Tickets {
		s.qty[t.Type] = 0
	}
	return nil
}

// Event returns the loaded event snapshot.
func (s *TicketSelection) Event() domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.event
}

// SetQuantity clamps n to [0, min(available, cap)] for the given type.
// Unknown types are ignored.
func (s *TicketSelection) SetQuantity(ticketType string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.qty[ticketType]; !ok {
		return
	}
	max := maxPerType
	for _, t := range s.event.Tickets {
		if t.Type == ticketType && t.Available < max {
			max = t.Available
		}
	}
	if n < 0 {
		n = 0
	}
	if n > max {
		n = max
	}
	s.qty[ticketType] = n
}

// Increment adds one ticket of the given type, subject to the clamp.
func (s *TicketSelection) Increment(ticketType string) {
	s.SetQuantity(ticketType, s.Quantity(ticketType)+1)
}

// Decrement removes one ticket of the given type, floored at zero.
func (s *TicketSelection) Decrement(ticketType string) {
	s.SetQuantity(ticketType, s.Quantity(ticketType)-1)
}

func (s *TicketSelection) Quantity(ticketType string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.qty[ticketType]
}

// TotalItems is the number of tickets currently selected.
func (s *TicketSelection) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, n := range s.qty {
		total += n
	}
	return total
}

// TotalPrice is the selected quantity times the offer price, summed.
func (s *TicketSelection) TotalPrice() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, t := range s.event.Tickets {
		total += int64(s.qty[t.Type]) * t.Price
	}
	return total
}

// Reserve posts the non-zero lines and returns the new reservation id.
// An empty selection fails locally without a network call.
func (s *TicketSelection) Reserve(ctx context.Context) (string, error) {
	s.mu.Lock()
	if !s.loaded {
		s.mu.Unlock()
		return "", domain.ErrEventNotFound
	}
	if s.reserving {
		s.mu.Unlock()
		return "", domain.ErrAlreadySubmitting
	}
	var items []api.ReservationItemRequest
	for _, t := range s.event.Tickets {
		if n := s.qty[t.Type]; n > 0 {
			items = append(items, api.ReservationItemRequest{Type: t.Type, Quantity: n})
		}
	}
	if len(items) == 0 {
		s.mu.Unlock()
		return "", domain.ErrNoTicketsSelected
	}
	s.reserving = true
	eventID := s.event.ID
	s.mu.Unlock()

	id, err := s.apiClient.CreateReservation(ctx, eventID, items)

	s.mu.Lock()
	s.reserving = false
	s.mu.Unlock()

	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("reserve event %s: backend returned no reservation id", eventID)
	}
	return id, nil
}
