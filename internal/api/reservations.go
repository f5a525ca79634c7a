package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/champi41/TicketNowMobile/internal/domain"
)

// ReservationItemRequest is one requested ticket line for POST /reservations.
type ReservationItemRequest struct {
	Type     string `json:"type"`
	Quantity int    `json:"quantity"`
}

// CreateReservation asks the backend to hold tickets and returns the new
// reservation identifier.
func (c *Client) CreateReservation(ctx context.Context, eventID string, items []ReservationItemRequest) (string, error) {
	body := struct {
		EventID string                   `json:"event_id"`
		Items   []ReservationItemRequest `json:"items"`
	}{EventID: eventID, Items: items}

	var res struct {
		ReservationID string `json:"reservation_id"`
		LegacyID      string `json:"_id"`
		ID            string `json:"id"`
	}
	if err := c.postJSON(ctx, "/reservations", body, &res); err != nil {
		return "", fmt.Errorf("create reservation: %w", err)
	}
	return firstNonEmpty(res.ReservationID, res.LegacyID, res.ID), nil
}

type reservationWire struct {
	ID         string                `json:"id"`
	LegacyID   string                `json:"_id"`
	EventID    string                `json:"event_id"`
	Items      []reservationItemWire `json:"items"`
	Status     string                `json:"status"`
	CreatedAt  string                `json:"created_at"`
	ExpiresAt  string                `json:"expires_at"`
	TotalPrice *int64                `json:"total_price"`
}

type reservationItemWire struct {
	Type      string `json:"type"`
	Quantity  int    `json:"quantity"`
	Price     *int64 `json:"price"`
	UnitPrice *int64 `json:"unit_price"`
	Subtotal  *int64 `json:"subtotal"`
}

func (w reservationWire) toDomain() domain.Reservation {
	r := domain.Reservation{
		ID:         firstNonEmpty(w.LegacyID, w.ID),
		EventID:    w.EventID,
		Status:     domain.ReservationStatus(w.Status),
		CreatedAt:  parseDate(w.CreatedAt),
		ExpiresAt:  parseDate(w.ExpiresAt),
		TotalPrice: w.TotalPrice,
	}
	if r.Status == "" {
		r.Status = domain.ReservationStatusPending
	}
	for _, it := range w.Items {
		r.Items = append(r.Items, domain.ReservationItem{
			Type:      it.Type,
			Quantity:  it.Quantity,
			Price:     it.Price,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal,
		})
	}
	return r
}

// GetReservation fetches a reservation snapshot.
func (c *Client) GetReservation(ctx context.Context, id string) (domain.Reservation, error) {
	var w reservationWire
	if err := c.getJSON(ctx, "/reservations/"+url.PathEscape(id), &w); err != nil {
		return domain.Reservation{}, fmt.Errorf("get reservation %s: %w", id, mapNotFound(err, domain.ErrReservationNotFound))
	}
	res := w.toDomain()
	if res.ID == "" {
		res.ID = id
	}
	return res, nil
}
