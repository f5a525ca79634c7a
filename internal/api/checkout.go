package api

import (
	"context"
	"fmt"

	"github.com/champi41/TicketNowMobile/internal/domain"
)

type purchaseWire struct {
	ID            string    `json:"id"`
	LegacyID      string    `json:"_id"`
	ReservationID string    `json:"reservation_id"`
	Buyer         buyerWire `json:"buyer"`
	Status        string    `json:"status"`
	Total         int64     `json:"total"`
	Tickets       []string  `json:"tickets"`
}

type buyerWire struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (w purchaseWire) toDomain() domain.Purchase {
	return domain.Purchase{
		ID:            firstNonEmpty(w.LegacyID, w.ID),
		ReservationID: w.ReservationID,
		Buyer:         domain.Buyer{Name: w.Buyer.Name, Email: w.Buyer.Email},
		Status:        w.Status,
		Total:         w.Total,
		TicketCodes:   w.Tickets,
	}
}

// Checkout converts a still-valid reservation into a purchase.
func (c *Client) Checkout(ctx context.Context, reservationID string, buyer domain.Buyer) (domain.Purchase, error) {
	body := struct {
		ReservationID string    `json:"reservation_id"`
		Buyer         buyerWire `json:"buyer"`
	}{
		ReservationID: reservationID,
		Buyer:         buyerWire{Name: buyer.Name, Email: buyer.Email},
	}

	var w purchaseWire
	if err := c.postJSON(ctx, "/checkout", body, &w); err != nil {
		return domain.Purchase{}, fmt.Errorf("checkout reservation %s: %w", reservationID, err)
	}
	return w.toDomain(), nil
}
