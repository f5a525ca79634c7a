package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/champi41/TicketNowMobile/internal/domain"
)

// GetPurchase fetches one purchase by identifier.
func (c *Client) GetPurchase(ctx context.Context, id string) (domain.Purchase, error) {
	var w purchaseWire
	if err := c.getJSON(ctx, "/purchases/"+url.PathEscape(id), &w); err != nil {
		return domain.Purchase{}, fmt.Errorf("get purchase %s: %w", id, mapNotFound(err, domain.ErrPurchaseNotFound))
	}
	p := w.toDomain()
	if p.ID == "" {
		p.ID = id
	}
	return p, nil
}
