package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/champi41/TicketNowMobile/internal/domain"
)

// TotalUnknown marks a page whose server response carried no total count.
const TotalUnknown = -1

// EventPage is one page of events plus the pagination metadata the server
// reported alongside it.
type EventPage struct {
	Events []domain.Event
	Total  int
	Limit  int
}

type eventWire struct {
	ID          string       `json:"id"`
	LegacyID    string       `json:"_id"`
	Name        string       `json:"name"`
	Category    string       `json:"category"`
	Location    string       `json:"location"`
	Date        string       `json:"date"`
	Image       string       `json:"image"`
	Description string       `json:"description"`
	Tickets     []ticketWire `json:"tickets"`
}

type ticketWire struct {
	Type      string `json:"type"`
	Price     int64  `json:"price"`
	Available int    `json:"available"`
}

func (w eventWire) toDomain() domain.Event {
	ev := domain.Event{
		ID:          firstNonEmpty(w.LegacyID, w.ID),
		Name:        w.Name,
		Category:    w.Category,
		Location:    w.Location,
		Date:        parseDate(w.Date),
		Image:       w.Image,
		Description: w.Description,
	}
	for _, t := range w.Tickets {
		ev.Tickets = append(ev.Tickets, domain.TicketOffer{
			Type:      t.Type,
			Price:     t.Price,
			Available: t.Available,
		})
	}
	return ev
}

// ListEvents fetches one page of events. Total is TotalUnknown when the
// server response omits it.
func (c *Client) ListEvents(ctx context.Context, page, limit int) (EventPage, error) {
	var res struct {
		Data  []eventWire `json:"data"`
		Total *int        `json:"total"`
		Limit int         `json:"limit"`
	}
	path := fmt.Sprintf("/events?page=%d&limit=%d", page, limit)
	if err := c.getJSON(ctx, path, &res); err != nil {
		return EventPage{}, fmt.Errorf("list events: %w", err)
	}

	out := EventPage{Total: TotalUnknown, Limit: res.Limit}
	if res.Total != nil {
		out.Total = *res.Total
	}
	if out.Limit == 0 {
		out.Limit = limit
	}
	for _, w := range res.Data {
		out.Events = append(out.Events, w.toDomain())
	}
	return out, nil
}

// GetEvent fetches one event with its embedded ticket offers.
func (c *Client) GetEvent(ctx context.Context, id string) (domain.Event, error) {
	var w eventWire
	if err := c.getJSON(ctx, "/events/"+url.PathEscape(id), &w); err != nil {
		return domain.Event{}, fmt.Errorf("get event %s: %w", id, mapNotFound(err, domain.ErrEventNotFound))
	}
	return w.toDomain(), nil
}
