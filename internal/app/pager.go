package app

import (
	"context"
	"strings"
	"sync"

	"github.com/champi41/TicketNowMobile/internal/api"
	"github.com/champi41/TicketNowMobile/internal/domain"
)

// EventLister is the slice of the API the pager needs.
type EventLister interface {
	ListEvents(ctx context.Context, page, limit int) (api.EventPage, error)
}

const defaultPageSize = 20

// EventPager accumulates pages of events for an infinite-scroll style list.
// Appended pages are merged without duplicating identifiers, and the pager
// stops requesting once the server's total is reached or a short page signals
// the end.
type EventPager struct {
	lister   EventLister
	pageSize int

	mu        sync.Mutex
	events    []domain.Event
	seen      map[string]struct{}
	total     int
	page      int
	loading   bool
	exhausted bool
	filter    string
}

func NewEventPager(lister EventLister, opts ...EventPagerOption) *EventPager {
	p := &EventPager{
		lister:   lister,
		pageSize: defaultPageSize,
		seen:     make(map[string]struct{}),
		total:    api.TotalUnknown,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type EventPagerOption func(*EventPager)

// WithPageSize overrides the default page size of 20.
func WithPageSize(n int) EventPagerOption {
	return func(p *EventPager) {
		if n > 0 {
			p.pageSize = n
		}
	}
}

// LoadPage fetches one page. reset replaces the accumulated list; otherwise
// the page is appended, skipping events already present. A failed fetch
// leaves the accumulated state untouched.
func (p *EventPager) LoadPage(ctx context.Context, page int, reset bool) error {
	if page < 1 {
		return domain.ErrInvalidPage
	}

	p.mu.Lock()
	if p.loading {
		p.mu.Unlock()
		return nil
	}
	p.loading = true
	size := p.pageSize
	p.mu.Unlock()

	res, err := p.lister.ListEvents(ctx, page, size)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false
	if err != nil {
		return err
	}

	if reset {
		p.events = nil
		p.seen = make(map[string]struct{})
		p.exhausted = false
	}
	for _, ev := range res.Events {
		if _, dup := p.seen[ev.ID]; dup {
			continue
		}
		p.seen[ev.ID] = struct{}{}
		p.events = append(p.events, ev)
	}

	p.total = res.Total
	p.page = page
	// A short or empty page is the end signal; without it a backend that
	// never reports totals could be polled for empty pages forever.
	if len(res.Events) < size {
		p.exhausted = true
	}
	return nil
}

// LoadMore appends the next page when there is more to fetch. It is a no-op
// while a load is in flight, once the list is complete, or while a text
// filter is active (filtering works on the accumulated list only).
func (p *EventPager) LoadMore(ctx context.Context) error {
	p.mu.Lock()
	if p.loading || p.filter != "" || !p.hasMoreLocked() {
		p.mu.Unlock()
		return nil
	}
	next := p.page + 1
	p.mu.Unlock()

	return p.LoadPage(ctx, next, false)
}

// HasMore reports whether another page may exist.
func (p *EventPager) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hasMoreLocked()
}

func (p *EventPager) hasMoreLocked() bool {
	if p.exhausted {
		return false
	}
	if p.total == api.TotalUnknown {
		return true
	}
	return len(p.events) < p.total
}

// SetFilter applies a case-insensitive name filter to Visible.
func (p *EventPager) SetFilter(query string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.filter = strings.TrimSpace(query)
}

// Events returns a copy of the accumulated list.
func (p *EventPager) Events() []domain.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]domain.Event, len(p.events))
	copy(out, p.events)
	return out
}

// Visible returns the accumulated list after the active filter pass.
func (p *EventPager) Visible() []domain.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.filter == "" {
		out := make([]domain.Event, len(p.events))
		copy(out, p.events)
		return out
	}
	q := strings.ToLower(p.filter)
	var out []domain.Event
	for _, ev := range p.events {
		if strings.Contains(strings.ToLower(ev.Name), q) {
			out = append(out, ev)
		}
	}
	return out
}

// Total returns the server-reported total, or api.TotalUnknown.
func (p *EventPager) Total() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.total
}
