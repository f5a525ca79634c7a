// Package ledger keeps the device-local list of purchase identifiers used to
// reconstruct purchase history without a server-side account.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
)

// Store is a key-value persistence slot (device storage). Get reports
// found=false when the key has never been written.
type Store interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
}

const purchasesKey = "purchase_ids"

// Ledger is an ordered set of purchase identifiers persisted as a JSON array
// in a single Store slot. Append is idempotent.
type Ledger struct {
	store  Store
	key    string
	logger *log.Logger
}

func New(store Store, opts ...Option) *Ledger {
	l := &Ledger{
		store:  store,
		key:    purchasesKey,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

type Option func(*Ledger)

// WithKey overrides the storage key (tests, multi-profile setups).
func WithKey(key string) Option {
	return func(l *Ledger) {
		if key != "" {
			l.key = key
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// ReadAll returns the persisted identifiers in insertion order. A missing
// slot or unparseable payload reads as empty rather than failing history.
func (l *Ledger) ReadAll(ctx context.Context) ([]string, error) {
	raw, found, err := l.store.Get(ctx, l.key)
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	if !found || raw == "" {
		return nil, nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		l.logger.Printf("WARN: purchase ledger is corrupt, treating as empty: %v", err)
		return nil, nil
	}
	return ids, nil
}

// Append inserts id at the end of the list unless it is already present.
func (l *Ledger) Append(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	ids, err := l.ReadAll(ctx)
	if err != nil {
		return err
	}
	for _, existing := range ids {
		if existing == id {
			return nil
		}
	}

	payload, err := json.Marshal(append(ids, id))
	if err != nil {
		return fmt.Errorf("encode ledger: %w", err)
	}
	if err := l.store.Set(ctx, l.key, string(payload)); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	return nil
}
