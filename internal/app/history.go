package app

import (
	"context"
	"log"
	"sync"

	"github.com/champi41/TicketNowMobile/internal/domain"
)

// PurchaseGetter is the slice of the API the history loader needs.
type PurchaseGetter interface {
	GetPurchase(ctx context.Context, id string) (domain.Purchase, error)
}

// LedgerReader reads the locally recorded purchase identifiers.
type LedgerReader interface {
	ReadAll(ctx context.Context) ([]string, error)
}

// HistoryLoader reconstructs purchase history from the local ledger. Each id
// is fetched concurrently; a failed id is logged and skipped so one bad entry
// does not block the rest.
type HistoryLoader struct {
	apiClient PurchaseGetter
	ledger    LedgerReader
	logger    *log.Logger
}

func NewHistoryLoader(apiClient PurchaseGetter, ledger LedgerReader, logger *log.Logger) *HistoryLoader {
	if logger == nil {
		logger = log.Default()
	}
	return &HistoryLoader{
		apiClient: apiClient,
		ledger:    ledger,
		logger:    logger,
	}
}

// Load returns the purchases for every readable ledger id, in ledger
// insertion order. Each result lands in the slot matching its ledger index
// before filtering, so concurrent resolution cannot reorder the output.
func (h *HistoryLoader) Load(ctx context.Context) ([]domain.Purchase, error) {
	ids, err := h.ledger.ReadAll(ctx)
	if err != nil {
		h.logger.Printf("WARN: failed to read purchase ledger: %v", err)
		return nil, nil
	}
	if len(ids) == 0 {
		return nil, nil
	}

	slots := make([]*domain.Purchase, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			p, err := h.apiClient.GetPurchase(ctx, id)
			if err != nil {
				h.logger.Printf("WARN: failed to load purchase %s: %v", id, err)
				return
			}
			slots[i] = &p
		}(i, id)
	}
	wg.Wait()

	out := make([]domain.Purchase, 0, len(ids))
	for _, p := range slots {
		if p != nil {
			out = append(out, *p)
		}
	}
	return out, nil
}
