package contracts

import (
	"context"
	"time"
)

// ReconciliationEntry records a payment that was written to the ledger while
// the dependent appointment write failed. Operators drain these manually;
// the workflow never repairs them automatically.
type ReconciliationEntry struct {
	Reference  string                 `json:"reference"`
	Reason     string                 `json:"reason"`
	Event      map[string]interface{} `json:"event,omitempty"`
	ObservedAt time.Time              `json:"observed_at"`
}

type ReconciliationQueue interface {
	Publish(ctx context.Context, entry *ReconciliationEntry) error
	FetchN(ctx context.Context, max int) ([]ReconciliationEntry, error)
}
