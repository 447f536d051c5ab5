// Package store persists categorized transactions. Insert is append-only
// and idempotent on the transaction ID; QueryByTimeRange serves the dedup
// engine's windowed lookups.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/indra7777/SpendWise-sub000/internal/domain"
)

// TransactionStore is the persistence contract the pipeline writes through.
type TransactionStore interface {
	// Insert stores one transaction. Re-inserting an existing ID is a
	// no-op, not an error, so a retried batch never duplicates rows.
	Insert(ctx context.Context, tx *domain.CategorizedTransaction) error

	// QueryByTimeRange returns stored transactions with OccurredAt in
	// [start, end], inclusive on both ends.
	QueryByTimeRange(ctx context.Context, start, end time.Time) ([]*domain.CategorizedTransaction, error)

	Close() error
}

// Open picks a backend by name: "sqlite" (default), "bigquery" or "memory".
func Open(ctx context.Context, backend, sqlitePath string) (TransactionStore, error) {
	switch backend {
	case "", "sqlite":
		return OpenSQLite(sqlitePath)
	case "bigquery":
		return OpenBigQuery(ctx)
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("store: unknown backend %q", backend)
	}
}
