package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/indra7777/SpendWise-sub000/internal/domain"
)

// Store is the slice of the transaction store the engine needs: stored
// transactions around a candidate's instant.
type Store interface {
	QueryByTimeRange(ctx context.Context, start, end time.Time) ([]*domain.CategorizedTransaction, error)
}

// Engine runs the windowed cross-source duplicate check: a candidate is a
// duplicate of a stored transaction when their instants are within the
// window AND their signed amounts are within the tolerance. Merchant text
// is deliberately ignored — statement descriptions and notification
// merchant strings rarely match verbatim — so the check is loose on text
// and tight on time+amount.
//
// Two genuinely distinct transactions for the same amount within the same
// window are indistinguishable here and will be merged. That is an accepted
// false-positive rate: narrowing the window instead trades it for false
// negatives from clock skew between channels. Both constants are therefore
// configuration, not engine constants.
type Engine struct {
	store     Store
	window    time.Duration
	tolerance decimal.Decimal
}

// NewEngine creates an engine with the given window and amount tolerance.
func NewEngine(store Store, window time.Duration, tolerance float64) *Engine {
	return &Engine{
		store:     store,
		window:    window,
		tolerance: decimal.NewFromFloat(tolerance),
	}
}

// IsDuplicate checks the candidate against stored transactions in the
// surrounding window.
func (e *Engine) IsDuplicate(ctx context.Context, candidate *domain.ExtractedTransaction) (bool, error) {
	start := candidate.OccurredAt.Add(-e.window)
	end := candidate.OccurredAt.Add(e.window)

	existing, err := e.store.QueryByTimeRange(ctx, start, end)
	if err != nil {
		return false, fmt.Errorf("dedup: query window: %w", err)
	}

	signed := candidate.SignedAmount()
	for _, tx := range existing {
		dt := tx.OccurredAt.Sub(candidate.OccurredAt)
		if dt < 0 {
			dt = -dt
		}
		if dt >= e.window {
			continue
		}
		if tx.SignedAmount().Sub(signed).Abs().LessThan(e.tolerance) {
			return true, nil
		}
	}
	return false, nil
}
