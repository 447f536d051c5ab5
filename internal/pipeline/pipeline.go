// Package pipeline wires extraction, deduplication, categorization and
// persistence into the two entry points the rest of the system calls: one
// notification in, or one statement file in.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/indra7777/SpendWise-sub000/internal/categorize"
	"github.com/indra7777/SpendWise-sub000/internal/dedup"
	"github.com/indra7777/SpendWise-sub000/internal/domain"
	"github.com/indra7777/SpendWise-sub000/internal/extract"
	"github.com/indra7777/SpendWise-sub000/internal/statement"
	"github.com/indra7777/SpendWise-sub000/internal/store"
)

// DropReason says why a unit produced no stored transaction. Drops are
// outcomes, not errors.
type DropReason string

const (
	DropNone              DropReason = ""
	DropNotTransaction    DropReason = "not_transaction"
	DropNoAmount          DropReason = "no_amount"
	DropNoDate            DropReason = "no_date"
	DropDuplicateDelivery DropReason = "duplicate_delivery"
	DropDuplicateWindow   DropReason = "duplicate_window"
)

// Pipeline processes raw units end to end. Safe for concurrent use: the
// store is the only shared state and is the serialization point.
type Pipeline struct {
	registry *extract.Registry
	recent   *dedup.RecentCache
	engine   *dedup.Engine
	cascade  *categorize.Cascade
	store    store.TransactionStore
	caps     categorize.Capabilities
	log      zerolog.Logger
}

// New wires a pipeline. caps is the runtime capability snapshot consulted
// before each model tier.
func New(registry *extract.Registry, recent *dedup.RecentCache, engine *dedup.Engine, cascade *categorize.Cascade, st store.TransactionStore, caps categorize.Capabilities, log zerolog.Logger) *Pipeline {
	return &Pipeline{
		registry: registry,
		recent:   recent,
		engine:   engine,
		cascade:  cascade,
		store:    st,
		caps:     caps,
		log:      log,
	}
}

// ProcessNotification runs one notification through the full pipeline. A
// nil transaction with a non-empty DropReason means the unit was discarded;
// only store and dedup-query failures surface as errors.
func (p *Pipeline) ProcessNotification(ctx context.Context, unit domain.RawUnit) (*domain.CategorizedTransaction, DropReason, error) {
	ext, amount, err := p.registry.Probe(unit)
	if err != nil {
		return nil, dropReasonFor(err), nil
	}

	fp := dedup.Fingerprint(unit.Origin, amount, unit.Body)
	if p.recent.SeenRecently(fp) {
		p.log.Debug().Str("origin", unit.Origin).Msg("dropping redelivered notification")
		return nil, DropDuplicateDelivery, nil
	}

	tx, err := p.registry.ExtractUsing(ext, unit)
	if err != nil {
		return nil, dropReasonFor(err), nil
	}

	dup, err := p.engine.IsDuplicate(ctx, tx)
	if err != nil {
		return nil, DropNone, fmt.Errorf("pipeline: duplicate check: %w", err)
	}
	if dup {
		p.log.Debug().
			Str("merchant", tx.MerchantClean).
			Str("amount", tx.Amount.String()).
			Msg("dropping windowed duplicate")
		return nil, DropDuplicateWindow, nil
	}

	final := p.categorize(ctx, tx)
	if err := p.store.Insert(ctx, final); err != nil {
		return nil, DropNone, fmt.Errorf("pipeline: store insert: %w", err)
	}

	p.log.Info().
		Str("id", final.ID).
		Str("merchant", final.MerchantClean).
		Str("amount", final.Amount.String()).
		Str("category", string(final.Category)).
		Str("category_source", string(final.CategorySource)).
		Msg("transaction stored")
	return final, DropNone, nil
}

// ImportOptions tunes one statement import.
type ImportOptions struct {
	// Password unlocks encrypted XLSX statements.
	Password string

	// Progress, when set, is called after each row with monotonic
	// (done, total) counts.
	Progress func(done, total int)
}

// ImportSummary is the user-visible outcome of one statement import.
type ImportSummary struct {
	FormatLabel       string
	Parsed            int
	Imported          int
	SkippedDuplicates int
	Failed            int
	Errors            []string
}

// ImportStatement parses one statement file and runs every extracted row
// through dedup, categorization and the store. Row-level problems are
// isolated; only an unrecognized format or an aborted context fails the
// import. Already-inserted rows survive a mid-batch abort.
func (p *Pipeline) ImportStatement(ctx context.Context, data []byte, opts ImportOptions) (*ImportSummary, error) {
	result, err := statement.Parse(data, statement.Options{Password: opts.Password})
	if err != nil {
		return nil, err
	}

	summary := &ImportSummary{
		FormatLabel: result.FormatLabel,
		Parsed:      result.ParsedCount,
		Errors:      result.Errors,
	}

	total := len(result.Transactions)
	for i, tx := range result.Transactions {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		dup, err := p.engine.IsDuplicate(ctx, tx)
		if err != nil {
			return summary, fmt.Errorf("pipeline: duplicate check: %w", err)
		}
		if dup {
			summary.SkippedDuplicates++
		} else {
			final := p.categorize(ctx, tx)
			if err := p.store.Insert(ctx, final); err != nil {
				summary.Failed++
				if len(summary.Errors) < 5 {
					summary.Errors = append(summary.Errors, fmt.Sprintf("row %d: %v", i+1, err))
				}
			} else {
				summary.Imported++
			}
		}

		if opts.Progress != nil {
			opts.Progress(i+1, total)
		}
	}

	p.log.Info().
		Str("format", summary.FormatLabel).
		Int("parsed", summary.Parsed).
		Int("imported", summary.Imported).
		Int("skipped_duplicates", summary.SkippedDuplicates).
		Int("failed", summary.Failed).
		Msg("statement import finished")
	return summary, nil
}

func (p *Pipeline) categorize(ctx context.Context, tx *domain.ExtractedTransaction) *domain.CategorizedTransaction {
	verdict := p.cascade.Categorize(ctx, tx, p.caps)

	final := &domain.CategorizedTransaction{
		ID:                   uuid.NewString(),
		ExtractedTransaction: *tx,
		Category:             verdict.Category,
		Subcategory:          verdict.Subcategory,
		Confidence:           verdict.Confidence,
		CategorySource:       verdict.Source,
	}
	if verdict.MerchantName != "" {
		final.MerchantClean = verdict.MerchantName
	}
	return final
}

func dropReasonFor(err error) DropReason {
	switch {
	case errors.Is(err, extract.ErrNotTransaction):
		return DropNotTransaction
	case errors.Is(err, extract.ErrNoAmount):
		return DropNoAmount
	case errors.Is(err, extract.ErrNoDate):
		return DropNoDate
	default:
		return DropNotTransaction
	}
}
