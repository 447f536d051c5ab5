package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/indra7777/SpendWise-sub000/internal/domain"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS transactions (
	id              TEXT PRIMARY KEY,
	amount          TEXT NOT NULL,
	direction       TEXT NOT NULL,
	merchant_raw    TEXT NOT NULL DEFAULT '',
	merchant_clean  TEXT NOT NULL,
	occurred_at     INTEGER NOT NULL,
	currency        TEXT NOT NULL,
	reference       TEXT NOT NULL DEFAULT '',
	account_last4   TEXT NOT NULL DEFAULT '',
	is_card         INTEGER NOT NULL DEFAULT 0,
	source_label    TEXT NOT NULL DEFAULT '',
	category        TEXT NOT NULL,
	subcategory     TEXT NOT NULL DEFAULT '',
	confidence      REAL NOT NULL,
	category_source TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_transactions_occurred_at ON transactions (occurred_at);
`

// SQLite is the default on-device store: a single-file database with one
// transactions table. occurred_at is stored as unix nanoseconds so range
// scans are plain integer comparisons; amounts are stored as their plain
// decimal string to avoid float drift.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path and applies
// the schema.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite %q: %w", path, err)
	}
	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Insert(ctx context.Context, tx *domain.CategorizedTransaction) error {
	const q = `
INSERT INTO transactions (
	id, amount, direction, merchant_raw, merchant_clean, occurred_at,
	currency, reference, account_last4, is_card, source_label,
	category, subcategory, confidence, category_source
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO NOTHING`

	_, err := s.db.ExecContext(ctx, q,
		tx.ID,
		tx.Amount.String(),
		string(tx.Direction),
		tx.MerchantRaw,
		tx.MerchantClean,
		tx.OccurredAt.UnixNano(),
		tx.Currency,
		tx.Reference,
		tx.AccountLast4,
		boolToInt(tx.IsCard),
		tx.SourceLabel,
		string(tx.Category),
		tx.Subcategory,
		tx.Confidence,
		string(tx.CategorySource),
	)
	if err != nil {
		return fmt.Errorf("store: insert transaction %s: %w", tx.ID, err)
	}
	return nil
}

func (s *SQLite) QueryByTimeRange(ctx context.Context, start, end time.Time) ([]*domain.CategorizedTransaction, error) {
	const q = `
SELECT id, amount, direction, merchant_raw, merchant_clean, occurred_at,
	currency, reference, account_last4, is_card, source_label,
	category, subcategory, confidence, category_source
FROM transactions
WHERE occurred_at >= ? AND occurred_at <= ?
ORDER BY occurred_at`

	rows, err := s.db.QueryContext(ctx, q, start.UnixNano(), end.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("store: query time range: %w", err)
	}
	defer rows.Close()

	var out []*domain.CategorizedTransaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: iterate rows: %w", err)
	}
	return out, nil
}

func scanTransaction(rows *sql.Rows) (*domain.CategorizedTransaction, error) {
	var (
		tx             domain.CategorizedTransaction
		amountStr      string
		direction      string
		occurredAtNano int64
		isCard         int
		category       string
		categorySource string
	)
	err := rows.Scan(
		&tx.ID, &amountStr, &direction, &tx.MerchantRaw, &tx.MerchantClean,
		&occurredAtNano, &tx.Currency, &tx.Reference, &tx.AccountLast4,
		&isCard, &tx.SourceLabel, &category, &tx.Subcategory,
		&tx.Confidence, &categorySource,
	)
	if err != nil {
		return nil, fmt.Errorf("store: scan row: %w", err)
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("store: stored amount %q: %w", amountStr, err)
	}
	tx.Amount = amount
	tx.Direction = domain.Direction(direction)
	tx.OccurredAt = time.Unix(0, occurredAtNano)
	tx.IsCard = isCard != 0
	tx.Category = domain.Category(category)
	tx.CategorySource = domain.CategorySource(categorySource)
	return &tx, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
