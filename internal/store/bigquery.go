package store

import (
	"context"
	"fmt"
	"math/big"
	"os"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/shopspring/decimal"
	"google.golang.org/api/iterator"

	"github.com/indra7777/SpendWise-sub000/internal/domain"
)

const (
	defaultBQDataset  = "spendwise"
	transactionsTable = "transactions"
)

// transactionRow is the BigQuery shape of a stored transaction. Amounts are
// NUMERIC to keep exact paisa values.
type transactionRow struct {
	TransactionID string `bigquery:"transaction_id"` // REQUIRED

	Amount   *big.Rat `bigquery:"amount"`   // REQUIRED NUMERIC
	Currency string   `bigquery:"currency"` // REQUIRED STRING

	Direction string `bigquery:"direction"` // REQUIRED STRING

	MerchantRaw   string `bigquery:"merchant_raw"`   // REQUIRED STRING
	MerchantClean string `bigquery:"merchant_clean"` // REQUIRED STRING

	OccurredAt time.Time `bigquery:"occurred_at"` // REQUIRED TIMESTAMP

	Reference    bigquery.NullString `bigquery:"reference"`     // NULLABLE
	AccountLast4 bigquery.NullString `bigquery:"account_last4"` // NULLABLE
	IsCard       bool                `bigquery:"is_card"`
	SourceLabel  bigquery.NullString `bigquery:"source_label"` // NULLABLE

	CategoryName    string              `bigquery:"category_name"`    // REQUIRED STRING
	SubcategoryName bigquery.NullString `bigquery:"subcategory_name"` // NULLABLE
	Confidence      float64             `bigquery:"confidence"`
	CategorySource  string              `bigquery:"category_source"` // REQUIRED STRING

	CreatedTS time.Time `bigquery:"created_ts"`
}

// BigQueryStore archives transactions into <project>.<dataset>.transactions.
// It is intended for backup/analytics sync, not as the primary on-device
// store; the dedup window query works against it all the same.
type BigQueryStore struct {
	client  *bigquery.Client
	project string
	dataset string
}

// OpenBigQuery creates the archival store. The project comes from
// SPENDWISE_BQ_PROJECT, the dataset from SPENDWISE_BQ_DATASET (default
// "spendwise").
func OpenBigQuery(ctx context.Context) (*BigQueryStore, error) {
	project := os.Getenv("SPENDWISE_BQ_PROJECT")
	if project == "" {
		return nil, fmt.Errorf("store: SPENDWISE_BQ_PROJECT is not set")
	}
	dataset := os.Getenv("SPENDWISE_BQ_DATASET")
	if dataset == "" {
		dataset = defaultBQDataset
	}

	client, err := bigquery.NewClient(ctx, project)
	if err != nil {
		return nil, fmt.Errorf("store: bigquery client: %w", err)
	}
	return &BigQueryStore{client: client, project: project, dataset: dataset}, nil
}

func (s *BigQueryStore) Insert(ctx context.Context, tx *domain.CategorizedTransaction) error {
	table := s.client.DatasetInProject(s.project, s.dataset).Table(transactionsTable)
	inserter := table.Inserter()

	row := &transactionRow{
		TransactionID:   tx.ID,
		Amount:          tx.Amount.Rat(),
		Currency:        tx.Currency,
		Direction:       string(tx.Direction),
		MerchantRaw:     tx.MerchantRaw,
		MerchantClean:   tx.MerchantClean,
		OccurredAt:      tx.OccurredAt,
		Reference:       nullString(tx.Reference),
		AccountLast4:    nullString(tx.AccountLast4),
		IsCard:          tx.IsCard,
		SourceLabel:     nullString(tx.SourceLabel),
		CategoryName:    string(tx.Category),
		SubcategoryName: nullString(tx.Subcategory),
		Confidence:      tx.Confidence,
		CategorySource:  string(tx.CategorySource),
		CreatedTS:       time.Now().UTC(),
	}
	if err := inserter.Put(ctx, []*transactionRow{row}); err != nil {
		return fmt.Errorf("store: insert transaction %s: %w", tx.ID, err)
	}
	return nil
}

func (s *BigQueryStore) QueryByTimeRange(ctx context.Context, start, end time.Time) ([]*domain.CategorizedTransaction, error) {
	q := s.client.Query(fmt.Sprintf(`
		SELECT
			t.transaction_id,
			t.amount,
			t.currency,
			t.direction,
			t.merchant_raw,
			t.merchant_clean,
			t.occurred_at,
			t.reference,
			t.account_last4,
			t.is_card,
			t.source_label,
			t.category_name,
			t.subcategory_name,
			t.confidence,
			t.category_source,
			t.created_ts
		FROM %s.%s t
		WHERE t.occurred_at >= @start_ts
		  AND t.occurred_at <= @end_ts
		ORDER BY t.occurred_at, t.created_ts
	`, s.dataset, transactionsTable))
	q.Parameters = []bigquery.QueryParameter{
		{Name: "start_ts", Value: start},
		{Name: "end_ts", Value: end},
	}

	it, err := q.Read(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: query time range: %w", err)
	}

	var out []*domain.CategorizedTransaction
	for {
		var row transactionRow
		err := it.Next(&row)
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("store: iter next: %w", err)
		}
		out = append(out, rowToTransaction(&row))
	}
	return out, nil
}

func rowToTransaction(row *transactionRow) *domain.CategorizedTransaction {
	tx := &domain.CategorizedTransaction{
		ID: row.TransactionID,
		ExtractedTransaction: domain.ExtractedTransaction{
			Direction:     domain.Direction(row.Direction),
			MerchantRaw:   row.MerchantRaw,
			MerchantClean: row.MerchantClean,
			OccurredAt:    row.OccurredAt,
			Currency:      row.Currency,
			Reference:     row.Reference.StringVal,
			AccountLast4:  row.AccountLast4.StringVal,
			IsCard:        row.IsCard,
			SourceLabel:   row.SourceLabel.StringVal,
		},
		Category:       domain.Category(row.CategoryName),
		Subcategory:    row.SubcategoryName.StringVal,
		Confidence:     row.Confidence,
		CategorySource: domain.CategorySource(row.CategorySource),
	}
	if row.Amount != nil {
		tx.Amount = decimal.NewFromBigRat(row.Amount, 2)
	}
	return tx
}

func (s *BigQueryStore) Close() error {
	return s.client.Close()
}

func nullString(s string) bigquery.NullString {
	return bigquery.NullString{StringVal: s, Valid: s != ""}
}
