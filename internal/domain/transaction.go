package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the money-movement direction of a transaction as seen from
// the user's account.
type Direction string

const (
	DirectionDebit      Direction = "DEBIT"
	DirectionCredit     Direction = "CREDIT"
	DirectionTransfer   Direction = "TRANSFER"
	DirectionInvestment Direction = "INVESTMENT"
	DirectionUnknown    Direction = "UNKNOWN"
)

// RawUnit is one unit of text handed to the pipeline: a single push
// notification body, or one statement-import batch. It is ephemeral and
// consumed exactly once.
type RawUnit struct {
	Body       string
	Origin     string // app/package identifier or bank-format tag
	ObservedAt time.Time
}

// ExtractedTransaction is the parser's output before deduplication and
// categorization. Amount is always a non-negative magnitude; Direction
// carries the sign separately.
type ExtractedTransaction struct {
	Amount    decimal.Decimal
	Direction Direction

	MerchantRaw   string
	MerchantClean string // post-normalization, <=50 chars, never blank

	OccurredAt time.Time
	Currency   string // ISO code, default "INR"

	Reference    string // UPI ref / UTR / txn id, may be empty
	AccountLast4 string
	IsCard       bool

	SourceLabel string // bank/app display name, e.g. "HDFC Bank", "PhonePe"
}

// SignedAmount derives the signed amount used by the dedup window and by
// downstream aggregation: credits are positive, everything else (including
// UNKNOWN, TRANSFER and INVESTMENT) is treated as outgoing.
func (t *ExtractedTransaction) SignedAmount() decimal.Decimal {
	if t.Direction == DirectionCredit {
		return t.Amount
	}
	return t.Amount.Neg()
}

// Valid reports whether the candidate meets the minimum bar to proceed:
// a strictly positive amount and a real parsed instant. Candidates failing
// either are dropped as soft parse errors, never coerced to zero or "now".
func (t *ExtractedTransaction) Valid() bool {
	return t.Amount.IsPositive() && !t.OccurredAt.IsZero()
}
