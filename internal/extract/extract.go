// Package extract turns one raw notification body into at most one
// ExtractedTransaction. Each source family is a registered variant carrying
// its own pattern tables; variants are tried in a fixed priority order
// ending with a generic one that always claims the unit. A unit that fails
// a variant's transaction guard is discarded with no side effects.
package extract

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/indra7777/SpendWise-sub000/internal/domain"
)

// Drop reasons. The pipeline records these as soft parse errors; none of
// them abort a batch.
var (
	// ErrNotTransaction means the guard rejected the body: no currency
	// marker plus transaction verb, or known non-transaction noise.
	ErrNotTransaction = errors.New("extract: body is not a transaction")

	// ErrNoAmount means no amount pattern matched.
	ErrNoAmount = errors.New("extract: no amount found")

	// ErrNoDate means the unit carried no usable instant. Candidates are
	// rejected rather than stamped with "now".
	ErrNoDate = errors.New("extract: no usable timestamp")
)

// Extractor is the capability contract every source-family variant
// implements.
type Extractor interface {
	// SourceLabel is the display name recorded on extracted transactions,
	// e.g. "PhonePe" or "HDFC Bank".
	SourceLabel() string

	// CanHandle is a cheap identity check on the unit's origin tag
	// (package-name substring or sender id).
	CanHandle(origin string) bool

	// LooksLikeTransaction is the privacy/precision gate. It is
	// independent of CanHandle and mandatory for every variant: a body
	// must show both a currency marker and a transaction verb, and must
	// not look like OTP/offer/request noise.
	LooksLikeTransaction(body string) bool

	// ExtractAmount returns the first amount matched by the variant's
	// ordered pattern list, most specific pattern first.
	ExtractAmount(body string) (decimal.Decimal, bool)

	// ExtractDirection runs the variant's keyword cascade. UPI path
	// markers (/C//, /D//) outrank keywords when present.
	ExtractDirection(body string) domain.Direction

	// ExtractMerchant returns the first non-trivial merchant candidate,
	// already cleaned by the merchant normalizer.
	ExtractMerchant(body string) (string, bool)
}

// Registry holds the variants in priority order. The last entry is the
// generic variant, whose CanHandle always reports true.
type Registry struct {
	variants []*variant
}

// NewRegistry builds the default registry: UPI apps first (most specific
// origin match), then bank senders, then generic.
func NewRegistry() *Registry {
	return &Registry{variants: []*variant{
		phonePeVariant(),
		googlePayVariant(),
		paytmVariant(),
		bankSMSVariant(),
		genericVariant(),
	}}
}

// Detect picks the highest-priority variant claiming the origin. It cannot
// fail: the generic variant claims everything.
func (r *Registry) Detect(origin string) Extractor {
	for _, v := range r.variants {
		if v.CanHandle(origin) {
			return v
		}
	}
	// Unreachable while the generic variant is registered last.
	return r.variants[len(r.variants)-1]
}

// Extract runs the full contract for one unit: detect, guard, pull fields,
// validate. The returned transaction always has a positive amount, a
// non-blank MerchantClean and a real OccurredAt.
func (r *Registry) Extract(unit domain.RawUnit) (*domain.ExtractedTransaction, error) {
	ext := r.Detect(unit.Origin)
	return extractWith(ext, unit)
}

// Probe runs only detection, the guard and amount extraction — enough for
// the redelivery fingerprint — so a duplicate delivery can be dropped
// before full extraction runs.
func (r *Registry) Probe(unit domain.RawUnit) (Extractor, decimal.Decimal, error) {
	ext := r.Detect(unit.Origin)
	if !ext.LooksLikeTransaction(unit.Body) {
		return nil, decimal.Decimal{}, ErrNotTransaction
	}
	amount, ok := ext.ExtractAmount(unit.Body)
	if !ok || !amount.IsPositive() {
		return nil, decimal.Decimal{}, ErrNoAmount
	}
	return ext, amount, nil
}

// ExtractUsing completes extraction with a variant already picked by Probe.
func (r *Registry) ExtractUsing(ext Extractor, unit domain.RawUnit) (*domain.ExtractedTransaction, error) {
	return extractWith(ext, unit)
}

func sourceLabelFor(ext Extractor, origin string) string {
	if v, ok := ext.(*variant); ok {
		return v.labelFor(origin)
	}
	return ext.SourceLabel()
}

func extractWith(ext Extractor, unit domain.RawUnit) (*domain.ExtractedTransaction, error) {
	if !ext.LooksLikeTransaction(unit.Body) {
		return nil, ErrNotTransaction
	}

	amount, ok := ext.ExtractAmount(unit.Body)
	if !ok || !amount.IsPositive() {
		return nil, ErrNoAmount
	}

	occurredAt := bodyTimestamp(unit.Body)
	if occurredAt.IsZero() {
		occurredAt = unit.ObservedAt
	}
	if occurredAt.IsZero() {
		return nil, ErrNoDate
	}

	merchantRaw, _ := ext.ExtractMerchant(unit.Body)

	tx := &domain.ExtractedTransaction{
		Amount:        amount,
		Direction:     ext.ExtractDirection(unit.Body),
		MerchantRaw:   merchantRaw,
		MerchantClean: cleanMerchant(ext, merchantRaw),
		OccurredAt:    occurredAt,
		Currency:      "INR",
		Reference:     extractReference(unit.Body),
		AccountLast4:  extractAccountLast4(unit.Body),
		IsCard:        isCardBody(unit.Body),
		SourceLabel:   sourceLabelFor(ext, unit.Origin),
	}
	return tx, nil
}

// bodyTimestamp looks for an explicit date inside the body (bank SMS often
// carries one). A date without a time component keeps midnight local time;
// the caller prefers this over the delivery instant because statements will
// later report the same calendar day.
func bodyTimestamp(body string) time.Time {
	raw, ok := findDateToken(body)
	if !ok {
		return time.Time{}
	}
	t, err := resolveBodyDate(raw)
	if err != nil {
		return time.Time{}
	}
	return t
}
