package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/indra7777/SpendWise-sub000/internal/dateparse"
	"github.com/indra7777/SpendWise-sub000/internal/merchant"
)

// amt is the capture group for a currency amount with optional thousands
// separators (Indian grouping included: 1,23,456.78).
const amt = `([0-9][0-9,]*(?:\.[0-9]{1,2})?)`

// cur matches the currency marker preceding an amount.
const cur = `(?:₹|(?i:rs\.?|inr)\s?)\s*`

// parseAmount strips separators from a matched amount group and parses it.
func parseAmount(group string) (decimal.Decimal, bool) {
	clean := strings.ReplaceAll(group, ",", "")
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// firstAmount runs an ordered pattern list against the body; the first
// pattern with a parseable capture wins. Ordering encodes precedence
// (specific phrasing before a bare currency-amount), so callers must not
// collapse the list into a single pattern.
func firstAmount(body string, patterns []*regexp.Regexp) (decimal.Decimal, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		if d, ok := parseAmount(m[1]); ok {
			return d, true
		}
	}
	return decimal.Decimal{}, false
}

// firstMerchant runs an ordered pattern list and returns the first
// candidate that survives normalization with more than one character.
func firstMerchant(body string, patterns []*regexp.Regexp, aggressive bool) (string, bool) {
	for _, re := range patterns {
		m := re.FindStringSubmatch(body)
		if m == nil {
			continue
		}
		candidate := m[1]
		var clean string
		if aggressive {
			clean = merchant.NormalizeAggressive(candidate)
		} else {
			clean = merchant.Normalize(candidate)
		}
		if clean != merchant.FallbackName && len([]rune(clean)) > 1 {
			return candidate, true
		}
	}
	return "", false
}

func cleanMerchant(ext Extractor, raw string) string {
	v, ok := ext.(*variant)
	if ok && v.aggressive {
		return merchant.DisplayName(merchant.NormalizeAggressive(raw))
	}
	return merchant.DisplayName(merchant.Normalize(raw))
}

// UPI structured-path markers: /C// marks a credit leg, /D// a debit leg.
// When present they outrank any keyword match.
var (
	upiCreditMarker = "/C//"
	upiDebitMarker  = "/D//"
)

func upiPathDirection(body string) (dir string, ok bool) {
	switch {
	case strings.Contains(body, upiCreditMarker):
		return "credit", true
	case strings.Contains(body, upiDebitMarker):
		return "debit", true
	}
	return "", false
}

// Shared reference / account / card detection. These fields are incidental
// to every format, so they live here rather than in per-variant tables.
var (
	referenceRe = regexp.MustCompile(`(?i)(?:upi\s+ref(?:erence)?\s*(?:no\.?)?|utr|ref\s*no\.?|txn\s*id)\s*[:#]?\s*([A-Za-z0-9]{6,22})`)

	accountLast4Re = regexp.MustCompile(`(?i)(?:a/c|acct|account|card)(?:\s+no\.?)?\s*(?:ending(?:\s+in)?\s*)?[Xx*]*(\d{4})\b`)

	cardRe = regexp.MustCompile(`(?i)\b(?:credit|debit)?\s*card\b`)

	// bodyDateRe finds the first date-shaped token in a body; the token is
	// then resolved strictly against the generic layout list.
	bodyDateRe = regexp.MustCompile(`\b(\d{1,2}[-/.]\d{1,2}[-/.]\d{4}|\d{1,2}[- ][A-Za-z]{3}[- ]\d{4}|[A-Za-z]{3} \d{1,2}, \d{4})\b`)
)

func extractReference(body string) string {
	if m := referenceRe.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	return ""
}

func extractAccountLast4(body string) string {
	if m := accountLast4Re.FindStringSubmatch(body); m != nil {
		return m[1]
	}
	return ""
}

func isCardBody(body string) bool {
	return cardRe.MatchString(body)
}

func findDateToken(body string) (string, bool) {
	m := bodyDateRe.FindStringSubmatch(body)
	if m == nil {
		return "", false
	}
	return m[1], true
}

func resolveBodyDate(raw string) (time.Time, error) {
	return dateparse.Resolve(raw, dateparse.GenericLayouts)
}
