package extract

import (
	"regexp"
	"strings"
)

// Currency markers and transaction verbs required by the guard. A body must
// carry at least one of each to be considered a transaction at all.
var (
	currencyMarkers = []string{"₹", "rs.", "rs ", "inr"}

	transactionVerbs = []string{
		"debited", "credited", "paid", "received", "sent",
		"withdrawn", "transferred",
	}

	// Noise phrases that identify non-transaction notifications even when
	// they mention money: one-time passwords, promotions, collect
	// requests. Matched against the lowercased body. "otp" and "offer"
	// need word boundaries ("laptop", "offered" must not trip the gate).
	noiseRes = []*regexp.Regexp{
		regexp.MustCompile(`\botp\b`),
		regexp.MustCompile(`\boffers?\b`),
		regexp.MustCompile(`one.?time password`),
		regexp.MustCompile(`cashback on your next`),
		regexp.MustCompile(`requested money from you`),
		regexp.MustCompile(`has requested`),
		regexp.MustCompile(`expires on`),
		regexp.MustCompile(`expiring soon`),
		regexp.MustCompile(`valid till`),
		regexp.MustCompile(`congratulations`),
		regexp.MustCompile(`\bwin\b`),
	}
)

// looksLikeTransaction is the shared privacy gate. Every variant routes
// through it; no unit reaches field extraction, storage or logging without
// passing. This is a privacy requirement, not an optimization: the pipeline
// sees every notification on the device and must forget the ones that are
// not transactions.
func looksLikeTransaction(body string) bool {
	lower := strings.ToLower(body)

	for _, re := range noiseRes {
		if re.MatchString(lower) {
			return false
		}
	}

	hasCurrency := false
	for _, marker := range currencyMarkers {
		if strings.Contains(lower, marker) {
			hasCurrency = true
			break
		}
	}
	if !hasCurrency {
		return false
	}

	for _, verb := range transactionVerbs {
		if strings.Contains(lower, verb) {
			return true
		}
	}
	return false
}
