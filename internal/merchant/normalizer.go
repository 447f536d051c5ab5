// Package merchant normalizes raw merchant strings pulled out of
// notification bodies and statement descriptions. The transform is
// deterministic and idempotent: normalizing an already-normalized name is a
// no-op.
package merchant

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FallbackName substitutes for a merchant that normalized down to nothing.
const FallbackName = "Unknown Merchant"

// MaxLen is the maximum length of a cleaned merchant name, in runes.
const MaxLen = 50

var (
	// Payment-rail prefixes that carry routing noise, not merchant identity.
	railPrefixRe = regexp.MustCompile(`(?i)\b(UPI|IMPS|NEFT)/\d+/`)

	// Runs of 10+ digits are account or phone numbers, never names.
	longDigitRunRe = regexp.MustCompile(`\d{10,}`)

	whitespaceRe = regexp.MustCompile(`\s+`)

	titleCaser = cases.Title(language.English)

	// displayNames maps lowercase merchant keys to their preferred casing,
	// for names the generic title caser gets wrong.
	displayNames = map[string]string{
		"phonepe":    "PhonePe",
		"bigbasket":  "BigBasket",
		"mcdonald's": "McDonald's",
		"kfc":        "KFC",
		"iifl":       "IIFL",
		"irctc":      "IRCTC",
	}
)

// Normalize strips payment-rail prefixes, collapses whitespace, truncates to
// MaxLen runes and falls back to FallbackName when nothing survives.
func Normalize(raw string) string {
	return normalize(raw, false)
}

// NormalizeAggressive additionally removes long digit runs (account and
// phone numbers). Only the generic extractor uses it; format-specific
// extractors already know where the merchant sits.
func NormalizeAggressive(raw string) string {
	return normalize(raw, true)
}

// edgeCutset is trimmed from both ends: separator residue and the spaces
// it may sandwich. Trimming with one cutset keeps normalize idempotent even
// when truncation cuts mid-phrase and exposes a fresh separator.
const edgeCutset = "-/: "

func normalize(raw string, stripDigitRuns bool) string {
	s := railPrefixRe.ReplaceAllString(raw, "")
	if stripDigitRuns {
		s = longDigitRunRe.ReplaceAllString(s, "")
	}
	s = whitespaceRe.ReplaceAllString(s, " ")
	s = strings.Trim(s, edgeCutset)

	if runes := []rune(s); len(runes) > MaxLen {
		s = strings.Trim(string(runes[:MaxLen]), edgeCutset)
	}
	if s == "" {
		return FallbackName
	}
	return s
}

// DisplayName returns a presentation casing for a cleaned merchant name:
// known brands keep their trademark casing, ALL-CAPS statement shouting is
// title-cased, anything already mixed-case is left alone.
func DisplayName(clean string) string {
	if preferred, ok := displayNames[strings.ToLower(clean)]; ok {
		return preferred
	}
	if clean == strings.ToUpper(clean) && clean != strings.ToLower(clean) {
		return titleCaser.String(strings.ToLower(clean))
	}
	return clean
}
