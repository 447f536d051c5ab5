package extract

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/indra7777/SpendWise-sub000/internal/domain"
)

// dirRule maps one keyword to a direction. Rules are ordered: the first
// matching keyword decides, so "debited" must come before "credited" for
// bank messages like "debited from your a/c and credited to VPA".
type dirRule struct {
	word string
	dir  domain.Direction
}

// genericDirectionRules is the shared cascade every variant falls back to
// after its own overrides.
var genericDirectionRules = []dirRule{
	{"sip", domain.DirectionInvestment},
	{"mutual fund", domain.DirectionInvestment},
	{"invested", domain.DirectionInvestment},
	{"debited", domain.DirectionDebit},
	{"withdrawn", domain.DirectionDebit},
	{"credited", domain.DirectionCredit},
	{"deposited", domain.DirectionCredit},
	{"received", domain.DirectionCredit},
	{"sent", domain.DirectionDebit},
	{"paid", domain.DirectionDebit},
	{"payment", domain.DirectionDebit},
	{"transferred", domain.DirectionTransfer},
}

// variant is one registered source family: an origin match list plus its
// own pattern tables. Adding a bank or app is adding one constructor below
// and one registration entry in NewRegistry.
type variant struct {
	name    string
	origins []string // lowercase substrings matched against the origin tag

	amountRes   []*regexp.Regexp
	merchantRes []*regexp.Regexp

	// directionRules are app-specific overrides consulted before the
	// generic cascade. UPI path markers outrank both.
	directionRules []dirRule

	// originLabels refines SourceLabel per matched origin (bank senders).
	originLabels map[string]string

	// aggressive switches merchant cleaning to the digit-stripping
	// normalizer. Only the generic variant sets it.
	aggressive bool

	// catchAll marks the generic variant: CanHandle always true.
	catchAll bool
}

func (v *variant) SourceLabel() string { return v.name }

func (v *variant) CanHandle(origin string) bool {
	if v.catchAll {
		return true
	}
	lower := strings.ToLower(origin)
	for _, o := range v.origins {
		if strings.Contains(lower, o) {
			return true
		}
	}
	return false
}

func (v *variant) LooksLikeTransaction(body string) bool {
	return looksLikeTransaction(body)
}

func (v *variant) ExtractAmount(body string) (decimal.Decimal, bool) {
	return firstAmount(body, v.amountRes)
}

func (v *variant) ExtractDirection(body string) domain.Direction {
	if dir, ok := upiPathDirection(body); ok {
		if dir == "credit" {
			return domain.DirectionCredit
		}
		return domain.DirectionDebit
	}

	lower := strings.ToLower(body)
	for _, rule := range v.directionRules {
		if strings.Contains(lower, rule.word) {
			return rule.dir
		}
	}
	for _, rule := range genericDirectionRules {
		if strings.Contains(lower, rule.word) {
			return rule.dir
		}
	}
	return domain.DirectionUnknown
}

func (v *variant) ExtractMerchant(body string) (string, bool) {
	return firstMerchant(body, v.merchantRes, v.aggressive)
}

// labelFor returns the per-origin display label when the variant has one
// (bank senders), else the variant name.
func (v *variant) labelFor(origin string) string {
	lower := strings.ToLower(origin)
	for key, label := range v.originLabels {
		if strings.Contains(lower, key) {
			return label
		}
	}
	return v.name
}

func phonePeVariant() *variant {
	return &variant{
		name:    "PhonePe",
		origins: []string{"com.phonepe", "phonepe"},
		amountRes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bpaid\s+` + cur + amt),
			regexp.MustCompile(`(?i)\breceived\s+` + cur + amt),
			regexp.MustCompile(`(?i)\bpayment\s+of\s+` + cur + amt),
			regexp.MustCompile(cur + amt),
		},
		merchantRes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bpaid\s+(?:₹|rs\.?\s?|inr\s?)?[0-9,.]*\s*to\s+([^.,\n]+?)(?:\s+(?:on|via|using)\b|[.,\n]|$)`),
			regexp.MustCompile(`(?i)\breceived\s+(?:₹|rs\.?\s?|inr\s?)?[0-9,.]*\s*from\s+([^.,\n]+?)(?:\s+(?:on|via|using)\b|[.,\n]|$)`),
			regexp.MustCompile(`(?i)\bto\s+([^.,\n]+?)(?:\s+(?:on|via|using)\b|[.,\n]|$)`),
		},
		directionRules: []dirRule{
			{"received", domain.DirectionCredit},
			{"got", domain.DirectionCredit},
			{"sent", domain.DirectionDebit},
			{"paid", domain.DirectionDebit},
			{"payment", domain.DirectionDebit},
		},
	}
}

func googlePayVariant() *variant {
	return &variant{
		name:    "Google Pay",
		origins: []string{"com.google.android.apps.nbu.paisa.user", "gpay", "google pay"},
		amountRes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\byou\s+paid\s+` + cur + amt),
			regexp.MustCompile(`(?i)\byou\s+received\s+` + cur + amt),
			regexp.MustCompile(cur + amt + `\s+(?i:sent)`),
			regexp.MustCompile(cur + amt),
		},
		merchantRes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bpaid\s+(?:₹|rs\.?\s?|inr\s?)?[0-9,.]*\s*to\s+([^.,\n]+?)(?:\s+(?:on|via|using)\b|[.,\n]|$)`),
			regexp.MustCompile(`(?i)\bfrom\s+([^.,\n]+?)(?:\s+(?:on|via|using)\b|[.,\n]|$)`),
			regexp.MustCompile(`(?i)\bto\s+([^.,\n]+?)(?:\s+(?:on|via|using)\b|[.,\n]|$)`),
		},
		directionRules: []dirRule{
			{"received", domain.DirectionCredit},
			{"got", domain.DirectionCredit},
			{"sent", domain.DirectionDebit},
			{"paid", domain.DirectionDebit},
		},
	}
}

func paytmVariant() *variant {
	return &variant{
		name:    "Paytm",
		origins: []string{"net.one97.paytm", "paytm"},
		amountRes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bpaid\s+` + cur + amt),
			regexp.MustCompile(cur + amt + `\s+(?i:sent)`),
			regexp.MustCompile(`(?i)\breceived\s+` + cur + amt),
			regexp.MustCompile(cur + amt),
		},
		merchantRes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bpaid\s+(?:₹|rs\.?\s?|inr\s?)?[0-9,.]*\s*to\s+([^.,\n]+?)(?:\s+(?:on|via|using)\b|[.,\n]|$)`),
			regexp.MustCompile(`(?i)\bsent\s+to\s+([^.,\n]+?)(?:\s+(?:on|via|using)\b|[.,\n]|$)`),
			regexp.MustCompile(`(?i)\bfrom\s+([^.,\n]+?)(?:\s+(?:on|via|using)\b|[.,\n]|$)`),
		},
		directionRules: []dirRule{
			{"received", domain.DirectionCredit},
			{"sent", domain.DirectionDebit},
			{"paid", domain.DirectionDebit},
		},
	}
}

func bankSMSVariant() *variant {
	return &variant{
		name: "Bank",
		origins: []string{
			"hdfcbk", "hdfc", "icicib", "icici", "sbiinb", "sbipsg", "sbi",
			"axisbk", "axis", "kotakb", "kotak",
		},
		originLabels: map[string]string{
			"hdfc":  "HDFC Bank",
			"icici": "ICICI Bank",
			"sbi":   "State Bank of India",
			"axis":  "Axis Bank",
			"kotak": "Kotak Mahindra Bank",
		},
		amountRes: []*regexp.Regexp{
			regexp.MustCompile(cur + amt + `\s+(?i:(?:has\s+been\s+|was\s+|is\s+)?(?:debited|credited|withdrawn))`),
			regexp.MustCompile(`(?i)(?:debited|credited)\s+(?:by|with|for)\s+` + cur + amt),
			regexp.MustCompile(`(?i)\bpayment\s+of\s+` + cur + amt),
			regexp.MustCompile(cur + amt),
		},
		merchantRes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bInfo[:\s]+([^.\n]+?)(?:[.\n]|$)`),
			regexp.MustCompile(`(?i)\b(?:towards|to\s+VPA|at)\s+([^.,\n]+?)(?:\s+on\b|\s+via\b|[.,\n]|$)`),
			regexp.MustCompile(`(?i)\bto\s+([^.,\n]+?)(?:\s+on\b|\s+via\b|\s+ref\b|[.,\n]|$)`),
			regexp.MustCompile(`(?i)\bfrom\s+([^.,\n]+?)(?:\s+on\b|\s+via\b|[.,\n]|$)`),
		},
		// Bank wording is exactly the generic cascade; no overrides.
	}
}

func genericVariant() *variant {
	return &variant{
		name:     "Unknown",
		catchAll: true,
		amountRes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\bpaid\s+` + cur + amt),
			regexp.MustCompile(`(?i)\bpayment\s+of\s+` + cur + amt),
			regexp.MustCompile(cur + amt),
		},
		merchantRes: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:paid\s+to|to)\s+([^.,\n]+?)(?:\s+(?:on|via|using)\b|[.,\n]|$)`),
			regexp.MustCompile(`(?i)\b(?:received\s+from|from)\s+([^.,\n]+?)(?:\s+(?:on|via|using)\b|[.,\n]|$)`),
			regexp.MustCompile(`(?i)\bat\s+([^.,\n]+?)(?:\s+(?:on|via|using)\b|[.,\n]|$)`),
		},
		aggressive: true,
	}
}
