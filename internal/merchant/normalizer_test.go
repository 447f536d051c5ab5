package merchant

import (
	"strings"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain name untouched", "Swiggy", "Swiggy"},
		{"upi rail prefix stripped", "UPI/400123456789/Landlord", "Landlord"},
		{"imps rail prefix stripped", "IMPS/512210004321/Rahul Sharma", "Rahul Sharma"},
		{"neft rail prefix stripped", "NEFT/000123456/ACME Corp", "ACME Corp"},
		{"whitespace collapsed", "  Big   Bazaar  ", "Big Bazaar"},
		{"blank falls back", "   ", "Unknown Merchant"},
		{"separator residue trimmed", "UPI/987654321/", "Unknown Merchant"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.raw); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestNormalizeTruncates(t *testing.T) {
	raw := strings.Repeat("VERYLONGMERCHANT ", 10)
	got := Normalize(raw)
	if len([]rune(got)) > MaxLen {
		t.Errorf("Normalize left %d runes, want <= %d", len([]rune(got)), MaxLen)
	}
}

// A name whose 50th rune lands on a separator must not keep the separator:
// the edge trim runs again after the cut, so the result is final.
func TestNormalizeTruncationLeavesNoSeparatorResidue(t *testing.T) {
	raw := strings.Repeat("x", 49) + "- trailing words"
	got := Normalize(raw)
	if strings.ContainsAny(got[len(got)-1:], "-/: ") {
		t.Errorf("Normalize(%q) = %q, ends in separator residue", raw, got)
	}
	if got != strings.Repeat("x", 49) {
		t.Errorf("Normalize(%q) = %q, want the 49 x runes", raw, got)
	}
}

func TestNormalizeAggressiveStripsDigitRuns(t *testing.T) {
	got := NormalizeAggressive("a/c 9876543210 Rahul")
	if strings.Contains(got, "9876543210") {
		t.Errorf("NormalizeAggressive kept a 10-digit run: %q", got)
	}
	// Short numbers are legitimate parts of names (e.g. "7 Eleven").
	if got := NormalizeAggressive("7 Eleven"); got != "7 Eleven" {
		t.Errorf("NormalizeAggressive(%q) = %q, want unchanged", "7 Eleven", got)
	}
}

// Normalizing an already-normalized name must be a no-op, including when
// truncation cuts the name exactly at a separator.
func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Swiggy",
		"UPI/400123456789/Landlord",
		"  lots   of   space  ",
		strings.Repeat("x", 80),
		"",
		"a/c 9876543210 Rahul",
		strings.Repeat("x", 49) + "- trailing words",
		strings.Repeat("x", 48) + " - more trailing words",
	}
	for _, raw := range inputs {
		once := Normalize(raw)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", raw, once, twice)
		}
		onceAgg := NormalizeAggressive(raw)
		if twiceAgg := NormalizeAggressive(onceAgg); twiceAgg != onceAgg {
			t.Errorf("NormalizeAggressive not idempotent for %q: %q != %q", raw, onceAgg, twiceAgg)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"phonepe", "PhonePe"},
		{"PHONEPE", "PhonePe"},
		{"RELIANCE RETAIL", "Reliance Retail"},
		{"Swiggy", "Swiggy"},
		{"KFC", "KFC"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.in); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
