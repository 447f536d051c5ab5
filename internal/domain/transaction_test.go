package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestSignedAmount(t *testing.T) {
	amount := decimal.NewFromFloat(499.50)

	tests := []struct {
		name      string
		direction Direction
		want      string
	}{
		{"debit is negative", DirectionDebit, "-499.5"},
		{"credit is positive", DirectionCredit, "499.5"},
		{"transfer defaults to outgoing", DirectionTransfer, "-499.5"},
		{"investment defaults to outgoing", DirectionInvestment, "-499.5"},
		{"unknown defaults to outgoing", DirectionUnknown, "-499.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &ExtractedTransaction{Amount: amount, Direction: tt.direction}
			if got := tx.SignedAmount().String(); got != tt.want {
				t.Errorf("SignedAmount() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestValid(t *testing.T) {
	occurred := time.Date(2024, 1, 22, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name   string
		amount decimal.Decimal
		when   time.Time
		want   bool
	}{
		{"positive amount and real instant", decimal.NewFromInt(100), occurred, true},
		{"zero amount rejected", decimal.Zero, occurred, false},
		{"negative amount rejected", decimal.NewFromInt(-100), occurred, false},
		{"zero instant rejected", decimal.NewFromInt(100), time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := &ExtractedTransaction{Amount: tt.amount, OccurredAt: tt.when}
			if got := tx.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		if !ValidCategory(c) {
			t.Errorf("ValidCategory(%s) = false, want true", c)
		}
	}
	if ValidCategory(Category("LOTTERY")) {
		t.Error("ValidCategory accepted a category outside the closed set")
	}
}
