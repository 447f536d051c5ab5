package statement

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/indra7777/SpendWise-sub000/internal/domain"
)

const hdfcCSV = `Date,Narration,Chq/Ref No,Value Dt,Withdrawal Amt,Deposit Amt
22 Jan 2024,UPI/DR/RENT PAYMENT/Landlord/HDFC,,,500.00,
23 Jan 2024,UPI/CR/SALARY/ACME Corp/ICIC,,,,"85,000.00"
24 Jan 2024,NEFT/000123456/Electricity Board,,,1250.50,
`

func TestParseHDFCCSV(t *testing.T) {
	result, err := Parse([]byte(hdfcCSV), Options{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !result.Success {
		t.Fatal("Success = false")
	}
	if result.FormatLabel != "HDFC CSV" {
		t.Errorf("FormatLabel = %q, want HDFC CSV", result.FormatLabel)
	}
	if len(result.Transactions) != 3 {
		t.Fatalf("got %d transactions, want 3", len(result.Transactions))
	}

	rent := result.Transactions[0]
	if rent.Amount.String() != "500" {
		t.Errorf("rent Amount = %s, want 500", rent.Amount)
	}
	if rent.Direction != domain.DirectionDebit {
		t.Errorf("rent Direction = %s, want DEBIT", rent.Direction)
	}
	if rent.MerchantClean != "Landlord" {
		t.Errorf("rent MerchantClean = %q, want Landlord", rent.MerchantClean)
	}
	want := time.Date(2024, 1, 22, 0, 0, 0, 0, time.Local)
	if !rent.OccurredAt.Equal(want) {
		t.Errorf("rent OccurredAt = %v, want %v", rent.OccurredAt, want)
	}

	salary := result.Transactions[1]
	if salary.Direction != domain.DirectionCredit {
		t.Errorf("salary Direction = %s, want CREDIT", salary.Direction)
	}
	if salary.Amount.String() != "85000" {
		t.Errorf("salary Amount = %s, want 85000", salary.Amount)
	}
	if salary.MerchantClean != "ACME Corp" {
		t.Errorf("salary MerchantClean = %q, want ACME Corp", salary.MerchantClean)
	}

	neft := result.Transactions[2]
	if neft.MerchantClean != "Electricity Board" {
		t.Errorf("neft MerchantClean = %q, want Electricity Board", neft.MerchantClean)
	}
}

func TestParseAxisCSV(t *testing.T) {
	text := `Tran Date,Chq No,Particulars,Debit,Credit,Balance
22-01-2024,,POS PURCHASE BIG BAZAAR,1499.00,,50000.00
23-01-2024,,SALARY CREDIT,,85000.00,135000.00
`
	result, err := Parse([]byte(text), Options{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.FormatLabel != "Axis CSV" {
		t.Errorf("FormatLabel = %q, want Axis CSV", result.FormatLabel)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(result.Transactions))
	}
	if result.Transactions[0].Direction != domain.DirectionDebit {
		t.Errorf("row 1 Direction = %s, want DEBIT", result.Transactions[0].Direction)
	}
	if result.Transactions[1].Direction != domain.DirectionCredit {
		t.Errorf("row 2 Direction = %s, want CREDIT", result.Transactions[1].Direction)
	}
}

func TestParseGenericSignedAmountCSV(t *testing.T) {
	text := `Date,Details,Amount
22/01/2024,COFFEE HOUSE,-350.00
23/01/2024,REFUND STORE,125.00
`
	result, err := Parse([]byte(text), Options{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.FormatLabel != "Generic CSV" {
		t.Errorf("FormatLabel = %q, want Generic CSV", result.FormatLabel)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(result.Transactions))
	}

	spend := result.Transactions[0]
	if spend.Direction != domain.DirectionDebit || spend.Amount.String() != "350" {
		t.Errorf("signed negative row = %s/%s, want DEBIT/350", spend.Direction, spend.Amount)
	}
	refund := result.Transactions[1]
	if refund.Direction != domain.DirectionCredit || refund.Amount.String() != "125" {
		t.Errorf("signed positive row = %s/%s, want CREDIT/125", refund.Direction, refund.Amount)
	}
}

func TestParseRowErrorIsolation(t *testing.T) {
	text := `Date,Narration,Chq/Ref No,Value Dt,Withdrawal Amt,Deposit Amt
22 Jan 2024,GOOD ROW,,,100.00,
not a date,BAD DATE ROW,,,100.00,
23 Jan 2024,NO AMOUNT ROW,,,,
24 Jan 2024,ANOTHER GOOD ROW,,,200.00,
`
	result, err := Parse([]byte(text), Options{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2 (bad rows isolated)", len(result.Transactions))
	}
	// Unparsable date and missing amount are silent rejections, counted
	// but not itemized.
	if result.SkippedRows != 2 {
		t.Errorf("SkippedRows = %d, want 2", result.SkippedRows)
	}
}

func TestParseErrorListCapped(t *testing.T) {
	r := &Result{}
	for i := 0; i < 10; i++ {
		r.addRowError(i+1, errors.New("boom"))
	}
	if len(r.Errors) != maxItemizedErrors {
		t.Errorf("itemized %d errors, want %d", len(r.Errors), maxItemizedErrors)
	}
	if r.ErrorCount != 10 {
		t.Errorf("ErrorCount = %d, want 10", r.ErrorCount)
	}
}

func TestParseUnrecognizedFormat(t *testing.T) {
	_, err := Parse([]byte("hello world\nthis is not a statement\n"), Options{})
	if !errors.Is(err, ErrUnrecognizedFormat) {
		t.Fatalf("error = %v, want ErrUnrecognizedFormat", err)
	}
	if !strings.Contains(err.Error(), "Date, Description, Amount") {
		t.Errorf("error %q should name the expected minimal schema", err)
	}
}

func TestParseMoney(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"1,234.56", "1234.56", false},
		{"₹500", "500", false},
		{"85,000.00 Cr", "85000", false},
		{"(250.00)", "-250", false},
		{"INR 99", "99", false},
		{"", "", true},
		{"abc", "", true},
	}
	for _, tt := range tests {
		got, err := parseMoney(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseMoney(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got.String() != tt.want {
			t.Errorf("parseMoney(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
