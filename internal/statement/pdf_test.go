package statement

import (
	"testing"
	"time"

	"github.com/indra7777/SpendWise-sub000/internal/domain"
)

const hdfcPDFText = `HDFC Bank Ltd.
Statement of account
Mr A CUSTOMER
Date Narration Chq/Ref Withdrawal Deposit Balance
22/01/2024 UPI/DR/400123456789/Landlord
RENT JANUARY 500.00 49,500.00
23/01/2024 NEFT CR ACME CORP SALARY 85,000.00 1,34,500.00
`

func TestParseHDFCPDFLineAnchored(t *testing.T) {
	result, err := Parse([]byte(hdfcPDFText), Options{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.FormatLabel != "HDFC PDF" {
		t.Errorf("FormatLabel = %q, want HDFC PDF", result.FormatLabel)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(result.Transactions))
	}

	rent := result.Transactions[0]
	if rent.Amount.String() != "500" {
		t.Errorf("rent Amount = %s, want 500", rent.Amount)
	}
	if rent.Direction != domain.DirectionDebit {
		t.Errorf("rent Direction = %s, want DEBIT", rent.Direction)
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
}

// Paytm's extracted text wraps descriptions across source lines, so the
// parser must flatten the document and split on date anchors instead of
// trusting line breaks.
const paytmPDFText = `Paytm Payments Bank
Account Statement
22 Jan 2024 10:30 AM Paid to Swiggy
Order #8812 money sent successfully 499.00 12,501.00 23
Jan 2024 09:15 AM Received from Rahul
Sharma 1,200.00 13,701.00
`

func TestParsePaytmPDFBlockBetweenAnchors(t *testing.T) {
	result, err := Parse([]byte(paytmPDFText), Options{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.FormatLabel != "Paytm PDF" {
		t.Errorf("FormatLabel = %q, want Paytm PDF", result.FormatLabel)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(result.Transactions))
	}

	swiggy := result.Transactions[0]
	if swiggy.Amount.String() != "499" {
		t.Errorf("swiggy Amount = %s, want 499", swiggy.Amount)
	}
	if swiggy.Direction != domain.DirectionDebit {
		t.Errorf("swiggy Direction = %s, want DEBIT", swiggy.Direction)
	}
	want := time.Date(2024, 1, 22, 10, 30, 0, 0, time.Local)
	if !swiggy.OccurredAt.Equal(want) {
		t.Errorf("swiggy OccurredAt = %v, want %v", swiggy.OccurredAt, want)
	}

	rahul := result.Transactions[1]
	if rahul.Direction != domain.DirectionCredit {
		t.Errorf("rahul Direction = %s, want CREDIT", rahul.Direction)
	}
	if rahul.Amount.String() != "1200" {
		t.Errorf("rahul Amount = %s, want 1200", rahul.Amount)
	}
}

func TestBlocksBetweenAnchors(t *testing.T) {
	v := pdfVariants[2] // Paytm
	blocks := blocksBetweenAnchors("junk 22 Jan 2024 first txn 100.00 23 Jan 2024 second txn 200.00", v.dateRe)
	if len(blocks) != 2 {
		t.Fatalf("got %d blocks, want 2", len(blocks))
	}
	if blocks[0] != "22 Jan 2024 first txn 100.00" {
		t.Errorf("block[0] = %q", blocks[0])
	}
	if blocks[1] != "23 Jan 2024 second txn 200.00" {
		t.Errorf("block[1] = %q", blocks[1])
	}
}
