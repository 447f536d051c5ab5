package pipeline

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/indra7777/SpendWise-sub000/internal/categorize"
	"github.com/indra7777/SpendWise-sub000/internal/dedup"
	"github.com/indra7777/SpendWise-sub000/internal/domain"
	"github.com/indra7777/SpendWise-sub000/internal/extract"
	"github.com/indra7777/SpendWise-sub000/internal/store"
)

const hdfcCSV = `Date,Narration,Chq/Ref No,Value Dt,Withdrawal Amt,Deposit Amt
22 Jan 2024,UPI/DR/RENT PAYMENT/Landlord/HDFC,,,500.00,
23 Jan 2024,UPI/CR/SALARY/ACME Corp/ICIC,,,,"85,000.00"
24 Jan 2024,NEFT/000123456/Electricity Board,,,1250.50,
`

func newTestPipeline(mem *store.Memory) *Pipeline {
	log := zerolog.New(io.Discard)
	cascade := categorize.NewCascade(categorize.NewRules(), nil, nil, 0.85, 0.70, log)
	engine := dedup.NewEngine(mem, 60*time.Second, 0.01)
	return New(extract.NewRegistry(), dedup.NewRecentCache(time.Minute), engine, cascade, mem, categorize.Capabilities{}, log)
}

func TestProcessNotification(t *testing.T) {
	mem := store.NewMemory()
	p := newTestPipeline(mem)

	observed := time.Date(2024, 1, 22, 13, 5, 0, 0, time.Local)
	unit := domain.RawUnit{
		Body:       "Paid ₹499 to Swiggy",
		Origin:     "com.phonepe.app",
		ObservedAt: observed,
	}

	tx, reason, err := p.ProcessNotification(context.Background(), unit)
	if err != nil {
		t.Fatalf("ProcessNotification: %v", err)
	}
	if reason != DropNone {
		t.Fatalf("DropReason = %q, want none", reason)
	}
	if tx.ID == "" {
		t.Error("stored transaction has no ID")
	}
	if tx.Amount.String() != "499" {
		t.Errorf("Amount = %s, want 499", tx.Amount)
	}
	if tx.Direction != domain.DirectionDebit {
		t.Errorf("Direction = %s, want DEBIT", tx.Direction)
	}
	if tx.MerchantClean != "Swiggy" {
		t.Errorf("MerchantClean = %q, want Swiggy", tx.MerchantClean)
	}
	if tx.Category != domain.CategoryFood {
		t.Errorf("Category = %s, want FOOD", tx.Category)
	}
	if tx.CategorySource != domain.SourceRule {
		t.Errorf("CategorySource = %s, want RULE", tx.CategorySource)
	}
	if mem.Len() != 1 {
		t.Errorf("store has %d transactions, want 1", mem.Len())
	}
}

func TestProcessNotificationRejectsNoise(t *testing.T) {
	mem := store.NewMemory()
	p := newTestPipeline(mem)

	unit := domain.RawUnit{
		Body:       "Your OTP for login is 482910, valid for 10 minutes",
		Origin:     "com.phonepe.app",
		ObservedAt: time.Now(),
	}

	tx, reason, err := p.ProcessNotification(context.Background(), unit)
	if err != nil {
		t.Fatalf("ProcessNotification: %v", err)
	}
	if tx != nil {
		t.Fatal("OTP text produced a transaction")
	}
	if reason != DropNotTransaction {
		t.Errorf("DropReason = %q, want %q", reason, DropNotTransaction)
	}
	if mem.Len() != 0 {
		t.Error("discarded unit left data in the store")
	}
}

func TestProcessNotificationRedelivery(t *testing.T) {
	mem := store.NewMemory()
	p := newTestPipeline(mem)

	unit := domain.RawUnit{
		Body:       "Paid ₹499 to Swiggy",
		Origin:     "com.phonepe.app",
		ObservedAt: time.Date(2024, 1, 22, 13, 5, 0, 0, time.Local),
	}

	if _, reason, err := p.ProcessNotification(context.Background(), unit); err != nil || reason != DropNone {
		t.Fatalf("first delivery: reason=%q err=%v", reason, err)
	}

	tx, reason, err := p.ProcessNotification(context.Background(), unit)
	if err != nil {
		t.Fatalf("second delivery: %v", err)
	}
	if tx != nil || reason != DropDuplicateDelivery {
		t.Errorf("second delivery: tx=%v reason=%q, want dropped as redelivery", tx, reason)
	}
	if mem.Len() != 1 {
		t.Errorf("store has %d transactions, want 1", mem.Len())
	}
}

func TestImportStatement(t *testing.T) {
	mem := store.NewMemory()
	p := newTestPipeline(mem)

	summary, err := p.ImportStatement(context.Background(), []byte(hdfcCSV), ImportOptions{})
	if err != nil {
		t.Fatalf("ImportStatement: %v", err)
	}
	if summary.FormatLabel != "HDFC CSV" {
		t.Errorf("FormatLabel = %q, want HDFC CSV", summary.FormatLabel)
	}
	if summary.Parsed != 3 || summary.Imported != 3 {
		t.Errorf("Parsed/Imported = %d/%d, want 3/3", summary.Parsed, summary.Imported)
	}
	if summary.SkippedDuplicates != 0 || summary.Failed != 0 {
		t.Errorf("Skipped/Failed = %d/%d, want 0/0", summary.SkippedDuplicates, summary.Failed)
	}
	if mem.Len() != 3 {
		t.Errorf("store has %d transactions, want 3", mem.Len())
	}
}

func TestImportStatementSkipsDuplicatesOnReimport(t *testing.T) {
	mem := store.NewMemory()
	p := newTestPipeline(mem)

	if _, err := p.ImportStatement(context.Background(), []byte(hdfcCSV), ImportOptions{}); err != nil {
		t.Fatalf("first import: %v", err)
	}

	summary, err := p.ImportStatement(context.Background(), []byte(hdfcCSV), ImportOptions{})
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if summary.SkippedDuplicates != 3 {
		t.Errorf("SkippedDuplicates = %d, want 3", summary.SkippedDuplicates)
	}
	if summary.Imported != 0 {
		t.Errorf("Imported = %d, want 0", summary.Imported)
	}
	if mem.Len() != 3 {
		t.Errorf("store has %d transactions after re-import, want 3", mem.Len())
	}
}

func TestImportStatementProgressMonotonic(t *testing.T) {
	mem := store.NewMemory()
	p := newTestPipeline(mem)

	var calls []int
	opts := ImportOptions{Progress: func(done, total int) {
		if total != 3 {
			t.Errorf("total = %d, want 3", total)
		}
		calls = append(calls, done)
	}}

	if _, err := p.ImportStatement(context.Background(), []byte(hdfcCSV), opts); err != nil {
		t.Fatalf("ImportStatement: %v", err)
	}
	if len(calls) != 3 {
		t.Fatalf("progress called %d times, want 3", len(calls))
	}
	for i, done := range calls {
		if done != i+1 {
			t.Errorf("progress call %d reported done=%d, want %d", i, done, i+1)
		}
	}
}

func TestImportStatementAbortKeepsPartialProgress(t *testing.T) {
	mem := store.NewMemory()
	p := newTestPipeline(mem)

	ctx, cancel := context.WithCancel(context.Background())
	opts := ImportOptions{Progress: func(done, total int) {
		if done == 1 {
			cancel()
		}
	}}

	summary, err := p.ImportStatement(ctx, []byte(hdfcCSV), opts)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if summary.Imported != 1 {
		t.Errorf("Imported = %d, want 1 before the abort", summary.Imported)
	}
	if mem.Len() != 1 {
		t.Errorf("store has %d transactions, want the 1 inserted before the abort", mem.Len())
	}
}

func TestImportStatementUnrecognizedFormat(t *testing.T) {
	mem := store.NewMemory()
	p := newTestPipeline(mem)

	_, err := p.ImportStatement(context.Background(), []byte("just some prose, not a statement"), ImportOptions{})
	if err == nil {
		t.Fatal("expected an error for unrecognized input")
	}
	if mem.Len() != 0 {
		t.Error("unrecognized input left data in the store")
	}
}
