package statement

import (
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/indra7777/SpendWise-sub000/internal/domain"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("CoordinatesToCellName: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return buf.Bytes()
}

func TestParseXLSXReusesCSVVariants(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Date", "Narration", "Chq/Ref No", "Value Dt", "Withdrawal Amt", "Deposit Amt"},
		{"22 Jan 2024", "UPI/DR/RENT PAYMENT/Landlord/HDFC", "", "", "500.00", ""},
		{"23 Jan 2024", "UPI/CR/SALARY/ACME Corp/ICIC", "", "", "", "85000.00"},
	})

	if !isXLSX(data) {
		t.Fatal("workbook bytes not detected as XLSX")
	}

	result, err := Parse(data, Options{})
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if result.FormatLabel != "HDFC XLSX" {
		t.Errorf("FormatLabel = %q, want HDFC XLSX", result.FormatLabel)
	}
	if len(result.Transactions) != 2 {
		t.Fatalf("got %d transactions, want 2", len(result.Transactions))
	}

	rent := result.Transactions[0]
	if rent.Amount.String() != "500" || rent.Direction != domain.DirectionDebit {
		t.Errorf("rent = %s/%s, want 500/DEBIT", rent.Amount, rent.Direction)
	}
	if rent.MerchantClean != "Landlord" {
		t.Errorf("rent MerchantClean = %q, want Landlord", rent.MerchantClean)
	}

	salary := result.Transactions[1]
	if salary.Amount.String() != "85000" || salary.Direction != domain.DirectionCredit {
		t.Errorf("salary = %s/%s, want 85000/CREDIT", salary.Amount, salary.Direction)
	}
}

func TestParseXLSXUnrecognizedHeader(t *testing.T) {
	data := buildWorkbook(t, [][]interface{}{
		{"Colour", "Animal", "Count"},
		{"blue", "heron", "2"},
	})

	_, err := Parse(data, Options{})
	if err == nil {
		t.Fatal("expected an error for a workbook with no statement columns")
	}
}
