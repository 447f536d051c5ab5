package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/indra7777/SpendWise-sub000/internal/dateparse"
	"github.com/indra7777/SpendWise-sub000/internal/domain"
	"github.com/indra7777/SpendWise-sub000/internal/merchant"
)

// csvVariant is one bank's CSV shape: the header keyword set that claims a
// file, per-concern column keywords, and the bank's date layouts. Adding a
// bank is adding one entry to csvVariants.
type csvVariant struct {
	label string

	// requiredKeys must all appear somewhere in the header line.
	requiredKeys []string
	// anyKeys, when non-empty, requires at least one additional hit
	// (e.g. a withdrawal or a deposit column).
	anyKeys []string

	dateCols   []string
	descCols   []string
	debitCols  []string
	creditCols []string
	amountCols []string // single signed-amount column
	refCols    []string

	layouts []string
}

// csvVariants is the priority-ordered registry, most specific header sets
// first, generic last.
var csvVariants = []*csvVariant{
	{
		label:        "SBI CSV",
		requiredKeys: []string{"txn date", "value date", "description"},
		dateCols:     []string{"txn date"},
		descCols:     []string{"description"},
		debitCols:    []string{"debit"},
		creditCols:   []string{"credit"},
		refCols:      []string{"ref no", "cheque"},
		layouts:      dateparse.SBILayouts,
	},
	{
		label:        "HDFC CSV",
		requiredKeys: []string{"date", "narration"},
		anyKeys:      []string{"withdrawal", "deposit"},
		dateCols:     []string{"date"},
		descCols:     []string{"narration"},
		debitCols:    []string{"withdrawal"},
		creditCols:   []string{"deposit"},
		refCols:      []string{"ref", "chq"},
		layouts:      dateparse.HDFCLayouts,
	},
	{
		label:        "ICICI CSV",
		requiredKeys: []string{"transaction date", "transaction remarks"},
		dateCols:     []string{"transaction date"},
		descCols:     []string{"transaction remarks"},
		debitCols:    []string{"withdrawal"},
		creditCols:   []string{"deposit"},
		amountCols:   []string{"amount"},
		refCols:      []string{"cheque", "ref"},
		layouts:      dateparse.ICICILayouts,
	},
	{
		label:        "Axis CSV",
		requiredKeys: []string{"tran date", "particulars"},
		dateCols:     []string{"tran date"},
		descCols:     []string{"particulars"},
		debitCols:    []string{"debit"},
		creditCols:   []string{"credit"},
		amountCols:   []string{"amount"},
		refCols:      []string{"chq", "ref"},
		layouts:      dateparse.AxisLayouts,
	},
	{
		// Generic fallback: any export with a date column plus either a
		// debit/credit pair or one signed amount column.
		label:        "Generic CSV",
		requiredKeys: []string{"date"},
		dateCols:     []string{"date"},
		descCols:     []string{"description", "narration", "particulars", "remarks", "details"},
		debitCols:    []string{"debit", "withdrawal"},
		creditCols:   []string{"credit", "deposit"},
		amountCols:   []string{"amount"},
		refCols:      []string{"ref", "cheque", "chq"},
		layouts:      dateparse.GenericLayouts,
	},
}

// detectCSVVariant scans the first lines for a header row claimed by a
// registered variant, most specific first.
func detectCSVVariant(text string) *csvVariant {
	for _, line := range headLines(text, 10) {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, ",") {
			continue
		}
		for _, v := range csvVariants {
			if v.matchHeader(lower) {
				return v
			}
		}
	}
	return nil
}

func (v *csvVariant) matchHeader(lowerHeader string) bool {
	for _, key := range v.requiredKeys {
		if !strings.Contains(lowerHeader, key) {
			return false
		}
	}
	if len(v.anyKeys) > 0 {
		hit := false
		for _, key := range v.anyKeys {
			if strings.Contains(lowerHeader, key) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	// The generic variant additionally needs a way to read an amount.
	if len(v.debitCols) > 0 || len(v.creditCols) > 0 || len(v.amountCols) > 0 {
		for _, key := range append(append(append([]string{}, v.debitCols...), v.creditCols...), v.amountCols...) {
			if strings.Contains(lowerHeader, key) {
				return true
			}
		}
		return false
	}
	return true
}

// columns are the discovered indices for one parsed header.
type columns struct {
	date, desc, debit, credit, amount, ref int
}

func findCol(cells []string, keys []string) int {
	for _, key := range keys {
		for i, cell := range cells {
			if strings.Contains(strings.ToLower(strings.TrimSpace(cell)), key) {
				return i
			}
		}
	}
	return -1
}

func (v *csvVariant) discoverColumns(header []string) columns {
	return columns{
		date:   findCol(header, v.dateCols),
		desc:   findCol(header, v.descCols),
		debit:  findCol(header, v.debitCols),
		credit: findCol(header, v.creditCols),
		amount: findCol(header, v.amountCols),
		ref:    findCol(header, v.refCols),
	}
}

func (v *csvVariant) parse(text string) (*Result, error) {
	result := &Result{FormatLabel: v.label}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var cols columns
	headerSeen := false
	rowNo := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNo++
		if err != nil {
			if headerSeen {
				result.addRowError(rowNo, err)
			}
			continue
		}

		if !headerSeen {
			if v.matchHeader(strings.ToLower(strings.Join(record, ","))) {
				cols = v.discoverColumns(record)
				headerSeen = true
			}
			continue
		}

		tx, err := v.parseRow(record, cols)
		if err != nil {
			if err == errRowEmpty {
				continue
			}
			if err == errFieldMissing {
				result.SkippedRows++
				continue
			}
			result.addRowError(rowNo, err)
			continue
		}
		result.ParsedCount++
		result.Transactions = append(result.Transactions, tx)
	}

	if !headerSeen {
		return nil, fmt.Errorf("%w: expected columns like Date, Description, Amount", ErrUnrecognizedFormat)
	}
	result.Success = true
	return result, nil
}

var (
	errRowEmpty     = fmt.Errorf("row is empty")
	errFieldMissing = fmt.Errorf("required field missing")
)

func cell(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func (v *csvVariant) parseRow(record []string, cols columns) (*domain.ExtractedTransaction, error) {
	blank := true
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			blank = false
			break
		}
	}
	if blank {
		return nil, errRowEmpty
	}

	rawDate := cell(record, cols.date)
	if rawDate == "" {
		return nil, errFieldMissing
	}
	occurredAt, err := dateparse.Resolve(rawDate, v.layouts)
	if err != nil {
		// Totals and footer lines land here; count, don't itemize.
		return nil, errFieldMissing
	}

	amount, direction, err := amountAndDirection(
		cell(record, cols.debit), cell(record, cols.credit), cell(record, cols.amount))
	if err != nil {
		return nil, err
	}

	desc := cell(record, cols.desc)
	merchantRaw, dirHint := merchantFromDescription(desc)
	if direction == domain.DirectionUnknown && dirHint != domain.DirectionUnknown {
		direction = dirHint
	}

	tx := &domain.ExtractedTransaction{
		Amount:        amount,
		Direction:     direction,
		MerchantRaw:   desc,
		MerchantClean: merchant.DisplayName(merchant.Normalize(merchantRaw)),
		OccurredAt:    occurredAt,
		Currency:      "INR",
		Reference:     cell(record, cols.ref),
		SourceLabel:   strings.TrimSuffix(v.label, " CSV"),
	}
	if !tx.Valid() {
		return nil, errFieldMissing
	}
	return tx, nil
}

// amountAndDirection resolves the three possible amount encodings: separate
// debit/credit columns, or one signed amount column (sign or a Dr/Cr suffix
// carrying direction).
func amountAndDirection(debit, credit, signed string) (decimal.Decimal, domain.Direction, error) {
	if debit != "" {
		d, err := parseMoney(debit)
		if err != nil {
			return decimal.Decimal{}, domain.DirectionUnknown, err
		}
		if d.IsPositive() {
			return d, domain.DirectionDebit, nil
		}
	}
	if credit != "" {
		d, err := parseMoney(credit)
		if err != nil {
			return decimal.Decimal{}, domain.DirectionUnknown, err
		}
		if d.IsPositive() {
			return d, domain.DirectionCredit, nil
		}
	}
	if signed != "" {
		lower := strings.ToLower(signed)
		d, err := parseMoney(signed)
		if err != nil {
			return decimal.Decimal{}, domain.DirectionUnknown, err
		}
		switch {
		case strings.HasSuffix(lower, "cr"), strings.HasSuffix(lower, "cr."):
			return d.Abs(), domain.DirectionCredit, nil
		case strings.HasSuffix(lower, "dr"), strings.HasSuffix(lower, "dr."):
			return d.Abs(), domain.DirectionDebit, nil
		case d.IsNegative():
			return d.Abs(), domain.DirectionDebit, nil
		case d.IsPositive():
			return d, domain.DirectionCredit, nil
		}
	}
	return decimal.Decimal{}, domain.DirectionUnknown, errFieldMissing
}

// parseMoney parses one money cell: currency markers, thousands commas and
// a possible trailing Dr/Cr tag are stripped before the numeric parse.
func parseMoney(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "₹")
	lower := strings.ToLower(clean)
	for _, suffix := range []string{"dr.", "cr.", "dr", "cr"} {
		if strings.HasSuffix(lower, suffix) {
			clean = strings.TrimSpace(clean[:len(clean)-len(suffix)])
			break
		}
	}
	clean = strings.ReplaceAll(clean, ",", "")
	clean = strings.TrimSpace(strings.TrimPrefix(clean, "INR"))
	if clean == "" {
		return decimal.Decimal{}, errFieldMissing
	}
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		clean = "-" + strings.Trim(clean, "()")
	}
	d, err := decimal.NewFromString(clean)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("bad amount %q", s)
	}
	return d, nil
}

// merchantFromDescription pulls a merchant candidate out of a statement
// description. Structured rail descriptions (UPI/DR/<note>/<party>/<bank>)
// yield the party slot and a direction hint; free text is returned as is
// for the normalizer to clean.
func merchantFromDescription(desc string) (string, domain.Direction) {
	dir := domain.DirectionUnknown
	upper := strings.ToUpper(desc)
	switch {
	case strings.Contains(upper, "/DR/"), strings.Contains(upper, "-DR-"):
		dir = domain.DirectionDebit
	case strings.Contains(upper, "/CR/"), strings.Contains(upper, "-CR-"):
		dir = domain.DirectionCredit
	}

	for _, rail := range []string{"UPI/", "IMPS/", "NEFT/"} {
		if !strings.HasPrefix(upper, rail) {
			continue
		}
		parts := strings.Split(desc, "/")
		// Typical shape: RAIL/DR|CR|ref/note/party/bank. The party slot is
		// the fourth field when present; otherwise the last field with
		// letters in it.
		if len(parts) >= 4 && hasLetters(parts[3]) {
			return parts[3], dir
		}
		for i := len(parts) - 1; i >= 1; i-- {
			if hasLetters(parts[i]) && !isRailMarker(parts[i]) {
				return parts[i], dir
			}
		}
	}
	return desc, dir
}

func hasLetters(s string) bool {
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			return true
		}
	}
	return false
}

func isRailMarker(s string) bool {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DR", "CR", "UPI", "IMPS", "NEFT":
		return true
	}
	return false
}
