package statement

import (
	"regexp"
	"strings"

	"github.com/indra7777/SpendWise-sub000/internal/dateparse"
	"github.com/indra7777/SpendWise-sub000/internal/domain"
	"github.com/indra7777/SpendWise-sub000/internal/merchant"
)

// pdfVariant is one bank's PDF-text shape. Identification is by bank-name
// landmarks in the leading lines. Line-aligned providers use a date anchor
// at line start plus the following few lines as one transaction; providers
// whose extracted text is wrapped paragraphs (flatten=true) are reduced to
// one string and split on every date match instead — the text between two
// consecutive anchors is one transaction block.
type pdfVariant struct {
	label     string
	landmarks []string // lowercase substrings
	dateRe    *regexp.Regexp
	layouts   []string
	flatten   bool

	// maxBlockLines bounds how many lines after the anchor belong to a
	// transaction in line-aligned mode.
	maxBlockLines int
}

var pdfVariants = []*pdfVariant{
	{
		label:         "HDFC PDF",
		landmarks:     []string{"hdfc bank"},
		dateRe:        regexp.MustCompile(`\b\d{2}/\d{2}/\d{2,4}\b`),
		layouts:       []string{"02/01/06", "02/01/2006"},
		maxBlockLines: 3,
	},
	{
		label:         "SBI PDF",
		landmarks:     []string{"state bank of india"},
		dateRe:        regexp.MustCompile(`\b\d{1,2} [A-Za-z]{3} \d{4}\b`),
		layouts:       dateparse.SBILayouts,
		maxBlockLines: 3,
	},
	{
		// Paytm's extracted text is not line-aligned: descriptions wrap
		// and run into the next row, so this variant flattens the whole
		// document and anchors on dates.
		label:     "Paytm PDF",
		landmarks: []string{"paytm payments bank", "paytm"},
		dateRe:    regexp.MustCompile(`\b\d{1,2} [A-Za-z]{3} \d{4}(?: \d{1,2}:\d{2} (?:AM|PM))?\b`),
		layouts:   dateparse.PaytmLayouts,
		flatten:   true,
	},
}

// detectPDFVariant identifies the source bank by scanning the leading lines
// for landmarks.
func detectPDFVariant(text string) *pdfVariant {
	head := strings.ToLower(strings.Join(headLines(text, detectLines), "\n"))
	for _, v := range pdfVariants {
		for _, mark := range v.landmarks {
			if strings.Contains(head, mark) {
				return v
			}
		}
	}
	return nil
}

func (v *pdfVariant) parse(text string) (*Result, error) {
	result := &Result{FormatLabel: v.label}

	var blocks []string
	if v.flatten {
		blocks = blocksBetweenAnchors(text, v.dateRe)
	} else {
		blocks = lineAnchoredBlocks(text, v.dateRe, v.maxBlockLines)
	}

	for i, block := range blocks {
		tx, err := v.parseBlock(block)
		if err != nil {
			if err == errFieldMissing {
				result.SkippedRows++
				continue
			}
			result.addRowError(i+1, err)
			continue
		}
		result.ParsedCount++
		result.Transactions = append(result.Transactions, tx)
	}

	result.Success = true
	return result, nil
}

// lineAnchoredBlocks scans line by line: a line starting with a date opens
// a block that also takes the following lines (up to maxLines total) until
// the next anchor.
func lineAnchoredBlocks(text string, dateRe *regexp.Regexp, maxLines int) []string {
	var blocks []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			blocks = append(blocks, strings.Join(current, " "))
			current = nil
		}
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		loc := dateRe.FindStringIndex(line)
		anchored := loc != nil && loc[0] == 0
		switch {
		case anchored:
			flush()
			current = append(current, line)
		case len(current) > 0 && len(current) < maxLines:
			current = append(current, line)
		case len(current) >= maxLines:
			flush()
		}
	}
	flush()
	return blocks
}

// blocksBetweenAnchors flattens the document to one string, finds all date
// matches and treats the span from each date to the next as one block. This
// is the required technique whenever source line breaks do not align with
// transaction boundaries.
func blocksBetweenAnchors(text string, dateRe *regexp.Regexp) []string {
	flat := strings.Join(strings.Fields(text), " ")
	locs := dateRe.FindAllStringIndex(flat, -1)
	if len(locs) == 0 {
		return nil
	}

	blocks := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(flat)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		blocks = append(blocks, strings.TrimSpace(flat[loc[0]:end]))
	}
	return blocks
}

// moneyTokenRe matches money-shaped tokens in a block. Statement lines
// usually end "... <amount> <running balance>"; the balance is the last
// token, the amount the one before it.
var moneyTokenRe = regexp.MustCompile(`\d[\d,]*\.\d{2}\b`)

func (v *pdfVariant) parseBlock(block string) (*domain.ExtractedTransaction, error) {
	dateToken := v.dateRe.FindString(block)
	if dateToken == "" {
		return nil, errFieldMissing
	}
	occurredAt, err := dateparse.Resolve(dateToken, v.layouts)
	if err != nil {
		return nil, errFieldMissing
	}

	moneys := moneyTokenRe.FindAllString(block, -1)
	if len(moneys) == 0 {
		return nil, errFieldMissing
	}
	amountToken := moneys[len(moneys)-1]
	if len(moneys) >= 2 {
		amountToken = moneys[len(moneys)-2]
	}
	amount, err := parseMoney(amountToken)
	if err != nil || !amount.IsPositive() {
		return nil, errFieldMissing
	}

	direction := blockDirection(block)

	desc := block
	desc = strings.Replace(desc, dateToken, "", 1)
	for _, m := range moneys {
		desc = strings.Replace(desc, m, "", 1)
	}
	merchantRaw, dirHint := merchantFromDescription(strings.TrimSpace(desc))
	if direction == domain.DirectionUnknown {
		direction = dirHint
	}

	tx := &domain.ExtractedTransaction{
		Amount:        amount,
		Direction:     direction,
		MerchantRaw:   strings.TrimSpace(desc),
		MerchantClean: merchant.DisplayName(merchant.NormalizeAggressive(merchantRaw)),
		OccurredAt:    occurredAt,
		Currency:      "INR",
		SourceLabel:   strings.TrimSuffix(v.label, " PDF"),
	}
	if !tx.Valid() {
		return nil, errFieldMissing
	}
	return tx, nil
}

var (
	drTokenRe = regexp.MustCompile(`\bDR\b`)
	crTokenRe = regexp.MustCompile(`\bCR\b`)
)

func blockDirection(block string) domain.Direction {
	upper := strings.ToUpper(block)
	if strings.Contains(upper, "/DR/") {
		return domain.DirectionDebit
	}
	if strings.Contains(upper, "/CR/") {
		return domain.DirectionCredit
	}
	hasDR, hasCR := drTokenRe.MatchString(upper), crTokenRe.MatchString(upper)
	if hasDR != hasCR {
		if hasDR {
			return domain.DirectionDebit
		}
		return domain.DirectionCredit
	}

	lower := strings.ToLower(block)
	switch {
	case strings.Contains(lower, "debit"), strings.Contains(lower, "paid to"), strings.Contains(lower, "money sent"):
		return domain.DirectionDebit
	case strings.Contains(lower, "credit"), strings.Contains(lower, "received"):
		return domain.DirectionCredit
	}
	return domain.DirectionUnknown
}
