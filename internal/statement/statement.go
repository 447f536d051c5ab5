// Package statement parses bulk statement exports: bank CSVs, XLSX exports
// and PDF-extracted text. Format detection is a priority-ordered walk over
// registered variants; an unrecognized format surfaces one user-facing
// error naming the minimal schema, never a per-row cascade of failures.
package statement

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/indra7777/SpendWise-sub000/internal/domain"
)

// ErrUnrecognizedFormat is wrapped into the single user-facing error for a
// file no variant claims.
var ErrUnrecognizedFormat = errors.New("statement: unrecognized format")

// maxItemizedErrors caps how many row errors are itemized in a result; the
// remainder is only counted.
const maxItemizedErrors = 5

// detectLines is how many leading lines PDF variants scan for bank-name
// landmarks.
const detectLines = 20

// Options carries per-import settings.
type Options struct {
	// Password for encrypted XLSX exports. PDF decryption happens in the
	// caller's text-extraction step; the password is accepted here so one
	// option set serves both channels.
	Password string
}

// Result is the outcome of parsing one statement file.
type Result struct {
	Success      bool
	FormatLabel  string
	Transactions []*domain.ExtractedTransaction

	// ParsedCount counts data rows/blocks seen; SkippedRows counts silent
	// field-missing rejections (no date, no amount). Errors itemizes at
	// most maxItemizedErrors row errors; ErrorCount is the full number.
	ParsedCount int
	SkippedRows int
	Errors      []string
	ErrorCount  int
}

func (r *Result) addRowError(row int, err error) {
	r.ErrorCount++
	if len(r.Errors) < maxItemizedErrors {
		r.Errors = append(r.Errors, fmt.Sprintf("row %d: %v", row, err))
	}
}

// Parse detects the format of the given statement text and extracts its
// transactions. CSV headers are tried first (they are the cheapest, most
// specific signal), then PDF-text landmarks. The error return is reserved
// for whole-operation failures: empty input or no matching variant.
func Parse(data []byte, opts Options) (*Result, error) {
	if isXLSX(data) {
		return parseXLSX(data, opts)
	}

	text := string(bytes.TrimPrefix(data, []byte{0xEF, 0xBB, 0xBF}))
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("statement: empty input")
	}

	if v := detectCSVVariant(text); v != nil {
		return v.parse(text)
	}
	if v := detectPDFVariant(text); v != nil {
		return v.parse(text)
	}

	return nil, fmt.Errorf("%w: expected columns like Date, Description, Amount", ErrUnrecognizedFormat)
}

func isXLSX(data []byte) bool {
	return bytes.HasPrefix(data, []byte("PK\x03\x04"))
}

// headLines returns up to n leading non-empty lines, trimmed.
func headLines(text string, n int) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		out = append(out, line)
		if len(out) == n {
			break
		}
	}
	return out
}
