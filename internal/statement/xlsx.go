package statement

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// parseXLSX converts the first sheet of an XLSX export to CSV text and
// reuses the CSV variant registry. Banks that offer XLSX downloads use the
// same column layout as their CSV exports, so one header table serves both.
func parseXLSX(data []byte, opts Options) (*Result, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data), excelize.Options{Password: opts.Password})
	if err != nil {
		return nil, fmt.Errorf("statement: open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrUnrecognizedFormat)
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("statement: read xlsx rows: %w", err)
	}

	var buf strings.Builder
	w := csv.NewWriter(&buf)
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("statement: rewrite xlsx row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("statement: rewrite xlsx: %w", err)
	}

	text := buf.String()
	v := detectCSVVariant(text)
	if v == nil {
		return nil, fmt.Errorf("%w: expected columns like Date, Description, Amount", ErrUnrecognizedFormat)
	}
	result, err := v.parse(text)
	if err != nil {
		return nil, err
	}
	result.FormatLabel = strings.TrimSuffix(v.label, " CSV") + " XLSX"
	return result, nil
}
