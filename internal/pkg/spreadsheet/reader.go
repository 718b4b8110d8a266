// Package spreadsheet turns uploaded punch sheets into header-keyed rows.
// It accepts xlsx workbooks and csv exports; ingestion does not care which.
package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one data row keyed by the header row's column names. Duplicate or
// empty headers are disambiguated so no cell is lost.
type Row map[string]string

// Read sniffs the payload and parses it with the matching reader. filename
// is only used for extension sniffing.
func Read(data []byte, filename string) ([]Row, error) {
	name := strings.ToLower(filename)
	switch {
	case strings.HasSuffix(name, ".csv"):
		return ReadCSV(bytes.NewReader(data))
	case strings.HasSuffix(name, ".xlsx"), strings.HasSuffix(name, ".xlsm"):
		return ReadXLSX(bytes.NewReader(data))
	default:
		// xlsx files are zip archives; sniff the magic bytes
		if len(data) >= 2 && data[0] == 'P' && data[1] == 'K' {
			return ReadXLSX(bytes.NewReader(data))
		}
		return ReadCSV(bytes.NewReader(data))
	}
}

// ReadXLSX parses the first sheet of an xlsx workbook.
func ReadXLSX(r io.Reader) ([]Row, error) {
	file, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheetName, err)
	}

	return assemble(rows), nil
}

// ReadCSV parses a comma-separated export with a header row.
func ReadCSV(r io.Reader) ([]Row, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // punch sheets have ragged rows
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	return assemble(records), nil
}

// assemble maps data rows onto the header row. Rows with no non-empty cell
// are dropped.
func assemble(raw [][]string) []Row {
	if len(raw) == 0 {
		return nil
	}

	headers := make([]string, len(raw[0]))
	seen := make(map[string]int)
	for i, h := range raw[0] {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Column %d", i+1)
		}
		if n := seen[name]; n > 0 {
			seen[name]++
			name = fmt.Sprintf("%s (%d)", name, n+1)
		} else {
			seen[name] = 1
		}
		headers[i] = name
	}

	var rows []Row
	for _, cells := range raw[1:] {
		row := make(Row, len(headers))
		empty := true
		for i, h := range headers {
			if i >= len(cells) {
				break
			}
			value := strings.TrimSpace(cells[i])
			row[h] = value
			if value != "" {
				empty = false
			}
		}
		if !empty {
			rows = append(rows, row)
		}
	}
	return rows
}
