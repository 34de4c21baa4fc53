// Package sheet parses price history spreadsheets (XLSX or CSV) into
// price_history rows.
package sheet

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/procure-cli/internal/model"
)

// Columns is the expected header, in any order. Only supplier and
// unit_price are required.
var Columns = []string{"date", "supplier", "sku", "description", "qty", "unit_price", "currency"}

var dateLayouts = []string{"2006-01-02", "02/01/2006", "2006/01/02", "2 Jan 2006", "01-02-06"}

// ReadFile reads a price history file, choosing the parser by extension.
func ReadFile(path string) ([]model.PriceHistoryEntry, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		rows, err = readXLSX(path)
	case ".csv":
		var f *os.File
		f, err = os.Open(path)
		if err != nil {
			return nil, eris.Wrapf(err, "sheet: open %s", path)
		}
		defer f.Close() //nolint:errcheck
		rows, err = readCSV(f)
	default:
		return nil, eris.Errorf("sheet: unsupported file type %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}
	return ParsePriceHistory(rows, "import:"+filepath.Base(path))
}

// ParsePriceHistory maps header + data rows onto entries. Blank rows are
// skipped; row numbers in errors are 1-based and include the header.
func ParsePriceHistory(rows [][]string, source string) ([]model.PriceHistoryEntry, error) {
	if len(rows) == 0 {
		return nil, eris.New("sheet: file is empty")
	}
	idx := make(map[string]int, len(Columns))
	for i, h := range rows[0] {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, req := range []string{"supplier", "unit_price"} {
		if _, ok := idx[req]; !ok {
			return nil, eris.Errorf("sheet: missing column %q", req)
		}
	}

	get := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []model.PriceHistoryEntry
	for n, row := range rows[1:] {
		line := n + 2
		if blank(row) {
			continue
		}

		e := model.PriceHistoryEntry{
			SupplierName: get(row, "supplier"),
			SKU:          get(row, "sku"),
			Description:  get(row, "description"),
			Currency:     strings.ToUpper(get(row, "currency")),
			Source:       source,
		}
		if e.SupplierName == "" {
			return nil, eris.Errorf("sheet: row %d: supplier is required", line)
		}

		var err error
		if e.UnitPrice, err = parseNumber(get(row, "unit_price")); err != nil {
			return nil, eris.Wrapf(err, "sheet: row %d: unit_price", line)
		}
		if q := get(row, "qty"); q != "" {
			if e.Qty, err = parseNumber(q); err != nil {
				return nil, eris.Wrapf(err, "sheet: row %d: qty", line)
			}
		}
		if d := get(row, "date"); d != "" {
			if e.EntryDate, err = parseDate(d); err != nil {
				return nil, eris.Wrapf(err, "sheet: row %d: date", line)
			}
		}
		out = append(out, e)
	}
	return out, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "sheet: open xlsx")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.New("sheet: workbook has no sheets")
	}

	var rows [][]string
	for _, row := range f.Sheets[0].Rows {
		if row == nil {
			continue
		}
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cell.String()
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

func readCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "sheet: read csv")
	}
	return rows, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// parseNumber accepts thousands separators and a leading currency symbol.
func parseNumber(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "$€£¥Rp ")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, eris.New("empty value")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, eris.Errorf("invalid number %q", s)
	}
	return f, nil
}

// parseDate accepts the common text layouts and Excel serial dates.
func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if serial, err := strconv.ParseFloat(s, 64); err == nil && serial > 0 {
		t := xlsx.TimeFromExcelTime(serial, false)
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, eris.Errorf("unrecognised date %q", s)
}
