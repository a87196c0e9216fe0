package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"time"

	"lead-capture-go/internal/table"
)

// utf8BOM keeps spreadsheet tools from mangling non-ASCII content
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// File is a rendered CSV download
type File struct {
	Filename string
	Content  []byte
}

// Adapter serializes table query results to delimited text. It reuses the
// table manager's query path, so filters behave exactly as in the admin view.
type Adapter struct {
	tables *table.Manager
}

// NewAdapter creates an export adapter
func NewAdapter(tables *table.Manager) *Adapter {
	return &Adapter{tables: tables}
}

// ExportCSV queries a logical table and renders the result with a ';'
// delimiter and a UTF-8 byte-order mark. An empty result returns a nil
// file: the caller responds with a plain "No data" text instead of a
// download.
func (a *Adapter) ExportCSV(tableName string, filters table.Filters) (*File, error) {
	result, err := a.tables.Query(tableName, filters)
	if err != nil {
		return nil, err
	}
	if len(result.Rows) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write(result.Columns); err != nil {
		return nil, fmt.Errorf("writing csv header: %w", err)
	}

	record := make([]string, len(result.Columns))
	for _, row := range result.Rows {
		for i, col := range result.Columns {
			record[i] = formatValue(row[col])
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("writing csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flushing csv: %w", err)
	}

	filename := fmt.Sprintf("export_%s_%s.csv", tableName, time.Now().Format("20060102_1504"))
	return &File{Filename: filename, Content: buf.Bytes()}, nil
}

// formatValue renders a single cell; missing fields become empty strings
func formatValue(v interface{}) string {
	switch value := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(value)
	case time.Time:
		return value.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprint(value)
	}
}
