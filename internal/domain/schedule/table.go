package schedule

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// Table is a schedule grid: row 0 holds date labels, every other row starts
// with an employee name followed by shift marks aligned with the header.
type Table struct {
	Rows [][]string `json:"rows"`
}

// Column is a header column whose label parsed as a date.
type Column struct {
	Index int       `json:"index"`
	Label string    `json:"label"`
	Date  time.Time `json:"date"`
}

func (t Table) Header() []string {
	if len(t.Rows) == 0 {
		return nil
	}
	return t.Rows[0]
}

// Employees returns the data rows, header excluded.
func (t Table) Employees() [][]string {
	if len(t.Rows) < 2 {
		return nil
	}
	return t.Rows[1:]
}

// Cell returns the cell at (row, col) or "" when the row is too short.
func (t Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

func (t Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// Columns returns the header columns carrying a valid date label. Columns
// with unparsable labels are left out.
func (t Table) Columns(year int) []Column {
	header := t.Header()
	columns := make([]Column, 0, len(header))
	for idx := 1; idx < len(header); idx++ {
		date, ok := ParseDateIn(header[idx], year)
		if !ok {
			continue
		}
		columns = append(columns, Column{Index: idx, Label: CleanCell(header[idx]), Date: date})
	}
	return columns
}

// ColumnsIn returns the dated columns falling within [start, end]. A label
// without a year takes the first year of the period that puts it inside
// [start, end], so a period spanning New Year keeps its January columns.
func (t Table) ColumnsIn(start, end time.Time) []Column {
	header := t.Header()
	var out []Column
	for idx := 1; idx < len(header); idx++ {
		for year := start.Year(); year <= end.Year(); year++ {
			date, ok := ParseDateIn(header[idx], year)
			if ok && InRange(date, start, end) {
				out = append(out, Column{Index: idx, Label: CleanCell(header[idx]), Date: date})
				break
			}
		}
	}
	return out
}

// InRange reports whether date lies in [start, end] compared by calendar day.
func InRange(date, start, end time.Time) bool {
	day := truncateDay(date)
	return !day.Before(truncateDay(start)) && !day.After(truncateDay(end))
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DetectDelimiter picks ';' when the payload contains one, ',' otherwise.
func DetectDelimiter(text string) rune {
	if strings.Contains(text, ";") {
		return ';'
	}
	return ','
}

// ParseCSV parses a published-spreadsheet CSV payload into a Table.
func ParseCSV(text string) (Table, error) {
	reader := csv.NewReader(strings.NewReader(strings.ReplaceAll(text, "\r", "")))
	reader.Comma = DetectDelimiter(text)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("parse schedule csv: %w", err)
		}
		rows = append(rows, record)
	}
	return FromRows(rows), nil
}

// FromRows builds a Table from raw rows, cleaning every cell and dropping
// rows that are entirely blank.
func FromRows(raw [][]string) Table {
	rows := make([][]string, 0, len(raw))
	for _, record := range raw {
		row := cleanRow(record)
		if isBlank(row) {
			continue
		}
		rows = append(rows, row)
	}
	return Table{Rows: rows}
}

func cleanRow(record []string) []string {
	row := make([]string, len(record))
	for i, cell := range record {
		row[i] = CleanCell(cell)
	}
	return row
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if cell != "" {
			return false
		}
	}
	return true
}

// Window returns the sub-table made of the name column and the dated
// columns within [start, end].
func (t Table) Window(start, end time.Time) Table {
	if t.IsEmpty() {
		return Table{}
	}
	columns := t.ColumnsIn(start, end)
	rows := make([][]string, len(t.Rows))
	for r := range t.Rows {
		row := make([]string, 0, len(columns)+1)
		row = append(row, t.Cell(r, 0))
		for _, column := range columns {
			row = append(row, t.Cell(r, column.Index))
		}
		rows[r] = row
	}
	return Table{Rows: rows}
}
