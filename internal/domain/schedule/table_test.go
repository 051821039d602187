package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCSVDetectsSemicolon(t *testing.T) {
	table, err := ParseCSV("Имя;01.03;02.03\r\nAlice;1;\"0,5\"\r\n")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Имя", "01.03", "02.03"}, {"Alice", "1", "0,5"}}, table.Rows)
}

func TestParseCSVCommaWithQuotedFields(t *testing.T) {
	table, err := ParseCSV("Name,01.03,02.03\n\"Bob\",\"1,5\",3\n,,\n")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Name", "01.03", "02.03"}, {"Bob", "1,5", "3"}}, table.Rows)
}

func TestCellToleratesRaggedRows(t *testing.T) {
	table := Table{Rows: [][]string{{"", "01.03", "02.03", "03.03"}, {"Alice", "1"}}}
	assert.Equal(t, "1", table.Cell(1, 1))
	assert.Equal(t, "", table.Cell(1, 3))
	assert.Equal(t, "", table.Cell(5, 0))
	assert.Equal(t, "", table.Cell(-1, 0))
}

func TestColumnsSkipsInvalidLabels(t *testing.T) {
	table := Table{Rows: [][]string{{"", "01.03", "total", "03.03.2023"}}}
	columns := table.Columns(2024)
	require.Len(t, columns, 2)
	assert.Equal(t, 1, columns[0].Index)
	assert.Equal(t, time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC), columns[0].Date)
	assert.Equal(t, 3, columns[1].Index)
	assert.Equal(t, 2023, columns[1].Date.Year())
}

func TestColumnsInIsInclusive(t *testing.T) {
	table := Table{Rows: [][]string{{"", "01.03", "02.03", "03.03", "04.03"}}}
	start := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 3, 23, 0, 0, 0, time.UTC)
	columns := table.ColumnsIn(start, end)
	require.Len(t, columns, 2)
	assert.Equal(t, "02.03", columns[0].Label)
	assert.Equal(t, "03.03", columns[1].Label)
}

func TestColumnsInAcrossNewYear(t *testing.T) {
	table := Table{Rows: [][]string{{"", "30.12", "31.12", "01.01", "02.01", "03.01"}}}
	start := time.Date(2024, time.December, 30, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)
	columns := table.ColumnsIn(start, end)
	require.Len(t, columns, 4)
	assert.Equal(t, time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC), columns[1].Date)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), columns[2].Date)
	assert.Equal(t, 4, columns[3].Index)
}

func TestEmptyTable(t *testing.T) {
	var table Table
	assert.True(t, table.IsEmpty())
	assert.Nil(t, table.Header())
	assert.Nil(t, table.Employees())
}

func TestWindowKeepsNameColumnAndRange(t *testing.T) {
	table := Table{Rows: [][]string{
		{"", "01.03", "02.03", "03.03"},
		{"Alice", "1", "0"},
	}}
	start := time.Date(2024, time.March, 2, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC)
	window := table.Window(start, end)
	assert.Equal(t, [][]string{{"", "02.03", "03.03"}, {"Alice", "0", ""}}, window.Rows)
}
