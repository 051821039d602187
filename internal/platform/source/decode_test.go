package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestDetectFormat(t *testing.T) {
	cases := []struct {
		name        string
		data        string
		contentType string
		location    string
		want        Format
	}{
		{"zip magic", "PK\x03\x04rest", "", "", FormatXLSX},
		{"ole magic", "\xd0\xcf\x11\xe0rest", "", "", FormatXLS},
		{"html body", "  <!DOCTYPE html><html>", "", "", FormatHTML},
		{"csv content type", "a,b", "text/csv; charset=utf-8", "", FormatCSV},
		{"google csv export", "a,b", "", "https://docs.google.com/spreadsheets/d/e/x/pub?output=csv", FormatCSV},
		{"google xlsx export", "a,b", "", "https://docs.google.com/spreadsheets/d/e/x/pub?output=xlsx", FormatXLSX},
		{"pubhtml", "a,b", "", "https://docs.google.com/spreadsheets/d/e/x/pubhtml", FormatHTML},
		{"file extension", "a,b", "", "/tmp/schedule.XLS", FormatXLS},
		{"fallback", "a;b", "", "", FormatCSV},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectFormat([]byte(tc.data), tc.contentType, tc.location))
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat(" XLSX ")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatAuto, f)

	_, err = ParseFormat("ods")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDecodeXLSX(t *testing.T) {
	file := excelize.NewFile()
	defer file.Close()
	require.NoError(t, file.SetSheetRow("Sheet1", "A1", &[]any{"Имя", "01.03", "02.03"}))
	require.NoError(t, file.SetSheetRow("Sheet1", "A2", &[]any{" Alice ", "1", "0,5"}))
	buf, err := file.WriteToBuffer()
	require.NoError(t, err)

	table, err := Decode(buf.Bytes(), DetectFormat(buf.Bytes(), "", ""))
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Имя", "01.03", "02.03"}, {"Alice", "1", "0,5"}}, table.Rows)
}

func TestDecodeHTMLPublishedSheet(t *testing.T) {
	page := `<html><body><table class="waffle">
<thead><tr><th></th><th>A</th><th>B</th><th>C</th></tr></thead>
<tbody>
<tr><th>1</th><td>Имя</td><td>01.03</td><td>02.03</td></tr>
<tr><th>2</th><td>Alice&nbsp;</td><td>1</td><td>VR</td></tr>
<tr><th>3</th><td></td><td></td><td></td></tr>
</tbody></table></body></html>`
	table, err := Decode([]byte(page), FormatHTML)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Имя", "01.03", "02.03"}, {"Alice", "1", "VR"}}, table.Rows)
}

func TestDecodeHTMLWithoutTable(t *testing.T) {
	_, err := Decode([]byte("<html><body><p>nothing</p></body></html>"), FormatHTML)
	require.ErrorIs(t, err, ErrNoHTMLTable)
}

func TestDecodeRejectsUnknownFormat(t *testing.T) {
	_, err := Decode([]byte("a,b"), Format("ods"))
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestDecodeXLSRejectsGarbage(t *testing.T) {
	_, err := Decode([]byte("not a workbook"), FormatXLS)
	require.Error(t, err)
}
