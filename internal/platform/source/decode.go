package source

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"shiftpay/internal/domain/schedule"
)

type Format string

const (
	FormatAuto Format = "auto"
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
	FormatXLS  Format = "xls"
	FormatHTML Format = "html"
)

// maxXLSRows bounds how many rows are read from a legacy workbook.
const maxXLSRows = 100000

var (
	ErrUnknownFormat = errors.New("unknown schedule format")
	ErrNoWorksheet   = errors.New("no worksheet found")
	ErrNoHTMLTable   = errors.New("no table found in html")

	zipMagic = []byte("PK\x03\x04")
	oleMagic = []byte{0xd0, 0xcf, 0x11, 0xe0}
)

func ParseFormat(value string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(value))); f {
	case "", FormatAuto:
		return FormatAuto, nil
	case FormatCSV, FormatXLSX, FormatXLS, FormatHTML:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, value)
	}
}

// DetectFormat guesses the payload format from its leading bytes, then the
// content type, then the location it was read from. CSV is the fallback.
func DetectFormat(data []byte, contentType, location string) Format {
	switch {
	case bytes.HasPrefix(data, zipMagic):
		return FormatXLSX
	case bytes.HasPrefix(data, oleMagic):
		return FormatXLS
	}
	head := strings.ToLower(strings.TrimSpace(string(data[:min(len(data), 512)])))
	if strings.HasPrefix(head, "<!doctype html") || strings.HasPrefix(head, "<html") || strings.HasPrefix(head, "<table") {
		return FormatHTML
	}

	contentType = strings.ToLower(contentType)
	switch {
	case strings.Contains(contentType, "text/csv"):
		return FormatCSV
	case strings.Contains(contentType, "spreadsheetml"):
		return FormatXLSX
	case strings.Contains(contentType, "ms-excel"):
		return FormatXLS
	case strings.Contains(contentType, "text/html"):
		return FormatHTML
	}

	if parsed, err := url.Parse(location); err == nil {
		if output := parsed.Query().Get("output"); output != "" {
			if f, err := ParseFormat(output); err == nil && f != FormatAuto {
				return f
			}
		}
		if strings.HasSuffix(parsed.Path, "/pubhtml") {
			return FormatHTML
		}
		location = parsed.Path
	}
	switch strings.ToLower(filepath.Ext(location)) {
	case ".xlsx":
		return FormatXLSX
	case ".xls":
		return FormatXLS
	case ".html", ".htm":
		return FormatHTML
	}
	return FormatCSV
}

// Decode turns a payload into a schedule table.
func Decode(data []byte, format Format) (schedule.Table, error) {
	switch format {
	case FormatCSV:
		return schedule.ParseCSV(string(data))
	case FormatXLSX:
		return decodeXLSX(data)
	case FormatXLS:
		return decodeXLS(data)
	case FormatHTML:
		return decodeHTML(data)
	default:
		return schedule.Table{}, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func decodeXLSX(data []byte) (schedule.Table, error) {
	file, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return schedule.Table{}, fmt.Errorf("open xlsx: %w", err)
	}
	defer func() { _ = file.Close() }()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return schedule.Table{}, ErrNoWorksheet
	}
	rows, err := file.GetRows(sheetName)
	if err != nil {
		return schedule.Table{}, fmt.Errorf("read xlsx rows: %w", err)
	}
	return schedule.FromRows(rows), nil
}

func decodeXLS(data []byte) (schedule.Table, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return schedule.Table{}, fmt.Errorf("open xls: %w", err)
	}
	if workbook.NumSheets() == 0 {
		return schedule.Table{}, ErrNoWorksheet
	}
	return schedule.FromRows(workbook.ReadAllCells(maxXLSRows)), nil
}

// decodeHTML reads the first table of a published sheet. Body rows are
// preferred so the column-letter header and row-number cells are skipped.
func decodeHTML(data []byte) (schedule.Table, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return schedule.Table{}, fmt.Errorf("parse html: %w", err)
	}
	table := doc.Find("table").First()
	if table.Length() == 0 {
		return schedule.Table{}, ErrNoHTMLTable
	}
	rows := table.Find("tbody tr")
	if rows.Length() == 0 {
		rows = table.Find("tr")
	}

	var raw [][]string
	rows.Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() == 0 {
			cells = row.Find("th")
		}
		record := make([]string, 0, cells.Length())
		cells.Each(func(_ int, cell *goquery.Selection) {
			record = append(record, cell.Text())
		})
		raw = append(raw, record)
	})
	return schedule.FromRows(raw), nil
}
