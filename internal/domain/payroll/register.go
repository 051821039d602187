package payroll

import (
	"io"
	"strconv"

	"github.com/gocarina/gocsv"

	"shiftpay/internal/domain/roster"
)

// RegisterRow is one line of the payroll register export.
type RegisterRow struct {
	Name        string `csv:"name"`
	DisplayName string `csv:"display_name"`
	Position    string `csv:"position"`
	Shifts      string `csv:"shifts"`
	Rate        string `csv:"rate"`
	Base        string `csv:"base"`
	Adjustment  int64  `csv:"adjustment"`
	Note        string `csv:"note"`
	Total       int64  `csv:"total"`
}

// RegisterRows flattens a summary into export rows ordered by name.
func RegisterRows(summary Summary, r roster.Roster, lang, fallback string) []RegisterRow {
	rows := make([]RegisterRow, 0, len(summary.Entries))
	for _, name := range summary.Names() {
		entry := summary.Entries[name]
		row := RegisterRow{
			Name:        name,
			DisplayName: name,
			Shifts:      strconv.FormatFloat(entry.Shifts, 'f', -1, 64),
			Rate:        entry.Rate.String(),
			Base:        entry.Base.String(),
			Adjustment:  entry.Adjustment,
			Note:        entry.Note,
			Total:       entry.Total,
		}
		if member, ok := r.Lookup(name); ok {
			row.DisplayName = member.DisplayName(lang, fallback)
			row.Position = member.Position
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteRegister writes rows as CSV with a header line.
func WriteRegister(w io.Writer, rows []RegisterRow) error {
	return gocsv.Marshal(rows, w)
}
