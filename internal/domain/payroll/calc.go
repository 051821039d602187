package payroll

import (
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"shiftpay/internal/domain/adjustment"
	"shiftpay/internal/domain/roster"
	"shiftpay/internal/domain/schedule"
)

type accumulator struct {
	entry roster.Entry
	units decimal.Decimal
	base  decimal.Decimal
}

// ComputeSummary maps a schedule table and a period onto per-employee pay.
// Yearless header labels resolve against the year of start. Adjustments are
// keyed by canonical name; entries for names missing from the roster are
// ignored.
func ComputeSummary(table schedule.Table, r roster.Roster, start, end time.Time, adjustments map[string]string) (Summary, error) {
	if end.Before(start) {
		return Summary{}, ErrInvalidPeriod
	}

	columns := table.ColumnsIn(start, end)
	acc := map[string]*accumulator{}

	for rowIdx := 1; rowIdx < len(table.Rows); rowIdx++ {
		name := schedule.CleanCell(table.Cell(rowIdx, 0))
		if name == "" {
			continue
		}
		entry, ok := r.Lookup(name)
		if !ok {
			slog.Debug("schedule row skipped: not in roster", "name", name)
			continue
		}
		a, ok := acc[name]
		if !ok {
			a = &accumulator{entry: entry, units: decimal.Zero, base: decimal.Zero}
			acc[name] = a
		}
		for _, column := range columns {
			units := schedule.Classify(table.Cell(rowIdx, column.Index))
			if units == 0 {
				continue
			}
			u := decimal.NewFromFloat(units)
			a.units = a.units.Add(u)
			a.base = a.base.Add(u.Mul(entry.Rate))
		}
	}

	for name, a := range acc {
		if a.units.IsZero() && strings.TrimSpace(adjustments[name]) == "" {
			delete(acc, name)
		}
	}

	for name, note := range adjustments {
		if strings.TrimSpace(note) == "" {
			continue
		}
		if _, ok := acc[name]; ok || name == "" {
			continue
		}
		entry, ok := r.Lookup(name)
		if !ok {
			slog.Debug("adjustment skipped: not in roster", "name", name)
			continue
		}
		acc[name] = &accumulator{entry: entry, units: decimal.Zero, base: decimal.Zero}
	}

	summary := Summary{Start: start, End: end, Entries: make(map[string]Entry, len(acc))}
	for name, a := range acc {
		note := adjustments[name]
		if strings.TrimSpace(note) == "" {
			note = ""
		}
		amount := adjustment.ParseAmount(note)
		total := a.base.Add(decimal.NewFromInt(amount)).Round(0).IntPart()
		summary.Entries[name] = Entry{
			Name:       name,
			Shifts:     a.units.InexactFloat64(),
			Rate:       a.entry.Rate,
			Base:       a.base,
			Adjustment: amount,
			Note:       note,
			Total:      total,
		}
		summary.GrandTotal += total
	}
	return summary, nil
}
