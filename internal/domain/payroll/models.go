package payroll

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one employee's line in a payroll summary.
type Entry struct {
	Name       string          `json:"name"`
	Shifts     float64         `json:"shifts"`
	Rate       decimal.Decimal `json:"rate"`
	Base       decimal.Decimal `json:"base"`
	Adjustment int64           `json:"adjustment"`
	Note       string          `json:"note,omitempty"`
	Total      int64           `json:"total"`
}

type Summary struct {
	Start      time.Time        `json:"start"`
	End        time.Time        `json:"end"`
	Entries    map[string]Entry `json:"entries"`
	GrandTotal int64            `json:"grandTotal"`
}

// Names returns the entry names in byte order.
func (s Summary) Names() []string {
	names := make([]string, 0, len(s.Entries))
	for name := range s.Entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

func (p Period) Validate() error {
	if p.End.Before(p.Start) {
		return ErrInvalidPeriod
	}
	return nil
}
