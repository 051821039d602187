package shared

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"shiftpay/internal/domain/payroll"
)

// PeriodRequest selects a payroll period either by explicit bounds or by
// half-month. With neither, the half-month containing now is used.
type PeriodRequest struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Year  int    `json:"year"`
	Month int    `json:"month"`
	Half  int    `json:"half"`
}

// PeriodFromQuery reads from/to or year/month/half query parameters.
func PeriodFromQuery(v *Validator, query url.Values) PeriodRequest {
	req := PeriodRequest{
		From: strings.TrimSpace(query.Get("from")),
		To:   strings.TrimSpace(query.Get("to")),
	}
	req.Year, _ = v.Int("year", query.Get("year"), 2000, 2100)
	req.Month, _ = v.Int("month", query.Get("month"), 1, 12)
	req.Half, _ = v.Int("half", query.Get("half"), payroll.HalfFirst, payroll.HalfSecond)
	return req
}

func (p PeriodRequest) Resolve(v *Validator, now time.Time) payroll.Period {
	if p.From != "" || p.To != "" {
		v.Required("from", p.From, "is required when to is set")
		v.Required("to", p.To, "is required when from is set")
		var start, end time.Time
		if p.From != "" {
			start, _ = v.Date("from", p.From)
		}
		if p.To != "" {
			end, _ = v.Date("to", p.To)
		}
		v.DateOrder("from", start, "to", end)
		return payroll.Period{Start: start, End: end}
	}

	if p.Year == 0 && p.Month == 0 && p.Half == 0 {
		return payroll.CurrentHalf(now)
	}
	year, month, half := p.Year, p.Month, p.Half
	if year == 0 {
		year = now.Year()
	}
	if month == 0 {
		month = int(now.Month())
	}
	if half == 0 {
		half = payroll.HalfFirst
	}
	period, err := payroll.HalfMonth(year, time.Month(month), half)
	if err != nil {
		v.Add("period", err.Error()+" (half "+strconv.Itoa(half)+")")
	}
	return period
}
