package payroll

import (
	"fmt"
	"time"
)

// HalfMonth returns the first (1st to 15th) or second (16th to last day)
// half of a month.
func HalfMonth(year int, month time.Month, half int) (Period, error) {
	if month < time.January || month > time.December {
		return Period{}, ErrInvalidMonth
	}
	switch half {
	case HalfFirst:
		return Period{
			Start: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, month, FirstHalfLastDay, 0, 0, 0, 0, time.UTC),
		}, nil
	case HalfSecond:
		return Period{
			Start: time.Date(year, month, FirstHalfLastDay+1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC),
		}, nil
	default:
		return Period{}, fmt.Errorf("%w: got %d", ErrInvalidHalf, half)
	}
}

// CurrentHalf returns the half-month period containing now.
func CurrentHalf(now time.Time) Period {
	half := HalfFirst
	if now.Day() > FirstHalfLastDay {
		half = HalfSecond
	}
	period, _ := HalfMonth(now.Year(), now.Month(), half)
	return period
}
