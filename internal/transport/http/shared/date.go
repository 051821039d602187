package shared

import (
	"errors"
	"time"

	"shiftpay/internal/domain/schedule"
)

var errDateFormat = errors.New("unrecognized date")

// ParseDate accepts RFC3339, YYYY-MM-DD or the schedule's D.M.YYYY labels.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339, value); err == nil {
		return parsed, nil
	}
	if parsed, err := time.Parse("2006-01-02", value); err == nil {
		return parsed, nil
	}
	if parsed, ok := schedule.ParseDate(value); ok {
		return parsed, nil
	}
	return time.Time{}, errDateFormat
}
