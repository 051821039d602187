package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var dateLabelPattern = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})(?:\.(\d{4}))?$`)

// CleanCell normalizes a raw spreadsheet cell. It never fails; an empty
// input yields an empty string.
func CleanCell(raw string) string {
	value := strings.ReplaceAll(raw, "\r", "")
	value = strings.TrimSpace(value)
	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		value = value[1 : len(value)-1]
	}
	value = strings.ReplaceAll(value, "\u00a0", " ")
	return strings.TrimSpace(value)
}

// ParseDate parses a header label in D.M or D.M.YYYY form. Labels without a
// year resolve to the current calendar year.
func ParseDate(label string) (time.Time, bool) {
	return ParseDateIn(label, time.Now().Year())
}

// ParseDateIn is ParseDate with an explicit year for D.M labels.
func ParseDateIn(label string, year int) (time.Time, bool) {
	value := strings.TrimSpace(label)
	value = strings.TrimSuffix(value, ".")
	match := dateLabelPattern.FindStringSubmatch(value)
	if match == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	if match[3] != "" {
		year, _ = strconv.Atoi(match[3])
	}
	if month < 1 || month > 12 || day < 1 {
		return time.Time{}, false
	}
	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes 31.02 into March; such labels are not dates.
	if date.Day() != day || int(date.Month()) != month {
		return time.Time{}, false
	}
	return date, true
}
