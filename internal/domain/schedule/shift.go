package schedule

import (
	"regexp"
	"strconv"
	"strings"
)

type Kind string

const (
	KindEmpty    Kind = "empty"
	KindShift    Kind = "shift"
	KindOff      Kind = "off"
	KindVacation Kind = "vacation"
	KindSick     Kind = "sick"
	KindOther    Kind = "other"
)

// MaxUnits is the largest work-unit value a single cell may carry.
const MaxUnits = 2.0

var (
	numericMark   = regexp.MustCompile(`^\d+(?:[.,]\d+)?$`)
	vacationCodes = map[string]struct{}{"VR": {}, "ОТ": {}, "V": {}}
	sickCodes     = map[string]struct{}{"Б": {}, "B": {}, "S": {}}
)

// Mark is the classification of one schedule cell.
type Mark struct {
	Kind  Kind
	Units float64
}

// ParseMark classifies a shift cell. Payroll and rendering both read marks
// through this function only.
func ParseMark(cell string) Mark {
	value := CleanCell(cell)
	switch value {
	case "":
		return Mark{Kind: KindEmpty}
	case "1", "3":
		// "3" is a full shift of a different kind, paid the same.
		return Mark{Kind: KindShift, Units: 1}
	case "0":
		return Mark{Kind: KindOff}
	}

	upper := strings.ToUpper(value)
	if _, ok := vacationCodes[upper]; ok {
		return Mark{Kind: KindVacation}
	}
	if _, ok := sickCodes[upper]; ok {
		return Mark{Kind: KindSick}
	}

	if !numericMark.MatchString(value) {
		return Mark{Kind: KindOther}
	}
	units, err := strconv.ParseFloat(strings.Replace(value, ",", ".", 1), 64)
	if err != nil || units > MaxUnits {
		return Mark{Kind: KindOther}
	}
	if units == 0 {
		return Mark{Kind: KindOff}
	}
	return Mark{Kind: KindShift, Units: units}
}

// Classify returns the work units a cell contributes to payroll.
func Classify(cell string) float64 {
	return ParseMark(cell).Units
}
