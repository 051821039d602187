package adjustment

import (
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var amountPattern = regexp.MustCompile(`[+-]?\d+(?:[.,]\d+)?`)

// Amount extracts the first signed integer or decimal run from text. Text
// without a number yields zero.
func Amount(text string) decimal.Decimal {
	match := amountPattern.FindString(text)
	if match == "" {
		return decimal.Zero
	}
	value, err := decimal.NewFromString(strings.Replace(match, ",", ".", 1))
	if err != nil {
		return decimal.Zero
	}
	return value
}

var (
	maxAmount = decimal.NewFromInt(math.MaxInt64)
	minAmount = decimal.NewFromInt(math.MinInt64)
)

// ParseAmount is Amount rounded to the nearest whole currency unit. A number
// outside the int64 range counts as no number at all.
func ParseAmount(text string) int64 {
	value := Amount(text).Round(0)
	if value.GreaterThan(maxAmount) || value.LessThan(minAmount) {
		return 0
	}
	return value.IntPart()
}
