package payroll

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shiftpay/internal/domain/roster"
)

func TestWriteRegister(t *testing.T) {
	r := roster.New(roster.Entry{
		Name:     "Alice",
		Position: "cook",
		Rate:     decimal.NewFromInt(700),
		Display:  map[string]string{"en": "Alice A."},
	})
	summary := Summary{
		Start: time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
		Entries: map[string]Entry{
			"Alice": {Name: "Alice", Shifts: 1.5, Rate: decimal.NewFromInt(700), Base: decimal.NewFromInt(1050), Adjustment: -50, Note: "-50 late", Total: 1000},
		},
		GrandTotal: 1000,
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRegister(&buf, RegisterRows(summary, r, "en", "ru")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "name,display_name,position,shifts,rate,base,adjustment,note,total", lines[0])
	assert.Equal(t, "Alice,Alice A.,cook,1.5,700,1050,-50,-50 late,1000", lines[1])
}
