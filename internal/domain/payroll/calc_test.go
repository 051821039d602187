package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"

	"shiftpay/internal/domain/adjustment"
	"shiftpay/internal/domain/roster"
	"shiftpay/internal/domain/schedule"
	"shiftpay/internal/platform/kv"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func testRoster() roster.Roster {
	return roster.New(
		roster.Entry{Name: "Alice", Position: "cook", Rate: decimal.NewFromInt(700)},
		roster.Entry{Name: "Bob", Position: "waiter", Rate: decimal.NewFromInt(600)},
		roster.Entry{Name: "Dana", Position: "helper", Rate: decimal.Zero},
	)
}

func testTable() schedule.Table {
	return schedule.FromRows([][]string{
		{"", "01.03", "02.03", "03.03", "04.03"},
		{"Alice", "1", "0", "1", "VR"},
		{"Bob", "1", "1", "3", ""},
		{"Carol", "1", "1", "1", "1"},
	})
}

func TestComputeSummaryBasic(t *testing.T) {
	summary, err := ComputeSummary(testTable(), testRoster(), day(2024, time.March, 1), day(2024, time.March, 3), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(summary.Entries))
	}
	alice := summary.Entries["Alice"]
	if alice.Shifts != 2 || alice.Total != 1400 {
		t.Fatalf("unexpected alice entry: %+v", alice)
	}
	bob := summary.Entries["Bob"]
	if bob.Shifts != 3 || bob.Total != 1800 {
		t.Fatalf("unexpected bob entry: %+v", bob)
	}
	if summary.GrandTotal != 3200 {
		t.Fatalf("expected grand total 3200, got %d", summary.GrandTotal)
	}
	if _, ok := summary.Entries["Carol"]; ok {
		t.Fatal("names outside the roster must be skipped")
	}
}

func TestComputeSummaryAppliesAdjustment(t *testing.T) {
	adjustments := map[string]string{"Alice": "-300 advance"}
	summary, err := ComputeSummary(testTable(), testRoster(), day(2024, time.March, 1), day(2024, time.March, 3), adjustments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	alice := summary.Entries["Alice"]
	if alice.Total != 1100 || alice.Adjustment != -300 || alice.Note != "-300 advance" {
		t.Fatalf("unexpected alice entry: %+v", alice)
	}
	if summary.GrandTotal != 2900 {
		t.Fatalf("expected grand total 2900, got %d", summary.GrandTotal)
	}
}

func TestComputeSummaryFractionalUnits(t *testing.T) {
	table := schedule.FromRows([][]string{
		{"Имя", "01.03", "02.03"},
		{"Alice", "1,5", "0.5"},
	})
	summary, err := ComputeSummary(table, testRoster(), day(2024, time.March, 1), day(2024, time.March, 2), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	alice := summary.Entries["Alice"]
	if alice.Shifts != 2 || alice.Total != 1400 {
		t.Fatalf("unexpected alice entry: %+v", alice)
	}
}

func TestComputeSummaryRoundsOnlyTotals(t *testing.T) {
	r := roster.New(
		roster.Entry{Name: "A", Rate: decimal.RequireFromString("100.5")},
		roster.Entry{Name: "B", Rate: decimal.RequireFromString("100.5")},
	)
	table := schedule.FromRows([][]string{
		{"Имя", "01.03"},
		{"A", "1"},
		{"B", "1"},
	})
	summary, err := ComputeSummary(table, r, day(2024, time.March, 1), day(2024, time.March, 1), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var sum int64
	for _, entry := range summary.Entries {
		if !entry.Base.Equal(decimal.RequireFromString("100.5")) {
			t.Fatalf("base must stay unrounded, got %s", entry.Base)
		}
		sum += entry.Total
	}
	if summary.GrandTotal != sum {
		t.Fatalf("grand total %d must equal the sum of totals %d", summary.GrandTotal, sum)
	}
}

func TestComputeSummaryAdjustmentOnlyEmployee(t *testing.T) {
	adjustments := map[string]string{
		"Dana":    "+500 bonus",
		"Unknown": "100",
		"Bob":     "   ",
	}
	summary, err := ComputeSummary(testTable(), testRoster(), day(2024, time.March, 4), day(2024, time.March, 4), adjustments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dana, ok := summary.Entries["Dana"]
	if !ok || dana.Shifts != 0 || dana.Total != 500 {
		t.Fatalf("unexpected dana entry: %+v", dana)
	}
	if _, ok := summary.Entries["Unknown"]; ok {
		t.Fatal("adjustments for names outside the roster must be ignored")
	}
	if _, ok := summary.Entries["Bob"]; ok {
		t.Fatal("blank adjustments must not include an employee without shifts")
	}
}

func TestComputeSummaryZeroRateStillListed(t *testing.T) {
	table := schedule.FromRows([][]string{
		{"", "01.03", "02.03"},
		{"Dana", "1", "1"},
	})
	summary, err := ComputeSummary(table, testRoster(), day(2024, time.March, 1), day(2024, time.March, 2), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dana, ok := summary.Entries["Dana"]
	if !ok {
		t.Fatal("a zero-rate employee with shifts must be listed")
	}
	if dana.Shifts != 2 || dana.Total != 0 {
		t.Fatalf("unexpected dana entry: %+v", dana)
	}
	if summary.GrandTotal != 0 {
		t.Fatalf("expected grand total 0, got %d", summary.GrandTotal)
	}
}

func TestComputeSummarySkipsBlankNameRows(t *testing.T) {
	r := roster.New(
		roster.Entry{Name: "", Rate: decimal.NewFromInt(1000)},
		roster.Entry{Name: "Alice", Rate: decimal.NewFromInt(700)},
	)
	table := schedule.FromRows([][]string{
		{"", "01.03"},
		{"Alice", "1"},
		{"", "1"},
		{"  ", "1"},
	})
	summary, err := ComputeSummary(table, r, day(2024, time.March, 1), day(2024, time.March, 1), map[string]string{"": "500"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(summary.Entries) != 1 || summary.GrandTotal != 700 {
		t.Fatalf("rows without a name must be skipped, got %+v", summary)
	}
}

func TestComputeSummaryAcrossNewYear(t *testing.T) {
	table := schedule.FromRows([][]string{
		{"", "30.12", "31.12", "01.01", "02.01"},
		{"Alice", "1", "1", "1", "1"},
	})
	summary, err := ComputeSummary(table, testRoster(), day(2024, time.December, 30), day(2025, time.January, 2), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	alice := summary.Entries["Alice"]
	if alice.Shifts != 4 || alice.Total != 2800 {
		t.Fatalf("unexpected alice entry: %+v", alice)
	}
}

func TestComputeSummaryIgnoresOversizedAdjustment(t *testing.T) {
	adjustments := map[string]string{"Alice": "18446744073709551916 bonus"}
	summary, err := ComputeSummary(testTable(), testRoster(), day(2024, time.March, 1), day(2024, time.March, 3), adjustments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	alice := summary.Entries["Alice"]
	if alice.Adjustment != 0 || alice.Total != 1400 {
		t.Fatalf("unexpected alice entry: %+v", alice)
	}
}

func TestComputeSummaryRejectsInvertedPeriod(t *testing.T) {
	_, err := ComputeSummary(testTable(), testRoster(), day(2024, time.March, 3), day(2024, time.March, 1), nil)
	if err != ErrInvalidPeriod {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestComputeSummaryIsPure(t *testing.T) {
	table := testTable()
	adjustments := map[string]string{"Alice": "-300 advance"}
	first, err := ComputeSummary(table, testRoster(), day(2024, time.March, 1), day(2024, time.March, 4), adjustments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ComputeSummary(table, testRoster(), day(2024, time.March, 1), day(2024, time.March, 4), adjustments)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	opts := cmp.Comparer(func(a, b decimal.Decimal) bool { return a.Equal(b) })
	if diff := cmp.Diff(first, second, opts); diff != "" {
		t.Fatalf("summary changed between calls (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(testTable(), table); diff != "" {
		t.Fatalf("table mutated:\n%s", diff)
	}
}

func TestServiceSummaryIgnoresCorruptAdjustments(t *testing.T) {
	ctx := context.Background()
	backend := kv.NewMemory()
	if err := backend.Set(ctx, adjustment.StorageKey, "{not json"); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	holder := schedule.NewHolder(nil)
	holder.Replace(testTable())
	svc := NewService(holder, testRoster(), adjustment.NewStore(backend))

	period := Period{Start: day(2024, time.March, 1), End: day(2024, time.March, 3)}
	summary, err := svc.Summary(ctx, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary.GrandTotal != 3200 {
		t.Fatalf("expected grand total 3200, got %d", summary.GrandTotal)
	}
}

func TestHalfMonth(t *testing.T) {
	first, err := HalfMonth(2024, time.February, HalfFirst)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.Start.Equal(day(2024, time.February, 1)) || !first.End.Equal(day(2024, time.February, 15)) {
		t.Fatalf("unexpected first half: %+v", first)
	}
	second, err := HalfMonth(2024, time.February, HalfSecond)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.Start.Equal(day(2024, time.February, 16)) || !second.End.Equal(day(2024, time.February, 29)) {
		t.Fatalf("unexpected second half: %+v", second)
	}
	if _, err := HalfMonth(2024, time.February, 3); err == nil {
		t.Fatal("expected invalid half to fail")
	}
	if got := CurrentHalf(day(2024, time.December, 20)); !got.End.Equal(day(2024, time.December, 31)) {
		t.Fatalf("unexpected current half: %+v", got)
	}
}
