package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/riccardocatervi/JBudget-sub001/internal/ledger"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpand_Daily(t *testing.T) {
	got := Expand(date(2024, time.June, 1), nil, ledger.FrequencyDaily, date(2024, time.June, 4))

	assert.Equal(t, []time.Time{
		date(2024, time.June, 1),
		date(2024, time.June, 2),
		date(2024, time.June, 3),
		date(2024, time.June, 4),
	}, got)
}

func TestExpand_Weekly(t *testing.T) {
	got := Expand(date(2024, time.June, 3), nil, ledger.FrequencyWeekly, date(2024, time.June, 24))

	assert.Equal(t, []time.Time{
		date(2024, time.June, 3),
		date(2024, time.June, 10),
		date(2024, time.June, 17),
		date(2024, time.June, 24),
	}, got)
}

func TestExpand_MonthlyClampLeapYear(t *testing.T) {
	got := Expand(date(2024, time.January, 31), nil, ledger.FrequencyMonthly, date(2024, time.March, 31))

	assert.Equal(t, []time.Time{
		date(2024, time.January, 31),
		date(2024, time.February, 29), // leap year, clamp lands on the 29th
		date(2024, time.March, 31),
	}, got)
}

func TestExpand_MonthlyClampIsNotSticky(t *testing.T) {
	got := Expand(date(2024, time.January, 31), nil, ledger.FrequencyMonthly, date(2025, time.March, 31))

	// The anchor stays on the 31st after every short month.
	assert.Contains(t, got, date(2024, time.April, 30))
	assert.Contains(t, got, date(2024, time.May, 31))
	assert.Contains(t, got, date(2025, time.February, 28)) // non-leap clamp
	assert.Equal(t, date(2025, time.March, 31), got[len(got)-1])
	assert.Len(t, got, 15)
}

func TestExpand_YearlyLeapDayClamp(t *testing.T) {
	got := Expand(date(2024, time.February, 29), nil, ledger.FrequencyYearly, date(2028, time.March, 1))

	assert.Equal(t, []time.Time{
		date(2024, time.February, 29),
		date(2025, time.February, 28),
		date(2026, time.February, 28),
		date(2027, time.February, 28),
		date(2028, time.February, 29),
	}, got)
}

func TestExpand_StartAfterUpperBound(t *testing.T) {
	got := Expand(date(2030, time.January, 1), nil, ledger.FrequencyDaily, date(2024, time.January, 1))
	assert.Empty(t, got)
}

func TestExpand_EndDateLowersCeiling(t *testing.T) {
	end := date(2024, time.June, 2)
	got := Expand(date(2024, time.June, 1), &end, ledger.FrequencyDaily, date(2024, time.June, 30))

	assert.Equal(t, []time.Time{
		date(2024, time.June, 1),
		date(2024, time.June, 2),
	}, got)
}

func TestExpand_UpperBoundLowerThanEndDate(t *testing.T) {
	end := date(2024, time.December, 31)
	got := Expand(date(2024, time.June, 1), &end, ledger.FrequencyWeekly, date(2024, time.June, 8))

	assert.Equal(t, []time.Time{
		date(2024, time.June, 1),
		date(2024, time.June, 8),
	}, got)
}

func TestExpand_SingleOccurrenceOnBoundary(t *testing.T) {
	// A start exactly on the ceiling produces exactly one occurrence.
	got := Expand(date(2024, time.June, 1), nil, ledger.FrequencyMonthly, date(2024, time.June, 1))
	assert.Equal(t, []time.Time{date(2024, time.June, 1)}, got)
}

func TestExpand_Deterministic(t *testing.T) {
	start := date(2023, time.March, 15)
	upper := date(2024, time.March, 15)

	first := Expand(start, nil, ledger.FrequencyMonthly, upper)
	second := Expand(start, nil, ledger.FrequencyMonthly, upper)

	assert.Equal(t, first, second)
	for i := 1; i < len(first); i++ {
		assert.True(t, first[i].After(first[i-1]), "sequence must be strictly ascending")
	}
}

func TestExpand_PreservesTimeOfDayAndZone(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*60*60)
	start := time.Date(2024, time.May, 10, 9, 30, 0, 0, loc)

	got := Expand(start, nil, ledger.FrequencyMonthly, time.Date(2024, time.July, 31, 0, 0, 0, 0, loc))

	assert.Len(t, got, 3)
	for _, occ := range got {
		h, m, _ := occ.Clock()
		assert.Equal(t, 9, h)
		assert.Equal(t, 30, m)
		assert.Equal(t, loc, occ.Location())
	}
}
