package domain

import (
	"sort"
	"time"
)

// DateLayout is the wire format for all calendar dates in the system.
const DateLayout = "2006-01-02"

// periodLength is the number of days in a pay period.
const periodLength = 14

// anchorFriday is the first Friday of the biweekly anchor series. Every valid
// pay-period end is a whole multiple of 14 days away from it.
var anchorFriday = time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)

// PeriodEnd returns the end date (always a Friday) of the 14-day pay period
// containing ref, formatted YYYY-MM-DD. Deterministic and pure: the same
// reference date always yields the same period end, and the period end of a
// period-end date is itself.
func PeriodEnd(ref time.Time) string {
	day := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, time.UTC)

	// Most recent Friday on or before ref.
	wd := int(day.Weekday())
	back := wd + 2
	if wd >= int(time.Friday) {
		back = wd - int(time.Friday)
	}
	friday := day.AddDate(0, 0, -back)

	// Whole weeks from the anchor; an odd distance means this Friday ends the
	// first week of a period, so step back to the aligned boundary.
	days := int(friday.Sub(anchorFriday).Hours() / 24)
	if floorDiv(days, 7)%2 != 0 {
		friday = friday.AddDate(0, 0, -7)
	}
	return friday.Format(DateLayout)
}

// PeriodDays enumerates the 14 days of the period ending at endDate, oldest
// first. An unparseable endDate yields nil.
func PeriodDays(endDate string) []string {
	end, err := time.ParseInLocation(DateLayout, endDate, time.UTC)
	if err != nil {
		return nil
	}
	days := make([]string, 0, periodLength)
	for i := periodLength - 1; i >= 0; i-- {
		days = append(days, end.AddDate(0, 0, -i).Format(DateLayout))
	}
	return days
}

// PeriodEnds returns the selectable window of pay-period end dates around ref:
// 10 periods into the past, the current one, and 2 into the future, sorted
// descending (most recent first).
func PeriodEnds(ref time.Time) []string {
	current, err := time.ParseInLocation(DateLayout, PeriodEnd(ref), time.UTC)
	if err != nil {
		return nil
	}
	seen := make(map[string]struct{})
	ends := make([]string, 0, 13)
	for i := -10; i <= 2; i++ {
		d := current.AddDate(0, 0, i*periodLength).Format(DateLayout)
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		ends = append(ends, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(ends)))
	return ends
}

// floorDiv divides rounding toward negative infinity, matching calendar
// arithmetic for dates before the anchor.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
