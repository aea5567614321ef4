package domain

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPeriodEnd_AnchorFriday(t *testing.T) {
	if got := PeriodEnd(date(2024, time.January, 5)); got != "2024-01-05" {
		t.Fatalf("expected 2024-01-05, got %s", got)
	}
}

func TestPeriodEnd_AlignsToBiweeklySeries(t *testing.T) {
	cases := []struct {
		ref  time.Time
		want string
	}{
		// the Friday one week after the anchor aligns back to the anchor
		{date(2024, time.January, 12), "2024-01-05"},
		// two weeks after the anchor starts a new period end
		{date(2024, time.January, 19), "2024-01-19"},
		// mid-week days resolve through the most recent Friday
		{date(2024, time.January, 18), "2024-01-05"},
		{date(2024, time.January, 20), "2024-01-19"},
		// dates before the anchor align to the preceding boundary
		{date(2023, time.December, 29), "2023-12-22"},
	}
	for _, tc := range cases {
		if got := PeriodEnd(tc.ref); got != tc.want {
			t.Errorf("PeriodEnd(%s) = %s, want %s", tc.ref.Format(DateLayout), got, tc.want)
		}
	}
}

func TestPeriodEnd_AlwaysFriday(t *testing.T) {
	ref := date(2024, time.March, 1)
	for i := 0; i < 60; i++ {
		day := ref.AddDate(0, 0, i)
		end, err := time.ParseInLocation(DateLayout, PeriodEnd(day), time.UTC)
		if err != nil {
			t.Fatalf("unparseable period end for %s: %v", day.Format(DateLayout), err)
		}
		if end.Weekday() != time.Friday {
			t.Fatalf("PeriodEnd(%s) = %s is a %s, not a Friday",
				day.Format(DateLayout), end.Format(DateLayout), end.Weekday())
		}
	}
}

func TestPeriodEnd_IdempotentOnBoundaries(t *testing.T) {
	ref := date(2024, time.February, 10)
	end := PeriodEnd(ref)
	endDay, _ := time.ParseInLocation(DateLayout, end, time.UTC)
	if again := PeriodEnd(endDay); again != end {
		t.Fatalf("PeriodEnd(PeriodEnd(ref)) = %s, want %s", again, end)
	}
}

func TestPeriodDays(t *testing.T) {
	days := PeriodDays("2024-01-19")
	if len(days) != 14 {
		t.Fatalf("expected 14 days, got %d", len(days))
	}
	if days[0] != "2024-01-06" {
		t.Errorf("first day = %s, want 2024-01-06", days[0])
	}
	if days[13] != "2024-01-19" {
		t.Errorf("last day = %s, want 2024-01-19", days[13])
	}
	for i := 1; i < len(days); i++ {
		if days[i] <= days[i-1] {
			t.Fatalf("days not strictly ascending at %d: %s then %s", i, days[i-1], days[i])
		}
	}
}

func TestPeriodDays_BadDate(t *testing.T) {
	if days := PeriodDays("not-a-date"); days != nil {
		t.Fatalf("expected nil for unparseable date, got %v", days)
	}
}

func TestPeriodEnds_Window(t *testing.T) {
	ends := PeriodEnds(date(2024, time.January, 5))
	if len(ends) != 13 {
		t.Fatalf("expected 13 periods, got %d", len(ends))
	}
	if ends[0] != "2024-02-02" {
		t.Errorf("newest period = %s, want 2024-02-02", ends[0])
	}
	if ends[len(ends)-1] != "2023-08-18" {
		t.Errorf("oldest period = %s, want 2023-08-18", ends[len(ends)-1])
	}

	seen := make(map[string]struct{})
	for i, end := range ends {
		if i > 0 && ends[i] >= ends[i-1] {
			t.Fatalf("periods not strictly descending at %d", i)
		}
		if _, dup := seen[end]; dup {
			t.Fatalf("duplicate period %s", end)
		}
		seen[end] = struct{}{}
	}
}

func TestPeriodEnds_ContainsCurrent(t *testing.T) {
	ref := date(2024, time.April, 3)
	current := PeriodEnd(ref)
	for _, end := range PeriodEnds(ref) {
		if end == current {
			return
		}
	}
	t.Fatalf("current period %s missing from window", current)
}
