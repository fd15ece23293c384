package stats

import (
	"testing"
	"time"

	"github.com/pressplan/pressplan/internal/label"
	"github.com/pressplan/pressplan/internal/models"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func itemOn(d time.Time, status string) models.ScheduledItem {
	return models.ScheduledItem{Date: d, Status: status}
}

func extraOn(d time.Time, status string) models.ScheduledItem {
	it := itemOn(d, status)
	it.IsExtra = true
	return it
}

func findDay(t *testing.T, r Report, d time.Time) Day {
	t.Helper()
	for _, row := range r.Days {
		if row.Date.Equal(d) {
			return row
		}
	}
	t.Fatalf("no day row for %v", d)
	return Day{}
}

func TestComputeMonth_DayRows(t *testing.T) {
	items := []models.ScheduledItem{
		itemOn(day(2026, 2, 11), label.StatusTodo),
		itemOn(day(2026, 2, 11), label.StatusDone),
		itemOn(day(2026, 2, 11), label.StatusTodo),
	}
	r := ComputeMonth(items, 2026, time.February)

	wed := findDay(t, r, day(2026, 2, 11))
	if wed.Total != 3 || wed.Done != 1 || wed.RemainingCount != 2 {
		t.Errorf("day row = %+v", wed)
	}
	if wed.RemainingPct != 67 {
		t.Errorf("RemainingPct = %d, want 67 (2/3 rounded)", wed.RemainingPct)
	}

	empty := findDay(t, r, day(2026, 2, 12))
	if empty.Total != 0 || empty.RemainingPct != 0 {
		t.Errorf("empty day row = %+v, want zeroes", empty)
	}
}

func TestComputeMonth_WeekendExcludedFromDayView(t *testing.T) {
	// 2026-02-14 is a Saturday; only extra items ever land there.
	items := []models.ScheduledItem{
		extraOn(day(2026, 2, 14), label.StatusTodo),
	}
	r := ComputeMonth(items, 2026, time.February)

	for _, row := range r.Days {
		wd := row.Date.Weekday()
		if wd == time.Saturday || wd == time.Sunday {
			t.Errorf("day view contains weekend date %v", row.Date)
		}
	}

	// February 2026 has 20 weekdays.
	if len(r.Days) != 20 {
		t.Errorf("len(Days) = %d, want 20", len(r.Days))
	}

	// The weekend item still counts toward its week and the month.
	if r.Month.Total != 1 {
		t.Errorf("Month.Total = %d, want 1", r.Month.Total)
	}
	var weekTotal int
	for _, w := range r.Weeks {
		if w.Monday.Equal(day(2026, 2, 9)) {
			weekTotal = w.Total
		}
	}
	if weekTotal != 1 {
		t.Errorf("week of Feb 9 total = %d, want 1", weekTotal)
	}
}

func TestComputeMonth_WeekGrouping(t *testing.T) {
	items := []models.ScheduledItem{
		itemOn(day(2026, 2, 2), label.StatusDone),  // week of Feb 2
		itemOn(day(2026, 2, 6), label.StatusTodo),  // week of Feb 2
		itemOn(day(2026, 2, 9), label.StatusTodo),  // week of Feb 9
		itemOn(day(2026, 2, 27), label.StatusDone), // week of Feb 23
	}
	r := ComputeMonth(items, 2026, time.February)

	if len(r.Weeks) != 3 {
		t.Fatalf("len(Weeks) = %d, want 3", len(r.Weeks))
	}
	first := r.Weeks[0]
	if !first.Monday.Equal(day(2026, 2, 2)) || first.Total != 2 || first.Done != 1 {
		t.Errorf("first week = %+v", first)
	}
	last := r.Weeks[2]
	if !last.Monday.Equal(day(2026, 2, 23)) || last.Total != 1 || last.Done != 1 {
		t.Errorf("last week = %+v", last)
	}

	if r.Month.Total != 4 || r.Month.Done != 2 {
		t.Errorf("month = %+v", r.Month)
	}
}

func TestCompute_IgnoresOutOfRangeItems(t *testing.T) {
	items := []models.ScheduledItem{
		itemOn(day(2026, 1, 31), label.StatusTodo),
		itemOn(day(2026, 3, 1), label.StatusTodo),
		itemOn(day(2026, 2, 10), label.StatusTodo),
	}
	r := ComputeMonth(items, 2026, time.February)
	if r.Month.Total != 1 {
		t.Errorf("Month.Total = %d, want 1", r.Month.Total)
	}
}

func TestRemainingPct_Rounding(t *testing.T) {
	cases := []struct {
		total, done, want int
	}{
		{0, 0, 0},
		{4, 4, 0},
		{4, 0, 100},
		{3, 1, 67},
		{3, 2, 33},
		{8, 3, 63}, // 62.5 rounds half away from zero
	}
	for _, tc := range cases {
		if got := remainingPct(tc.total, tc.done); got != tc.want {
			t.Errorf("remainingPct(%d, %d) = %d, want %d", tc.total, tc.done, got, tc.want)
		}
	}
}
