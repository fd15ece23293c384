// Package recurrence maps a client's monthly content cadence to the set of
// calendar dates the month-fill jobs should schedule.
package recurrence

import (
	"sort"
	"time"
)

// Cadences lists the cadence values that trigger auto-scheduling. Any other
// value yields no target dates.
var Cadences = []int{4, 6, 8, 12}

// Scheduled reports whether a cadence value is auto-scheduled.
func Scheduled(cadence int) bool {
	for _, c := range Cadences {
		if c == cadence {
			return true
		}
	}
	return false
}

// TargetDates returns the target dates for a (year, month, cadence) triple,
// sorted ascending, all at UTC midnight. Weekday numbering is ISO
// (Monday=1..Sunday=7). The mapping is:
//
//	4:  every Wednesday, capped at the first 4
//	6:  1st and 3rd Wednesday, plus the first Tuesday and Thursday in
//	    days 8-14 and in days 22-28
//	8:  every Tuesday and Thursday
//	12: every Monday, Wednesday and Friday
//
// A week-window truncated by the month boundary drops its slot; the result
// never contains a date outside the month.
func TargetDates(year int, month time.Month, cadence int) []time.Time {
	switch cadence {
	case 4:
		weds := weekdayDates(year, month, time.Wednesday)
		if len(weds) > 4 {
			weds = weds[:4]
		}
		return weds
	case 6:
		var dates []time.Time
		weds := weekdayDates(year, month, time.Wednesday)
		if len(weds) >= 1 {
			dates = append(dates, weds[0])
		}
		if len(weds) >= 3 {
			dates = append(dates, weds[2])
		}
		for _, window := range [][2]int{{8, 14}, {22, 28}} {
			if d, ok := firstInWindow(year, month, time.Tuesday, window[0], window[1]); ok {
				dates = append(dates, d)
			}
			if d, ok := firstInWindow(year, month, time.Thursday, window[0], window[1]); ok {
				dates = append(dates, d)
			}
		}
		sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
		return dates
	case 8:
		return merge(
			weekdayDates(year, month, time.Tuesday),
			weekdayDates(year, month, time.Thursday),
		)
	case 12:
		return merge(
			weekdayDates(year, month, time.Monday),
			weekdayDates(year, month, time.Wednesday),
			weekdayDates(year, month, time.Friday),
		)
	}
	return nil
}

// DaysIn returns the number of days in a month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// weekdayDates returns every date in the month falling on wd, ascending.
func weekdayDates(year int, month time.Month, wd time.Weekday) []time.Time {
	var dates []time.Time
	for day := 1; day <= DaysIn(year, month); day++ {
		d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if d.Weekday() == wd {
			dates = append(dates, d)
		}
	}
	return dates
}

// firstInWindow returns the first date with weekday wd in day range [lo, hi],
// clamped to the month. ok is false when the window holds no such day.
func firstInWindow(year int, month time.Month, wd time.Weekday, lo, hi int) (time.Time, bool) {
	if hi > DaysIn(year, month) {
		hi = DaysIn(year, month)
	}
	for day := lo; day <= hi; day++ {
		d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if d.Weekday() == wd {
			return d, true
		}
	}
	return time.Time{}, false
}

func merge(lists ...[]time.Time) []time.Time {
	var all []time.Time
	for _, l := range lists {
		all = append(all, l...)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Before(all[j]) })
	return all
}
