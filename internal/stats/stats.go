// Package stats computes point-in-time completion aggregates over a
// visibility scope's items. Everything here is pure: recomputed per read,
// no persistent state.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/pressplan/pressplan/internal/label"
	"github.com/pressplan/pressplan/internal/models"
	"github.com/pressplan/pressplan/internal/ordering"
)

// Day is one weekday column's totals.
type Day struct {
	Date           time.Time `json:"date"`
	Total          int       `json:"total"`
	Done           int       `json:"done"`
	RemainingCount int       `json:"remainingCount"`
	RemainingPct   int       `json:"remainingPct"`
}

// Week is one ISO week's totals, keyed by its Monday.
type Week struct {
	Monday time.Time `json:"monday"`
	Total  int       `json:"total"`
	Done   int       `json:"done"`
}

// Month is the range-level total.
type Month struct {
	Total int `json:"total"`
	Done  int `json:"done"`
}

// Report holds the three aggregation levels for one date range.
type Report struct {
	Days  []Day  `json:"days"`
	Weeks []Week `json:"weeks"`
	Month Month  `json:"month"`
}

// Compute aggregates items over [from, to). Day rows cover every non-weekend
// date in the range, present or not, since the calendar renders empty
// columns too; weekend dates only ever hold extra items and are excluded
// from the day view but still count toward their week and the month.
func Compute(items []models.ScheduledItem, from, to time.Time) Report {
	byDay := map[time.Time]*Day{}
	byWeek := map[time.Time]*Week{}
	var month Month

	for _, it := range items {
		d := it.Day()
		if d.Before(from) || !d.Before(to) {
			continue
		}
		done := it.Status == label.StatusDone

		month.Total++
		if done {
			month.Done++
		}

		monday := ordering.WeekMonday(d)
		w := byWeek[monday]
		if w == nil {
			w = &Week{Monday: monday}
			byWeek[monday] = w
		}
		w.Total++
		if done {
			w.Done++
		}

		if weekend(d) {
			continue
		}
		day := byDay[d]
		if day == nil {
			day = &Day{Date: d}
			byDay[d] = day
		}
		day.Total++
		if done {
			day.Done++
		}
	}

	var report Report
	report.Month = month
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		if weekend(d) {
			continue
		}
		day := byDay[d]
		if day == nil {
			day = &Day{Date: d}
		}
		day.RemainingCount = day.Total - day.Done
		day.RemainingPct = remainingPct(day.Total, day.Done)
		report.Days = append(report.Days, *day)
	}
	for _, w := range byWeek {
		report.Weeks = append(report.Weeks, *w)
	}
	sort.Slice(report.Weeks, func(i, j int) bool {
		return report.Weeks[i].Monday.Before(report.Weeks[j].Monday)
	})
	return report
}

// ComputeMonth is Compute over one calendar month.
func ComputeMonth(items []models.ScheduledItem, year int, month time.Month) Report {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Compute(items, from, from.AddDate(0, 1, 0))
}

func weekend(d time.Time) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

func remainingPct(total, done int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(total-done) / float64(total) * 100))
}
