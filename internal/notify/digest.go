package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/pressplan/pressplan/internal/stats"
)

// DailyDigest renders one day's completion picture for a chat channel.
// Weekend days carry no day row; the digest then only reports week and month.
func DailyDigest(owner string, date time.Time, r stats.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Schedule for %s — %s", owner, date.Format("Mon Jan 2"))

	for _, d := range r.Days {
		if !d.Date.Equal(date) {
			continue
		}
		if d.Total == 0 {
			b.WriteString("\nToday: nothing scheduled")
		} else {
			fmt.Fprintf(&b, "\nToday: %d scheduled, %d done, %d remaining (%d%%)",
				d.Total, d.Done, d.RemainingCount, d.RemainingPct)
		}
		break
	}

	for _, w := range r.Weeks {
		if date.Before(w.Monday) || !date.Before(w.Monday.AddDate(0, 0, 7)) {
			continue
		}
		fmt.Fprintf(&b, "\nThis week: %d/%d done", w.Done, w.Total)
		break
	}

	fmt.Fprintf(&b, "\nMonth: %d/%d done", r.Month.Done, r.Month.Total)
	return b.String()
}
