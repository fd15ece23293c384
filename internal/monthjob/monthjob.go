// Package monthjob implements the calendar-level bulk jobs: filling a month
// from client cadence settings and emptying it again.
package monthjob

import (
	"errors"
	"fmt"
	"time"

	"github.com/pressplan/pressplan/internal/clientdir"
	"github.com/pressplan/pressplan/internal/item"
	"github.com/pressplan/pressplan/internal/label"
	"github.com/pressplan/pressplan/internal/models"
	"github.com/pressplan/pressplan/internal/mutate"
	"github.com/pressplan/pressplan/internal/ordering"
	"github.com/pressplan/pressplan/internal/recurrence"
	"gorm.io/gorm"
)

// ErrAlreadyFilled reports a per-client fill that found no remaining gap.
// The caller surfaces it distinctly from "some work done".
var ErrAlreadyFilled = errors.New("monthjob: month already filled")

// FillMonth creates the missing auto-scheduled items for every client of the
// owner with a scheduling cadence. A target date already holding a non-extra
// item for that (owner, client) pair is skipped, which makes the job
// idempotent. Returns the number of items created.
func FillMonth(db *gorm.DB, ownerID string, year int, month time.Month) (int, error) {
	settings, err := clientdir.Settings(db, ownerID)
	if err != nil {
		return 0, err
	}
	created := 0
	for _, s := range settings {
		if !recurrence.Scheduled(s.ContentsPerWeek) {
			continue
		}
		n, err := fillClient(db, ownerID, s.ClientID, s.ContentsPerWeek, year, month, false)
		if err != nil {
			return created, err
		}
		created += n
	}
	return created, nil
}

// FillMonthForClient fills one client's month. Beyond the date-taken check
// it verifies each ISO week's required count before inserting, so manually
// added items count toward a week's quota. When the whole month is already
// covered it fails with ErrAlreadyFilled instead of silently doing nothing.
func FillMonthForClient(db *gorm.DB, ownerID, clientID string, year int, month time.Month) (int, error) {
	setting, err := clientdir.Setting(db, ownerID, clientID)
	if err != nil {
		return 0, err
	}
	if !recurrence.Scheduled(setting.ContentsPerWeek) {
		return 0, fmt.Errorf("%w: client %s has no scheduling cadence", item.ErrValidation, clientID)
	}
	created, err := fillClient(db, ownerID, clientID, setting.ContentsPerWeek, year, month, true)
	if err != nil {
		return created, err
	}
	if created == 0 {
		return 0, fmt.Errorf("%w: %s %d-%02d for client %s", ErrAlreadyFilled, ownerID, year, month, clientID)
	}
	return created, nil
}

// fillClient inserts the client's missing target dates. With weekQuota set,
// a date is also skipped when its ISO week already meets the week's target
// count.
func fillClient(db *gorm.DB, ownerID, clientID string, cadence, year int, month time.Month, weekQuota bool) (int, error) {
	client, err := clientdir.Resolve(db, clientID)
	if err != nil {
		return 0, err
	}
	dates := recurrence.TargetDates(year, month, cadence)

	weekTarget := map[time.Time]int{}
	for _, d := range dates {
		weekTarget[ordering.WeekMonday(d)]++
	}
	weekHave := map[time.Time]int{}
	if weekQuota {
		for monday := range weekTarget {
			n, err := countWeek(db, ownerID, clientID, monday, year, month)
			if err != nil {
				return 0, err
			}
			weekHave[monday] = n
		}
	}

	created := 0
	for _, d := range dates {
		monday := ordering.WeekMonday(d)
		if weekQuota && weekHave[monday] >= weekTarget[monday] {
			continue
		}
		existing, err := item.ListOwnedOnDate(db, ownerID, clientID, d)
		if err != nil {
			return created, err
		}
		if len(existing) > 0 {
			continue
		}
		_, err = mutate.Create(db, nil, ownerID, mutate.CreateInput{
			OwnerID:  ownerID,
			ClientID: clientID,
			Date:     d,
			Kind:     mutate.KindContent,
			Type:     "post",
			Title:    client.Name,
			Label:    label.ToDo,
		})
		if err != nil {
			return created, err
		}
		created++
		weekHave[monday]++
	}
	return created, nil
}

// countWeek counts the client's non-extra items in the ISO week, clipped to
// the month being filled.
func countWeek(db *gorm.DB, ownerID, clientID string, monday time.Time, year int, month time.Month) (int, error) {
	from, to := item.MonthRange(year, month)
	if monday.After(from) {
		from = monday
	}
	if end := monday.AddDate(0, 0, 7); end.Before(to) {
		to = end
	}
	var n int64
	err := db.Model(&models.ScheduledItem{}).
		Where("owner_id = ? AND client_id = ? AND is_extra = ?", ownerID, clientID, false).
		Where("date >= ? AND date < ?", from, to).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("monthjob: count week of %s: %w", monday.Format("2006-01-02"), err)
	}
	return int(n), nil
}

// EmptyMonth deletes every item the owner has in the month, optionally
// scoped to one client. Permanent and outside the undo model; callers must
// confirm before invoking it. Returns the number of deleted items.
func EmptyMonth(db *gorm.DB, ownerID string, year int, month time.Month, clientID string) (int64, error) {
	from, to := item.MonthRange(year, month)
	q := db.Where("owner_id = ?", ownerID).Where("date >= ? AND date < ?", from, to)
	if clientID != "" {
		q = q.Where("client_id = ?", clientID)
	}
	result := q.Delete(&models.ScheduledItem{})
	if result.Error != nil {
		return 0, fmt.Errorf("monthjob: empty %d-%02d for %s: %w", year, month, ownerID, result.Error)
	}
	return result.RowsAffected, nil
}
