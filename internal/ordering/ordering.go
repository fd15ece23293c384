// Package ordering maintains the per-bucket sortOrder invariant for
// scheduled items: within one bucket the sort orders assigned by Reorder are
// exactly 0..n-1, and Append always places a new item after every member.
package ordering

import (
	"errors"
	"fmt"
	"time"

	"github.com/pressplan/pressplan/internal/models"
	"gorm.io/gorm"
)

// ErrInvalidOrder is returned by Reorder when the supplied id sequence is not
// exactly the bucket's current member set.
var ErrInvalidOrder = errors.New("ordering: invalid order")

// Bucket identifies one ordering scope. Non-extra items bucket on their
// calendar day; extra items bucket on their ISO week's Monday.
type Bucket struct {
	OwnerID string
	DateKey time.Time
	Extra   bool
}

// For computes the bucket an item currently belongs to.
func For(it *models.ScheduledItem) Bucket {
	day := it.Day()
	if it.IsExtra {
		return Bucket{OwnerID: it.OwnerID, DateKey: WeekMonday(day), Extra: true}
	}
	return Bucket{OwnerID: it.OwnerID, DateKey: day, Extra: false}
}

// At computes the bucket a date/isExtra placement maps to for an owner.
func At(ownerID string, date time.Time, extra bool) Bucket {
	it := models.ScheduledItem{OwnerID: ownerID, Date: date, IsExtra: extra}
	return For(&it)
}

// WeekMonday returns the Monday of d's ISO week at UTC midnight.
func WeekMonday(d time.Time) time.Time {
	y, m, day := d.Date()
	d = time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	wd := int(d.Weekday())
	if wd == 0 {
		wd = 7 // ISO numbering: Sunday is 7, not 0
	}
	return d.AddDate(0, 0, -(wd - 1))
}

// scope narrows a query to the bucket's current members.
func scope(tx *gorm.DB, b Bucket) *gorm.DB {
	q := tx.Model(&models.ScheduledItem{}).
		Where("owner_id = ? AND is_extra = ?", b.OwnerID, b.Extra)
	if b.Extra {
		return q.Where("date >= ? AND date < ?", b.DateKey, b.DateKey.AddDate(0, 0, 7))
	}
	return q.Where("date >= ? AND date < ?", b.DateKey, b.DateKey.AddDate(0, 0, 1))
}

// Append returns the sort order for a new item entering the bucket:
// max(existing)+1, or 0 for an empty bucket. The caller persists it.
func Append(tx *gorm.DB, b Bucket) (int, error) {
	var next int
	err := scope(tx, b).Select("COALESCE(MAX(sort_order), -1) + 1").Scan(&next).Error
	if err != nil {
		return 0, fmt.Errorf("ordering: next sort order: %w", err)
	}
	return next, nil
}

// SlotTaken reports whether some bucket member already holds the given
// sort order.
func SlotTaken(tx *gorm.DB, b Bucket, slot int) (bool, error) {
	var n int64
	if err := scope(tx, b).Where("sort_order = ?", slot).Count(&n).Error; err != nil {
		return false, fmt.Errorf("ordering: check slot %d: %w", slot, err)
	}
	return n > 0, nil
}

// Members returns the bucket's items in display order.
func Members(tx *gorm.DB, b Bucket) ([]models.ScheduledItem, error) {
	var items []models.ScheduledItem
	if err := scope(tx, b).Order("sort_order ASC, id ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("ordering: list bucket members: %w", err)
	}
	return items, nil
}

// Reorder assigns sortOrder = index for each id in orderedIDs. The sequence
// must be exactly the bucket's current member set (same size, same
// identities); otherwise ErrInvalidOrder is returned and nothing changes.
// This is the point where gaps left by deletes and cross-bucket moves get
// repaired.
func Reorder(tx *gorm.DB, b Bucket, orderedIDs []string) error {
	members, err := Members(tx, b)
	if err != nil {
		return err
	}
	if len(members) != len(orderedIDs) {
		return fmt.Errorf("%w: got %d ids, bucket has %d items", ErrInvalidOrder, len(orderedIDs), len(members))
	}
	current := make(map[string]bool, len(members))
	for _, m := range members {
		current[m.ID] = true
	}
	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !current[id] {
			return fmt.Errorf("%w: %s is not in the bucket", ErrInvalidOrder, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate id %s", ErrInvalidOrder, id)
		}
		seen[id] = true
	}

	for idx, id := range orderedIDs {
		if err := tx.Model(&models.ScheduledItem{}).Where("id = ?", id).
			Update("sort_order", idx).Error; err != nil {
			return fmt.Errorf("ordering: set sort order for %s: %w", id, err)
		}
	}
	return nil
}
