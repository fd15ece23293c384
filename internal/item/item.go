// Package item provides read access to scheduled items: loading,
// visibility-scoped listing, and edit-rights checks.
package item

import (
	"errors"
	"fmt"
	"time"

	"github.com/pressplan/pressplan/internal/models"
	"gorm.io/gorm"
)

// Error taxonomy shared by the mutation engine and the HTTP facade.
var (
	// ErrUnauthorized means the caller is neither owner nor assignee of the
	// target item(s).
	ErrUnauthorized = errors.New("item: edit rights required")
	// ErrNotFound covers missing items and missing client/work references.
	ErrNotFound = errors.New("item: not found")
	// ErrValidation covers malformed input: bad date, unknown label or type,
	// empty title.
	ErrValidation = errors.New("item: invalid input")
)

// Get loads one item by id.
func Get(db *gorm.DB, id string) (*models.ScheduledItem, error) {
	var it models.ScheduledItem
	if err := db.First(&it, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: item %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("item: load %s: %w", id, err)
	}
	return &it, nil
}

// CanEdit reports whether userID holds edit rights on the item: the owner or
// the assignee, nobody else.
func CanEdit(userID string, it *models.ScheduledItem) bool {
	if userID == "" {
		return false
	}
	if it.OwnerID == userID {
		return true
	}
	return it.AssignedTo != nil && *it.AssignedTo == userID
}

// RequireEdit returns ErrUnauthorized unless userID can edit the item.
func RequireEdit(userID string, it *models.ScheduledItem) error {
	if !CanEdit(userID, it) {
		return fmt.Errorf("%w: user %s on item %s", ErrUnauthorized, userID, it.ID)
	}
	return nil
}

// MonthRange returns the [from, to) bounds of a calendar month.
func MonthRange(year int, month time.Month) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// ListMonth returns every item visible to viewerID in the month: items the
// viewer owns plus items delegated to them, in calendar display order.
func ListMonth(db *gorm.DB, viewerID string, year int, month time.Month) ([]models.ScheduledItem, error) {
	from, to := MonthRange(year, month)
	return ListRange(db, viewerID, from, to)
}

// ListRange is ListMonth over an arbitrary [from, to) date range.
func ListRange(db *gorm.DB, viewerID string, from, to time.Time) ([]models.ScheduledItem, error) {
	var items []models.ScheduledItem
	err := db.
		Where("owner_id = ? OR assigned_to = ?", viewerID, viewerID).
		Where("date >= ? AND date < ?", from, to).
		Order("date ASC, is_extra ASC, sort_order ASC, id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("item: list range: %w", err)
	}
	return items, nil
}

// ListOwnedOnDate returns the owner's non-extra items for one client on one
// day. The month-fill jobs use it to decide whether a target date is taken.
func ListOwnedOnDate(db *gorm.DB, ownerID, clientID string, date time.Time) ([]models.ScheduledItem, error) {
	var items []models.ScheduledItem
	err := db.
		Where("owner_id = ? AND client_id = ? AND is_extra = ?", ownerID, clientID, false).
		Where("date >= ? AND date < ?", date, date.AddDate(0, 0, 1)).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("item: list on date: %w", err)
	}
	return items, nil
}
