package mutate

import (
	"errors"
	"fmt"
	"time"

	"github.com/pressplan/pressplan/internal/item"
	"github.com/pressplan/pressplan/internal/ordering"
	"gorm.io/gorm"
)

// Bulk operations apply the corresponding single-item operation to each id
// independently. Ids the caller may not edit, that fail validation, or that
// vanished mid-batch are silently skipped; the returned count holds the
// number of items actually mutated. Only structural failures (an empty id
// list, a broken store) surface as errors — multi-select gestures routinely
// mix items owned by different users and must not fail as a whole.

// skippable reports whether a per-item failure is excluded silently.
func skippable(err error) bool {
	return errors.Is(err, item.ErrUnauthorized) ||
		errors.Is(err, item.ErrNotFound) ||
		errors.Is(err, item.ErrValidation) ||
		errors.Is(err, ordering.ErrInvalidOrder)
}

func bulk(ids []string, apply func(id string) error) (int, error) {
	if len(ids) == 0 {
		return 0, fmt.Errorf("%w: empty id list", item.ErrValidation)
	}
	applied := 0
	for _, id := range ids {
		err := apply(id)
		if err == nil {
			applied++
			continue
		}
		if !skippable(err) {
			return applied, err
		}
	}
	return applied, nil
}

// BulkMove moves each item to the target placement.
func BulkMove(db *gorm.DB, actorID string, ids []string, targetDate time.Time, targetExtra bool) (int, error) {
	if targetDate.IsZero() {
		return 0, fmt.Errorf("%w: target date is required", item.ErrValidation)
	}
	return bulk(ids, func(id string) error {
		_, _, err := Update(db, nil, actorID, id, Patch{Date: &targetDate, IsExtra: &targetExtra})
		return err
	})
}

// BulkSetLabel assigns the label to each item.
func BulkSetLabel(db *gorm.DB, actorID string, ids []string, newLabel string) (int, error) {
	return bulk(ids, func(id string) error {
		_, _, err := SetLabel(db, actorID, id, newLabel)
		return err
	})
}

// BulkToggleDone flips completion on each item.
func BulkToggleDone(db *gorm.DB, actorID string, ids []string) (int, error) {
	return bulk(ids, func(id string) error {
		_, _, err := ToggleDone(db, actorID, id)
		return err
	})
}

// BulkDelete removes each item.
func BulkDelete(db *gorm.DB, actorID string, ids []string) (int, error) {
	return bulk(ids, func(id string) error {
		_, err := Delete(db, actorID, id)
		return err
	})
}
