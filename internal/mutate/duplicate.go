package mutate

import (
	"fmt"
	"time"

	"github.com/pressplan/pressplan/internal/item"
	"github.com/pressplan/pressplan/internal/label"
	"github.com/pressplan/pressplan/internal/models"
	"github.com/pressplan/pressplan/internal/ordering"
	"gorm.io/gorm"
)

// copySuffix marks duplicated items in the calendar.
const copySuffix = " (copy)"

// Duplicate copies an item to a target placement. The copy gets a fresh id,
// always starts at status todo, takes the next sort order at the end of the
// target bucket, and carries a suffixed title. The source bucket is not
// touched.
func Duplicate(db *gorm.DB, actorID, id string, targetDate time.Time, targetExtra bool) (*models.ScheduledItem, error) {
	if targetDate.IsZero() {
		return nil, fmt.Errorf("%w: target date is required", item.ErrValidation)
	}

	var dup models.ScheduledItem
	err := db.Transaction(func(tx *gorm.DB) error {
		src, err := item.Get(tx, id)
		if err != nil {
			return err
		}
		if err := item.RequireEdit(actorID, src); err != nil {
			return err
		}

		newID, err := GenerateID()
		if err != nil {
			return err
		}
		dup = *src
		dup.ID = newID
		dup.Date = targetDate
		dup.IsExtra = targetExtra
		dup.Title = src.Title + copySuffix
		dup.Status = label.StatusTodo
		dup.CreatedAt = time.Time{}
		dup.UpdatedAt = time.Time{}
		// A done source would leave the copy with label done against status
		// todo; reset the label so the invariant holds.
		if label.Effective(src) == label.Done {
			todo := label.ToDo
			dup.Label = &todo
		}

		next, err := ordering.Append(tx, ordering.For(&dup))
		if err != nil {
			return err
		}
		dup.SortOrder = next

		if err := tx.Create(&dup).Error; err != nil {
			return fmt.Errorf("mutate: duplicate item %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &dup, nil
}
