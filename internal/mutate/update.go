package mutate

import (
	"fmt"
	"time"

	"github.com/pressplan/pressplan/internal/clientdir"
	"github.com/pressplan/pressplan/internal/item"
	"github.com/pressplan/pressplan/internal/label"
	"github.com/pressplan/pressplan/internal/models"
	"github.com/pressplan/pressplan/internal/ordering"
	"github.com/pressplan/pressplan/internal/worktracker"
	"gorm.io/gorm"
)

// Patch is a partial update. Nil fields are left untouched. An empty string
// in AssignedTo or WorkID clears the reference.
type Patch struct {
	Date        *time.Time
	IsExtra     *bool
	ClientID    *string
	Kind        *string
	Type        *string
	Title       *string
	Description *string
	AssignedTo  *string
	WorkID      *string
	Label       *string
	Status      *string
	Priority    *string
}

// Update applies a partial patch to an item. When the patch changes the
// item's date or extra flag the item changes bucket: it is appended at the
// end of the destination bucket and the source bucket keeps its gap. A
// non-empty WorkID must resolve in the work tracker. Label and status are
// kept agreeing: patching either one alone adjusts the other.
func Update(db *gorm.DB, tracker worktracker.Tracker, actorID, id string, p Patch) (updated, prev *models.ScheduledItem, err error) {
	err = db.Transaction(func(tx *gorm.DB) error {
		it, err := item.Get(tx, id)
		if err != nil {
			return err
		}
		if err := item.RequireEdit(actorID, it); err != nil {
			return err
		}
		before := *it
		prev = &before

		updates, err := buildUpdates(tx, tracker, it, p)
		if err != nil {
			return err
		}
		if len(updates) == 0 {
			updated = it
			return nil
		}
		if err := tx.Model(&models.ScheduledItem{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("mutate: update item %s: %w", id, err)
		}
		updated, err = item.Get(tx, id)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return updated, prev, nil
}

// buildUpdates validates the patch against the current row and returns the
// column assignments, including a recomputed sort order on bucket change.
func buildUpdates(tx *gorm.DB, tracker worktracker.Tracker, it *models.ScheduledItem, p Patch) (map[string]interface{}, error) {
	updates := map[string]interface{}{}

	if p.Title != nil {
		if *p.Title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", item.ErrValidation)
		}
		updates["title"] = *p.Title
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.Kind != nil {
		if !validKind(*p.Kind) {
			return nil, fmt.Errorf("%w: unknown kind %q", item.ErrValidation, *p.Kind)
		}
		updates["kind"] = *p.Kind
	}
	if p.Type != nil {
		if !validType(*p.Type) {
			return nil, fmt.Errorf("%w: unknown type %q", item.ErrValidation, *p.Type)
		}
		updates["type"] = *p.Type
	}
	if p.ClientID != nil {
		if _, err := clientdir.Resolve(tx, *p.ClientID); err != nil {
			return nil, err
		}
		updates["client_id"] = *p.ClientID
	}
	if p.AssignedTo != nil {
		if *p.AssignedTo == "" {
			updates["assigned_to"] = nil
		} else {
			updates["assigned_to"] = *p.AssignedTo
		}
	}
	if p.WorkID != nil {
		if *p.WorkID == "" {
			updates["work_id"] = nil
		} else {
			if err := requireWork(tx, tracker, *p.WorkID); err != nil {
				return nil, err
			}
			updates["work_id"] = *p.WorkID
		}
	}
	if p.Priority != nil {
		if *p.Priority == "" {
			updates["priority"] = nil
		} else {
			updates["priority"] = *p.Priority
		}
	}

	if err := applyLabelStatus(it, p, updates); err != nil {
		return nil, err
	}
	if err := applyPlacement(tx, it, p, updates); err != nil {
		return nil, err
	}
	return updates, nil
}

// applyLabelStatus folds label/status patches into updates while preserving
// the label DONE ⇔ status done invariant.
func applyLabelStatus(it *models.ScheduledItem, p Patch, updates map[string]interface{}) error {
	if p.Label == nil && p.Status == nil {
		return nil
	}
	if p.Label != nil && !label.Valid(*p.Label) {
		return fmt.Errorf("%w: unknown label %q", item.ErrValidation, *p.Label)
	}
	if p.Status != nil && *p.Status != label.StatusTodo && *p.Status != label.StatusDone {
		return fmt.Errorf("%w: unknown status %q", item.ErrValidation, *p.Status)
	}

	switch {
	case p.Label != nil && p.Status != nil:
		// Label wins when the pair disagrees, same as SetLabel.
		updates["label"] = *p.Label
		if *p.Label == label.Done {
			updates["status"] = label.StatusDone
		} else if *p.Status == label.StatusDone {
			updates["status"] = label.StatusTodo
		} else {
			updates["status"] = *p.Status
		}
	case p.Label != nil:
		updates["label"] = *p.Label
		if *p.Label == label.Done {
			updates["status"] = label.StatusDone
		} else if it.Status == label.StatusDone {
			updates["status"] = label.StatusTodo
		}
	default: // p.Status != nil
		updates["status"] = *p.Status
		if *p.Status == label.StatusDone {
			updates["label"] = label.Done
		} else if label.Effective(it) == label.Done {
			updates["label"] = label.ToDo
		}
	}
	return nil
}

// applyPlacement handles date/isExtra changes. A bucket change appends the
// item into the destination; the source bucket is left with a gap.
func applyPlacement(tx *gorm.DB, it *models.ScheduledItem, p Patch, updates map[string]interface{}) error {
	if p.Date == nil && p.IsExtra == nil {
		return nil
	}
	newDate := it.Date
	if p.Date != nil {
		if p.Date.IsZero() {
			return fmt.Errorf("%w: date must not be zero", item.ErrValidation)
		}
		newDate = *p.Date
		updates["date"] = *p.Date
	}
	newExtra := it.IsExtra
	if p.IsExtra != nil {
		newExtra = *p.IsExtra
		updates["is_extra"] = *p.IsExtra
	}

	dest := ordering.At(it.OwnerID, newDate, newExtra)
	cur := ordering.For(it)
	if dest.Extra == cur.Extra && dest.DateKey.Equal(cur.DateKey) {
		return nil
	}
	next, err := ordering.Append(tx, dest)
	if err != nil {
		return err
	}
	updates["sort_order"] = next
	return nil
}
