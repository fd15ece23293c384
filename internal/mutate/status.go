package mutate

import (
	"fmt"

	"github.com/pressplan/pressplan/internal/item"
	"github.com/pressplan/pressplan/internal/label"
	"github.com/pressplan/pressplan/internal/models"
	"gorm.io/gorm"
)

// ToggleDone flips an item's completion. Done sets both status and label to
// done; undoing completion reverts the label to to_do. Returns the new state
// and the pre-image the caller needs for undo.
func ToggleDone(db *gorm.DB, actorID, id string) (updated, prev *models.ScheduledItem, err error) {
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

		newStatus := label.StatusDone
		newLabel := label.Done
		if it.Status == label.StatusDone {
			newStatus = label.StatusTodo
			newLabel = label.ToDo
		}
		updates := map[string]interface{}{"status": newStatus, "label": newLabel}
		if err := tx.Model(&models.ScheduledItem{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("mutate: toggle item %s: %w", id, err)
		}
		updated, err = item.Get(tx, id)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return updated, prev, nil
}

// SetLabel assigns a taxonomy label. Setting done forces status done;
// leaving done reverts status to todo. Other labels leave status alone.
func SetLabel(db *gorm.DB, actorID, id, newLabel string) (updated, prev *models.ScheduledItem, err error) {
	if !label.Valid(newLabel) {
		return nil, nil, fmt.Errorf("%w: unknown label %q", item.ErrValidation, newLabel)
	}
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

		updates := map[string]interface{}{"label": newLabel}
		if newLabel == label.Done {
			updates["status"] = label.StatusDone
		} else if it.Status == label.StatusDone {
			updates["status"] = label.StatusTodo
		}
		if err := tx.Model(&models.ScheduledItem{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("mutate: set label on item %s: %w", id, err)
		}
		updated, err = item.Get(tx, id)
		return err
	})
	if err != nil {
		return nil, nil, err
	}
	return updated, prev, nil
}
