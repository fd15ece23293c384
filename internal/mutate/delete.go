package mutate

import (
	"fmt"

	"github.com/pressplan/pressplan/internal/item"
	"github.com/pressplan/pressplan/internal/models"
	"gorm.io/gorm"
)

// Delete permanently removes an item and returns its last state so the
// caller can rebuild it for undo. The item's bucket keeps a gap until the
// next explicit reorder, like a cross-bucket move.
func Delete(db *gorm.DB, actorID, id string) (*models.ScheduledItem, error) {
	var prev models.ScheduledItem
	err := db.Transaction(func(tx *gorm.DB) error {
		it, err := item.Get(tx, id)
		if err != nil {
			return err
		}
		if err := item.RequireEdit(actorID, it); err != nil {
			return err
		}
		prev = *it
		if err := tx.Delete(&models.ScheduledItem{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("mutate: delete item %s: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &prev, nil
}
