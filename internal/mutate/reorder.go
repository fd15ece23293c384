package mutate

import (
	"fmt"

	"github.com/pressplan/pressplan/internal/item"
	"github.com/pressplan/pressplan/internal/models"
	"github.com/pressplan/pressplan/internal/ordering"
	"gorm.io/gorm"
)

// Reorder assigns the bucket's display order to match orderedIDs. The caller
// must hold edit rights on every item in the sequence; the sequence must be
// exactly the bucket's current member set. Returns the previous order so the
// caller can undo.
func Reorder(db *gorm.DB, actorID string, b ordering.Bucket, orderedIDs []string) (prevOrder []string, err error) {
	if len(orderedIDs) == 0 {
		return nil, fmt.Errorf("%w: empty order", ordering.ErrInvalidOrder)
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		members, err := ordering.Members(tx, b)
		if err != nil {
			return err
		}
		byID := make(map[string]*models.ScheduledItem, len(members))
		for i := range members {
			byID[members[i].ID] = &members[i]
			prevOrder = append(prevOrder, members[i].ID)
		}
		for _, id := range orderedIDs {
			m, ok := byID[id]
			if !ok {
				continue // membership mismatch is ordering.Reorder's call
			}
			if err := item.RequireEdit(actorID, m); err != nil {
				return err
			}
		}
		return ordering.Reorder(tx, b, orderedIDs)
	})
	if err != nil {
		return nil, err
	}
	return prevOrder, nil
}
