// Package mutate is the mutation engine: single-item operations over
// scheduled items, and bulk counterparts that apply per item and silently
// skip what the caller may not touch.
//
// Every single-item operation runs inside one transaction and either fully
// applies or leaves state unchanged. Operations that a caller may want to
// undo return the item's pre-image alongside the new state.
package mutate

import (
	"crypto/rand"
	"encoding/hex"
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

// Item kinds.
const (
	KindContent  = "content"
	KindWorkTask = "work_task"
)

// Content types. Free classification with no scheduling effect.
var ContentTypes = []string{"post", "reel", "story", "carousel", "video", "other"}

func validKind(k string) bool {
	return k == KindContent || k == KindWorkTask
}

func validType(t string) bool {
	for _, ct := range ContentTypes {
		if ct == t {
			return true
		}
	}
	return false
}

// GenerateID creates a unique item ID in itm-xxxxxxxxxxxx format (12-char hex).
func GenerateID() (string, error) {
	b := make([]byte, 6)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("mutate: generate ID: %w", err)
	}
	return "itm-" + hex.EncodeToString(b), nil
}

// CreateInput holds parameters for creating a scheduled item.
type CreateInput struct {
	OwnerID     string // defaults to the acting user
	AssignedTo  string // defaults to the acting user
	ClientID    string
	Date        time.Time
	IsExtra     bool
	Kind        string
	Type        string
	Title       string
	Description string
	Label       string // either Label or Priority must be set
	Priority    string // legacy fallback
	WorkID      string
	Status      string // defaults to todo; undo of a delete restores done rows
	SortOrder   *int   // normally computed; only undo restores an explicit slot
}

// Create validates the input, computes the sort order at the end of the
// target bucket, and inserts the item.
func Create(db *gorm.DB, tracker worktracker.Tracker, actorID string, in CreateInput) (*models.ScheduledItem, error) {
	if in.OwnerID == "" {
		in.OwnerID = actorID
	}
	if in.AssignedTo == "" {
		in.AssignedTo = actorID
	}
	if in.Status == "" {
		in.Status = label.StatusTodo
	}

	if in.ClientID == "" {
		return nil, fmt.Errorf("%w: clientId is required", item.ErrValidation)
	}
	if in.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", item.ErrValidation)
	}
	if !validKind(in.Kind) {
		return nil, fmt.Errorf("%w: unknown kind %q", item.ErrValidation, in.Kind)
	}
	if !validType(in.Type) {
		return nil, fmt.Errorf("%w: unknown type %q", item.ErrValidation, in.Type)
	}
	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", item.ErrValidation)
	}
	if in.Label == "" && in.Priority == "" {
		return nil, fmt.Errorf("%w: label or priority is required", item.ErrValidation)
	}
	if in.Label != "" && !label.Valid(in.Label) {
		return nil, fmt.Errorf("%w: unknown label %q", item.ErrValidation, in.Label)
	}

	id, err := GenerateID()
	if err != nil {
		return nil, err
	}

	it := models.ScheduledItem{
		ID:          id,
		OwnerID:     in.OwnerID,
		AssignedTo:  &in.AssignedTo,
		ClientID:    in.ClientID,
		Date:        in.Date,
		IsExtra:     in.IsExtra,
		Kind:        in.Kind,
		Type:        in.Type,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
	}
	if in.Label != "" {
		it.Label = &in.Label
	}
	if in.Priority != "" {
		it.Priority = &in.Priority
	}
	if in.WorkID != "" {
		it.WorkID = &in.WorkID
	}
	// Keep label and status agreeing both ways on insert.
	if in.Label == label.Done {
		it.Status = label.StatusDone
	}
	if it.Status == label.StatusDone && it.Label == nil {
		done := label.Done
		it.Label = &done
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if _, err := clientdir.Resolve(tx, in.ClientID); err != nil {
			return err
		}
		if in.WorkID != "" {
			if err := requireWork(tx, tracker, in.WorkID); err != nil {
				return err
			}
		}
		if in.SortOrder != nil {
			// The requested slot may have been reclaimed by an append
			// since it was captured; fall back to the end then.
			taken, err := ordering.SlotTaken(tx, ordering.For(&it), *in.SortOrder)
			if err != nil {
				return err
			}
			if taken {
				in.SortOrder = nil
			} else {
				it.SortOrder = *in.SortOrder
			}
		}
		if in.SortOrder == nil {
			next, err := ordering.Append(tx, ordering.For(&it))
			if err != nil {
				return err
			}
			it.SortOrder = next
		}
		if err := tx.Create(&it).Error; err != nil {
			return fmt.Errorf("mutate: create item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// requireWork fails with NotFound when the referenced work does not exist.
func requireWork(tx *gorm.DB, tracker worktracker.Tracker, workID string) error {
	if tracker == nil {
		tracker = worktracker.NewDB(tx)
	}
	ok, err := tracker.Exists(tx.Statement.Context, workID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: work %s", item.ErrNotFound, workID)
	}
	return nil
}
