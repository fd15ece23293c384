// Package undo implements the single-level undo model: at most one pending
// entry per caller session, overwritten by every new mutation, cleared by
// replay whether the replay succeeds or not.
package undo

import (
	"sync"

	"github.com/pressplan/pressplan/internal/label"
	"github.com/pressplan/pressplan/internal/models"
	"github.com/pressplan/pressplan/internal/mutate"
	"github.com/pressplan/pressplan/internal/ordering"
	"github.com/pressplan/pressplan/internal/worktracker"
	"gorm.io/gorm"
)

// Kind names the mutation an entry can invert.
type Kind string

const (
	KindMove    Kind = "move"
	KindReorder Kind = "reorder"
	KindToggle  Kind = "toggle"
	KindDelete  Kind = "delete"
)

// Entry stores enough state to construct the exact inverse call.
type Entry struct {
	Kind Kind

	// Move and toggle inverses patch the item in place.
	ItemID string
	Patch  mutate.Patch

	// Reorder inverse restores the previous sequence.
	Bucket ordering.Bucket
	Order  []string

	// Delete inverse recreates the row's content under a fresh id.
	Recreate *mutate.CreateInput
}

// ForMove builds the inverse of a move from the item's pre-image.
func ForMove(prev *models.ScheduledItem) Entry {
	date := prev.Date
	extra := prev.IsExtra
	return Entry{
		Kind:   KindMove,
		ItemID: prev.ID,
		Patch:  mutate.Patch{Date: &date, IsExtra: &extra},
	}
}

// ForReorder builds the inverse of a reorder.
func ForReorder(b ordering.Bucket, prevOrder []string) Entry {
	order := make([]string, len(prevOrder))
	copy(order, prevOrder)
	return Entry{Kind: KindReorder, Bucket: b, Order: order}
}

// ForToggle builds the inverse of a completion toggle. The previous label is
// captured through the same derivation the calendar renders with, so legacy
// rows restore to the label the user saw.
func ForToggle(prev *models.ScheduledItem) Entry {
	status := prev.Status
	lbl := label.Effective(prev)
	return Entry{
		Kind:   KindToggle,
		ItemID: prev.ID,
		Patch:  mutate.Patch{Status: &status, Label: &lbl},
	}
}

// ForDelete builds the inverse of a delete: a create call carrying the full
// previous content and placement. The restored item gets a new id.
func ForDelete(prev *models.ScheduledItem) Entry {
	in := mutate.CreateInput{
		OwnerID:     prev.OwnerID,
		ClientID:    prev.ClientID,
		Date:        prev.Date,
		IsExtra:     prev.IsExtra,
		Kind:        prev.Kind,
		Type:        prev.Type,
		Title:       prev.Title,
		Description: prev.Description,
		Label:       label.Effective(prev),
		Status:      prev.Status,
	}
	if prev.AssignedTo != nil {
		in.AssignedTo = *prev.AssignedTo
	}
	if prev.Priority != nil {
		in.Priority = *prev.Priority
	}
	if prev.WorkID != nil {
		in.WorkID = *prev.WorkID
	}
	// The delete left the slot open, so the exact sort order is restorable.
	order := prev.SortOrder
	in.SortOrder = &order
	return Entry{Kind: KindDelete, Recreate: &in}
}

// State is one caller's undo slot. It is an explicit value owned by the
// session layer, not module-level state.
type State struct {
	mu    sync.Mutex
	entry *Entry
}

// Record replaces the pending entry.
func (s *State) Record(e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry = &e
}

// Pending reports whether an undo is available.
func (s *State) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entry != nil
}

// Clear drops the pending entry, if any.
func (s *State) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entry = nil
}

// Undo replays the pending inverse exactly once. The entry is consumed up
// front: a failed replay (say, the referenced client has since been deleted)
// is reported but never retried. Returns false when nothing was pending.
func (s *State) Undo(db *gorm.DB, tracker worktracker.Tracker, actorID string) (bool, error) {
	s.mu.Lock()
	e := s.entry
	s.entry = nil
	s.mu.Unlock()

	if e == nil {
		return false, nil
	}

	switch e.Kind {
	case KindReorder:
		_, err := mutate.Reorder(db, actorID, e.Bucket, e.Order)
		return true, err
	case KindDelete:
		_, err := mutate.Create(db, tracker, actorID, *e.Recreate)
		return true, err
	default: // move, toggle
		_, _, err := mutate.Update(db, tracker, actorID, e.ItemID, e.Patch)
		return true, err
	}
}
