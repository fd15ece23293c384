package mutate

import (
	"errors"
	"testing"
	"time"

	"github.com/pressplan/pressplan/internal/item"
	"github.com/pressplan/pressplan/internal/label"
	"github.com/pressplan/pressplan/internal/models"
	"gorm.io/gorm"
)

// seedMixedOwnership creates two items alice can edit and one she cannot.
func seedMixedOwnership(t *testing.T, db *gorm.DB) (mine, alsoMine, foreign string) {
	t.Helper()
	db.Create(&models.Client{ID: "cli-2", OwnerID: "bob", Name: "Borealis"})

	a := mustCreate(t, db, nil)
	b := mustCreate(t, db, nil)
	c, err := Create(db, nil, "bob", CreateInput{
		ClientID: "cli-2",
		Date:     day(2026, 2, 11),
		Kind:     KindContent,
		Type:     "post",
		Title:    "bob's piece",
		Label:    label.ToDo,
	})
	if err != nil {
		t.Fatalf("Create foreign: %v", err)
	}
	return a.ID, b.ID, c.ID
}

func TestBulkDelete_PartialApplication(t *testing.T) {
	db := testDB(t)
	mine, alsoMine, foreign := seedMixedOwnership(t, db)

	applied, err := BulkDelete(db, "alice", []string{mine, alsoMine, foreign})
	if err != nil {
		t.Fatalf("BulkDelete: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}

	if _, err := item.Get(db, foreign); err != nil {
		t.Errorf("foreign item should survive: %v", err)
	}
	for _, id := range []string{mine, alsoMine} {
		if _, err := item.Get(db, id); !errors.Is(err, item.ErrNotFound) {
			t.Errorf("item %s should be gone, got %v", id, err)
		}
	}
}

func TestBulkMove(t *testing.T) {
	db := testDB(t)
	mine, alsoMine, foreign := seedMixedOwnership(t, db)

	target := day(2026, 2, 12)
	applied, err := BulkMove(db, "alice", []string{mine, alsoMine, foreign}, target, false)
	if err != nil {
		t.Fatalf("BulkMove: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}

	moved, _ := item.Get(db, mine)
	if !moved.Date.Equal(target) {
		t.Errorf("item not moved: %v", moved.Date)
	}
	stay, _ := item.Get(db, foreign)
	if !stay.Date.Equal(day(2026, 2, 11)) {
		t.Errorf("foreign item moved: %v", stay.Date)
	}

	// Moved items take consecutive slots at the end of the destination bucket.
	first, _ := item.Get(db, mine)
	second, _ := item.Get(db, alsoMine)
	if first.SortOrder == second.SortOrder {
		t.Errorf("moved items share sortOrder %d", first.SortOrder)
	}
}

func TestBulkSetLabel(t *testing.T) {
	db := testDB(t)
	mine, alsoMine, foreign := seedMixedOwnership(t, db)

	applied, err := BulkSetLabel(db, "alice", []string{mine, alsoMine, foreign}, label.ReadyUnpublished)
	if err != nil {
		t.Fatalf("BulkSetLabel: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied = %d, want 2", applied)
	}
	it, _ := item.Get(db, mine)
	if label.Effective(it) != label.ReadyUnpublished {
		t.Errorf("label = %q", label.Effective(it))
	}
}

func TestBulkToggleDone_SkipsVanishedItems(t *testing.T) {
	db := testDB(t)
	a := mustCreate(t, db, nil)
	b := mustCreate(t, db, nil)
	// b vanishes before the batch runs, as if another actor deleted it.
	if _, err := Delete(db, "alice", b.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	applied, err := BulkToggleDone(db, "alice", []string{a.ID, b.ID})
	if err != nil {
		t.Fatalf("BulkToggleDone: %v", err)
	}
	if applied != 1 {
		t.Errorf("applied = %d, want 1", applied)
	}
	it, _ := item.Get(db, a.ID)
	if it.Status != label.StatusDone {
		t.Errorf("status = %q, want done", it.Status)
	}
}

func TestBulk_EmptyInputIsBatchError(t *testing.T) {
	db := testDB(t)

	if _, err := BulkDelete(db, "alice", nil); !errors.Is(err, item.ErrValidation) {
		t.Errorf("BulkDelete(nil) error = %v, want ErrValidation", err)
	}
	if _, err := BulkToggleDone(db, "alice", []string{}); !errors.Is(err, item.ErrValidation) {
		t.Errorf("BulkToggleDone([]) error = %v, want ErrValidation", err)
	}
	if _, err := BulkMove(db, "alice", []string{"itm-x"}, time.Time{}, false); !errors.Is(err, item.ErrValidation) {
		t.Errorf("BulkMove(zero date) error = %v, want ErrValidation", err)
	}
}
