package item

import (
	"errors"
	"testing"
	"time"

	"github.com/pressplan/pressplan/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB creates an in-memory SQLite database with the scheduling tables.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.ScheduledItem{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func TestGet(t *testing.T) {
	db := testDB(t)
	db.Create(&models.ScheduledItem{
		ID: "itm-1", OwnerID: "alice", ClientID: "cli-1",
		Date: day(2026, 2, 11), Kind: "content", Type: "post", Title: "draft", Status: "todo",
	})

	it, err := Get(db, "itm-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if it.Title != "draft" {
		t.Errorf("Title = %q", it.Title)
	}

	_, err = Get(db, "itm-missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
}

func TestCanEdit(t *testing.T) {
	it := models.ScheduledItem{ID: "itm-1", OwnerID: "alice", AssignedTo: strPtr("bob")}

	cases := []struct {
		user string
		want bool
	}{
		{"alice", true},
		{"bob", true},
		{"carol", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := CanEdit(tc.user, &it); got != tc.want {
			t.Errorf("CanEdit(%q) = %v, want %v", tc.user, got, tc.want)
		}
	}

	if err := RequireEdit("carol", &it); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("RequireEdit error = %v, want ErrUnauthorized", err)
	}
	if err := RequireEdit("bob", &it); err != nil {
		t.Errorf("RequireEdit(assignee) = %v, want nil", err)
	}
}

func TestListMonth_VisibilityUnion(t *testing.T) {
	db := testDB(t)
	rows := []models.ScheduledItem{
		{ID: "own", OwnerID: "alice", ClientID: "c", Date: day(2026, 2, 4), Title: "own", Status: "todo"},
		{ID: "delegated-in", OwnerID: "bob", AssignedTo: strPtr("alice"), ClientID: "c", Date: day(2026, 2, 5), Title: "in", Status: "todo"},
		{ID: "delegated-out", OwnerID: "alice", AssignedTo: strPtr("bob"), ClientID: "c", Date: day(2026, 2, 6), Title: "out", Status: "todo"},
		{ID: "foreign", OwnerID: "bob", ClientID: "c", Date: day(2026, 2, 7), Title: "foreign", Status: "todo"},
		{ID: "other-month", OwnerID: "alice", ClientID: "c", Date: day(2026, 3, 1), Title: "march", Status: "todo"},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	items, err := ListMonth(db, "alice", 2026, time.February)
	if err != nil {
		t.Fatalf("ListMonth: %v", err)
	}
	got := map[string]bool{}
	for _, it := range items {
		got[it.ID] = true
	}
	for _, want := range []string{"own", "delegated-in", "delegated-out"} {
		if !got[want] {
			t.Errorf("ListMonth missing %s", want)
		}
	}
	if got["foreign"] || got["other-month"] {
		t.Errorf("ListMonth leaked out-of-scope items: %v", got)
	}
}

func TestListMonth_DisplayOrder(t *testing.T) {
	db := testDB(t)
	rows := []models.ScheduledItem{
		{ID: "b", OwnerID: "alice", ClientID: "c", Date: day(2026, 2, 4), SortOrder: 1, Status: "todo"},
		{ID: "a", OwnerID: "alice", ClientID: "c", Date: day(2026, 2, 4), SortOrder: 0, Status: "todo"},
		{ID: "extra", OwnerID: "alice", ClientID: "c", Date: day(2026, 2, 4), IsExtra: true, SortOrder: 0, Status: "todo"},
	}
	for i := range rows {
		db.Create(&rows[i])
	}

	items, err := ListMonth(db, "alice", 2026, time.February)
	if err != nil {
		t.Fatalf("ListMonth: %v", err)
	}
	wantOrder := []string{"a", "b", "extra"}
	for i, it := range items {
		if it.ID != wantOrder[i] {
			t.Errorf("position %d = %s, want %s", i, it.ID, wantOrder[i])
		}
	}
}

func TestMonthRange(t *testing.T) {
	from, to := MonthRange(2026, time.February)
	if !from.Equal(day(2026, 2, 1)) || !to.Equal(day(2026, 3, 1)) {
		t.Errorf("MonthRange = [%v, %v)", from, to)
	}
}
