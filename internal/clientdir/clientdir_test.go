package clientdir

import (
	"errors"
	"strings"
	"testing"

	"github.com/pressplan/pressplan/internal/item"
	"github.com/pressplan/pressplan/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Client{}, &models.ClientCadenceSetting{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func TestCreateAndResolve(t *testing.T) {
	db := testDB(t)

	c, err := Create(db, "alice", "Acme Foods")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if !strings.HasPrefix(c.ID, "cli-") {
		t.Errorf("ID = %q, want cli- prefix", c.ID)
	}

	got, err := Resolve(db, c.ID)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.Name != "Acme Foods" {
		t.Errorf("Name = %q", got.Name)
	}

	_, err = Resolve(db, "cli-missing")
	if !errors.Is(err, item.ErrNotFound) {
		t.Errorf("Resolve(missing) error = %v, want ErrNotFound", err)
	}
}

func TestCreate_EmptyName(t *testing.T) {
	db := testDB(t)
	_, err := Create(db, "alice", "")
	if !errors.Is(err, item.ErrValidation) {
		t.Errorf("Create error = %v, want ErrValidation", err)
	}
}

func TestSetCadence(t *testing.T) {
	db := testDB(t)
	c, _ := Create(db, "alice", "Acme Foods")

	if err := SetCadence(db, "alice", c.ID, 8); err != nil {
		t.Fatalf("SetCadence: %v", err)
	}
	// Upsert overwrites the existing row.
	if err := SetCadence(db, "alice", c.ID, 12); err != nil {
		t.Fatalf("SetCadence again: %v", err)
	}

	s, err := Setting(db, "alice", c.ID)
	if err != nil {
		t.Fatalf("Setting: %v", err)
	}
	if s.ContentsPerWeek != 12 {
		t.Errorf("ContentsPerWeek = %d, want 12", s.ContentsPerWeek)
	}

	settings, err := Settings(db, "alice")
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if len(settings) != 1 {
		t.Errorf("len(Settings) = %d, want 1 after upsert", len(settings))
	}
}

func TestSetCadence_UnknownClient(t *testing.T) {
	db := testDB(t)
	err := SetCadence(db, "alice", "cli-missing", 8)
	if !errors.Is(err, item.ErrNotFound) {
		t.Errorf("SetCadence error = %v, want ErrNotFound", err)
	}
}

func TestSetting_MissingReadsAsZero(t *testing.T) {
	db := testDB(t)
	s, err := Setting(db, "alice", "cli-any")
	if err != nil {
		t.Fatalf("Setting: %v", err)
	}
	if s.ContentsPerWeek != 0 {
		t.Errorf("ContentsPerWeek = %d, want 0", s.ContentsPerWeek)
	}
}
