// Package worktracker resolves work references. The engine only ever asks
// whether a referenced work exists; it never mutates the tracker.
package worktracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/pressplan/pressplan/internal/models"
	"gorm.io/gorm"
)

// Tracker answers existence queries for work ids.
type Tracker interface {
	Exists(ctx context.Context, workID string) (bool, error)
}

// DB resolves work ids against the local works table.
type DB struct {
	db *gorm.DB
}

// NewDB creates a works-table-backed Tracker.
func NewDB(db *gorm.DB) *DB {
	return &DB{db: db}
}

// Exists reports whether a work row with the given id exists.
func (t *DB) Exists(ctx context.Context, workID string) (bool, error) {
	var w models.Work
	err := t.db.WithContext(ctx).First(&w, "id = ?", workID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("worktracker: load work %s: %w", workID, err)
	}
	return true, nil
}
