// Package clientdir is the client directory: name resolution and per-client
// cadence settings, the inputs to the month-fill jobs.
package clientdir

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/pressplan/pressplan/internal/item"
	"github.com/pressplan/pressplan/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Resolve loads a client by id. An unknown client is a NotFound failure.
func Resolve(db *gorm.DB, clientID string) (*models.Client, error) {
	var c models.Client
	if err := db.First(&c, "id = ?", clientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: client %s", item.ErrNotFound, clientID)
		}
		return nil, fmt.Errorf("clientdir: load %s: %w", clientID, err)
	}
	return &c, nil
}

// Create adds a client under an owner.
func Create(db *gorm.DB, ownerID, name string) (*models.Client, error) {
	if name == "" {
		return nil, fmt.Errorf("%w: client name is required", item.ErrValidation)
	}
	id, err := generateID()
	if err != nil {
		return nil, err
	}
	c := models.Client{ID: id, OwnerID: ownerID, Name: name}
	if err := db.Create(&c).Error; err != nil {
		return nil, fmt.Errorf("clientdir: create client %q: %w", name, err)
	}
	return &c, nil
}

// List returns an owner's clients sorted by name.
func List(db *gorm.DB, ownerID string) ([]models.Client, error) {
	var clients []models.Client
	if err := db.Where("owner_id = ?", ownerID).Order("name ASC").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("clientdir: list clients: %w", err)
	}
	return clients, nil
}

// Settings returns all cadence settings for an owner.
func Settings(db *gorm.DB, ownerID string) ([]models.ClientCadenceSetting, error) {
	var settings []models.ClientCadenceSetting
	if err := db.Where("owner_id = ?", ownerID).Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("clientdir: list cadence settings: %w", err)
	}
	return settings, nil
}

// Setting returns the cadence setting for one (owner, client) pair. A missing
// row reads as cadence 0 (never auto-scheduled).
func Setting(db *gorm.DB, ownerID, clientID string) (*models.ClientCadenceSetting, error) {
	var s models.ClientCadenceSetting
	err := db.First(&s, "owner_id = ? AND client_id = ?", ownerID, clientID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &models.ClientCadenceSetting{OwnerID: ownerID, ClientID: clientID}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("clientdir: load cadence setting: %w", err)
	}
	return &s, nil
}

// SetCadence upserts the content target for an (owner, client) pair. The
// client must exist; the cadence value itself is not restricted here, values
// outside {4, 6, 8, 12} simply never auto-schedule.
func SetCadence(db *gorm.DB, ownerID, clientID string, contentsPerWeek int) error {
	if contentsPerWeek < 0 {
		return fmt.Errorf("%w: cadence must not be negative", item.ErrValidation)
	}
	if _, err := Resolve(db, clientID); err != nil {
		return err
	}
	s := models.ClientCadenceSetting{
		OwnerID:         ownerID,
		ClientID:        clientID,
		ContentsPerWeek: contentsPerWeek,
	}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "owner_id"}, {Name: "client_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"contents_per_week"}),
	}).Create(&s)
	if result.Error != nil {
		return fmt.Errorf("clientdir: set cadence for %s/%s: %w", ownerID, clientID, result.Error)
	}
	return nil
}

// generateID creates a unique client ID in cli-xxxxxxxx format (8-char hex).
func generateID() (string, error) {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("clientdir: generate ID: %w", err)
	}
	return "cli-" + hex.EncodeToString(b), nil
}
