package models

import "time"

// Work is a row in the external work tracker's table. The engine only checks
// existence when an item links to a work; it never mutates works.
type Work struct {
	ID        string `gorm:"primaryKey;size:64"`
	OwnerID   string `gorm:"size:64;index"`
	Title     string `gorm:"size:256"`
	Status    string `gorm:"size:16;default:open"`
	CreatedAt time.Time
}
