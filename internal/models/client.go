package models

import "time"

// Client is an entry in the client directory. The scheduling engine only
// reads clients; CRUD beyond name resolution lives outside the engine.
type Client struct {
	ID        string `gorm:"primaryKey;size:32"`
	OwnerID   string `gorm:"size:64;not null;index"`
	Name      string `gorm:"size:128;not null"`
	CreatedAt time.Time
}

// ClientCadenceSetting holds the per-(owner, client) monthly content target.
// ContentsPerWeek is one of {0, 4, 6, 8, 12} in normal use; other values are
// tolerated but never auto-scheduled.
type ClientCadenceSetting struct {
	OwnerID         string `gorm:"primaryKey;size:64"`
	ClientID        string `gorm:"primaryKey;size:32"`
	ContentsPerWeek int    `gorm:"not null;default:0"`
	UpdatedAt       time.Time
}
