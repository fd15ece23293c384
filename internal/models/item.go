package models

import "time"

// ScheduledItem is one unit of planned editorial work on the calendar.
//
// Non-extra items sit on their literal weekday column; extra items live in a
// week-scoped overflow column keyed by the ISO week's Monday. SortOrder is
// contiguous within an ordering bucket (owner, day-or-week-Monday, is_extra).
type ScheduledItem struct {
	ID          string    `gorm:"primaryKey;size:32"`
	OwnerID     string    `gorm:"size:64;not null;index:idx_items_owner_date"`
	AssignedTo  *string   `gorm:"size:64;index"`
	ClientID    string    `gorm:"size:32;not null;index"`
	Date        time.Time `gorm:"not null;index:idx_items_owner_date"`
	IsExtra     bool      `gorm:"not null;default:false"`
	Kind        string    `gorm:"size:16;not null;default:content"`
	Type        string    `gorm:"size:16;not null;default:post"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"type:text"`
	Label       *string   `gorm:"size:24"`
	Status      string    `gorm:"size:8;not null;default:todo;index"`
	Priority    *string   `gorm:"size:16"`
	WorkID      *string   `gorm:"size:64"`
	SortOrder   int       `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Delegated reports whether the item is assigned to someone other than its
// owner. Delegated items appear on the assignee's calendar with distinct
// styling but stay owned by OwnerID for deletion and bulk authorization.
func (it *ScheduledItem) Delegated() bool {
	return it.AssignedTo != nil && *it.AssignedTo != "" && *it.AssignedTo != it.OwnerID
}

// Day returns the item's date truncated to UTC midnight.
func (it *ScheduledItem) Day() time.Time {
	y, m, d := it.Date.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
