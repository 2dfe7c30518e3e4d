package models

import (
	"time"
)

// TrackerEntry is an append-only audit row for one issue lifecycle
// event. Rows are never updated or deleted.
type TrackerEntry struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	IssueID   uint      `gorm:"index;not null" json:"issue_id"`
	Action    string    `gorm:"not null" json:"action"`
	Note      string    `json:"note,omitempty"`
}
