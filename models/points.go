package models

import (
	"time"
)

// PointEntry is one append-only ledger row. A user's Points balance is
// the sum of their entries; the two are written in one transaction.
type PointEntry struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	IssueID   *uint     `gorm:"index" json:"issue_id,omitempty"`
	Delta     int       `gorm:"not null" json:"delta"`
	Reason    string    `gorm:"not null" json:"reason"`
}
