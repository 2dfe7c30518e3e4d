package models

import (
	"time"
)

type VoteKind string

const (
	VoteUp   VoteKind = "up"
	VoteDown VoteKind = "down"
)

// Vote is one user's standing vote on one issue. The (issue, user) pair
// is unique; re-voting replaces the kind.
type Vote struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	IssueID   uint      `gorm:"not null;uniqueIndex:idx_votes_issue_user" json:"issue_id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_votes_issue_user" json:"user_id"`
	Kind      VoteKind  `gorm:"not null" json:"kind"`
}
