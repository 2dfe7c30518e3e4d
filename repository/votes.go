package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonewatch/bot-go/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Votes struct {
	db *gorm.DB
}

func NewVotes(db *gorm.DB) *Votes {
	return &Votes{db: db}
}

// Get returns the user's standing vote on an issue, or nil.
func (r *Votes) Get(ctx context.Context, issueID, userID uint) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).Where("issue_id = ? AND user_id = ?", issueID, userID).First(&vote).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load vote: %w", err)
	}
	return &vote, nil
}

// Upsert records a vote; a repeat vote replaces the kind, keeping one
// row per (issue, user).
func (r *Votes) Upsert(ctx context.Context, issueID, userID uint, kind models.VoteKind) error {
	vote := models.Vote{IssueID: issueID, UserID: userID, Kind: kind}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "issue_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"kind", "updated_at"}),
	}).Create(&vote).Error
	if err != nil {
		return fmt.Errorf("store vote: %w", err)
	}
	return nil
}
