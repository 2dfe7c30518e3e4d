package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonewatch/bot-go/models"
	"github.com/salonewatch/bot-go/utils"
	"gorm.io/gorm"
)

// reportPoints is the award for a finalized report.
const reportPoints = 10

type Issues struct {
	db *gorm.DB
}

func NewIssues(db *gorm.DB) *Issues {
	return &Issues{db: db}
}

// ByTicket returns the issue for a ticket code, or nil when unknown.
func (r *Issues) ByTicket(ctx context.Context, ticketID string) (*models.Issue, error) {
	var issue models.Issue
	err := r.db.WithContext(ctx).Where("ticket_id = ?", ticketID).First(&issue).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("lookup ticket %s: %w", ticketID, err)
	}
	return &issue, nil
}

// CountSince counts a reporter's issues created at or after a cutoff.
// Used for the daily report cap.
func (r *Issues) CountSince(ctx context.Context, reporterID uint, since time.Time) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Issue{}).
		Where("reporter_id = ? AND created_at >= ?", reporterID, since).
		Count(&n).Error
	if err != nil {
		return 0, fmt.Errorf("count issues: %w", err)
	}
	return n, nil
}

// Candidates loads issues eligible as duplicate targets: created within
// the lookback window, not fixed, not themselves marked as duplicates,
// optionally category-matched. Ordered by creation so distance ties
// resolve stably downstream.
func (r *Issues) Candidates(ctx context.Context, since time.Time, category string) ([]models.Issue, error) {
	q := r.db.WithContext(ctx).
		Where("created_at >= ?", since).
		Where("status <> ?", models.StatusFixed).
		Where("duplicate_of IS NULL")
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var issues []models.Issue
	if err := q.Order("id asc").Find(&issues).Error; err != nil {
		return nil, fmt.Errorf("duplicate candidates: %w", err)
	}
	return issues, nil
}

// Finalize turns a completed draft into an issue. The issue row, the
// reporter's point award, the "reported" tracker entry and the session
// delete all commit together, so a redelivered confirmation finds no
// draft left to finalize.
func (r *Issues) Finalize(ctx context.Context, reporterID uint, phone string, draft models.Draft, duplicateOf *uint) (*models.Issue, error) {
	issue := models.Issue{
		TicketID:    utils.NewTicketID(),
		Title:       draft.Title,
		Category:    draft.Category,
		Status:      models.StatusCritical,
		Urgency:     draft.Urgency,
		Latitude:    draft.Latitude,
		Longitude:   draft.Longitude,
		Address:     draft.Address,
		Description: draft.Description,
		MediaURL:    draft.EvidenceURL,
		AudioURL:    draft.AudioURL,
		ReporterID:  reporterID,
		DuplicateOf: duplicateOf,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&issue).Error; err != nil {
			return fmt.Errorf("create issue: %w", err)
		}
		if err := awardPoints(tx, reporterID, &issue.ID, reportPoints, "report"); err != nil {
			return err
		}
		entry := models.TrackerEntry{IssueID: issue.ID, Action: "reported"}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("tracker entry: %w", err)
		}
		if err := tx.Where("phone = ?", phone).Delete(&models.Session{}).Error; err != nil {
			return fmt.Errorf("clear session: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

func (r *Issues) AddTracker(ctx context.Context, issueID uint, action, note string) error {
	entry := models.TrackerEntry{IssueID: issueID, Action: action, Note: note}
	return r.db.WithContext(ctx).Create(&entry).Error
}
