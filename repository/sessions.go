package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonewatch/bot-go/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Sessions struct {
	db *gorm.DB
}

func NewSessions(db *gorm.DB) *Sessions {
	return &Sessions{db: db}
}

// Get returns the session for a phone, or nil when none exists (the
// caller treats absence as the initial step).
func (r *Sessions) Get(ctx context.Context, phone string) (*models.Session, error) {
	var session models.Session
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load session %s: %w", phone, err)
	}
	return &session, nil
}

// Put overwrites the session for a phone. Last write wins; the unique
// index on phone keeps concurrent writes from splitting into two rows.
func (r *Sessions) Put(ctx context.Context, phone string, step models.Step, draft models.Draft) error {
	session := models.Session{Phone: phone, Step: step, Draft: draft}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "phone"}},
		DoUpdates: clause.AssignmentColumns([]string{"step", "draft", "updated_at"}),
	}).Create(&session).Error
	if err != nil {
		return fmt.Errorf("store session %s: %w", phone, err)
	}
	return nil
}

func (r *Sessions) Clear(ctx context.Context, phone string) error {
	return r.db.WithContext(ctx).Where("phone = ?", phone).Delete(&models.Session{}).Error
}
