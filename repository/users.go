package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/salonewatch/bot-go/models"
	"gorm.io/gorm"
)

type Users struct {
	db *gorm.DB
}

func NewUsers(db *gorm.DB) *Users {
	return &Users{db: db}
}

// GetOrCreateByPhone loads the user for a phone number, creating the
// row on first contact.
func (r *Users) GetOrCreateByPhone(ctx context.Context, phone string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{Phone: phone}
		err = r.db.WithContext(ctx).Create(&user).Error
	}
	if err != nil {
		return nil, fmt.Errorf("get or create user %s: %w", phone, err)
	}
	return &user, nil
}

func (r *Users) SetName(ctx context.Context, userID uint, name string) error {
	return r.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		Update("name", name).Error
}

// AwardPoints writes the ledger entry and bumps the balance in one
// transaction, so the two can never be observed apart.
func (r *Users) AwardPoints(ctx context.Context, userID uint, issueID *uint, delta int, reason string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return awardPoints(tx, userID, issueID, delta, reason)
	})
}

func (r *Users) SaveFeedback(ctx context.Context, userID uint, body string) error {
	return r.db.WithContext(ctx).Create(&models.Feedback{UserID: userID, Body: body}).Error
}

func awardPoints(tx *gorm.DB, userID uint, issueID *uint, delta int, reason string) error {
	entry := models.PointEntry{UserID: userID, IssueID: issueID, Delta: delta, Reason: reason}
	if err := tx.Create(&entry).Error; err != nil {
		return fmt.Errorf("point ledger: %w", err)
	}
	if err := tx.Model(&models.User{}).Where("id = ?", userID).
		Update("points", gorm.Expr("points + ?", delta)).Error; err != nil {
		return fmt.Errorf("point balance: %w", err)
	}
	return nil
}
