package repository

import (
	"context"
	"fmt"

	"github.com/salonewatch/bot-go/models"
	"gorm.io/gorm"
)

type Groups struct {
	db *gorm.DB
}

func NewGroups(db *gorm.DB) *Groups {
	return &Groups{db: db}
}

// ForCategory returns the responder groups mapped to a category, with
// members and their users preloaded. Zero groups is a normal outcome.
func (r *Groups) ForCategory(ctx context.Context, category string) ([]models.ResponderGroup, error) {
	var groups []models.ResponderGroup
	err := r.db.WithContext(ctx).
		Preload("Members.User").
		Where("? = ANY(categories)", category).
		Find(&groups).Error
	if err != nil {
		return nil, fmt.Errorf("groups for %s: %w", category, err)
	}
	return groups, nil
}
