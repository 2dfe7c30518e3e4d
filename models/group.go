package models

import (
	"time"

	"github.com/lib/pq"
)

// ResponderGroup is an operational team alerted when an issue in one of
// its categories is reported.
type ResponderGroup struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	Name       string         `gorm:"uniqueIndex;not null" json:"name"`
	Categories pq.StringArray `gorm:"type:text[]" json:"categories"`
	Members    []GroupMember  `gorm:"foreignKey:GroupID" json:"members"`
}

type GroupMember struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	GroupID   uint      `gorm:"index;not null" json:"group_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"user"`
}
