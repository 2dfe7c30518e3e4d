package models

import (
	"time"
)

type IssueStatus string

const (
	StatusCritical     IssueStatus = "critical"
	StatusProgress     IssueStatus = "progress"
	StatusFixed        IssueStatus = "fixed"
	StatusAcknowledged IssueStatus = "acknowledged"
)

type Issue struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	TicketID    string      `gorm:"uniqueIndex;not null" json:"ticket_id"`
	Title       string      `gorm:"not null" json:"title"`
	Category    string      `gorm:"index;not null" json:"category"`
	Status      IssueStatus `gorm:"not null;default:'critical'" json:"status"`
	Urgency     string      `json:"urgency"`
	Latitude    float64     `gorm:"type:decimal(10,8)" json:"latitude"`
	Longitude   float64     `gorm:"type:decimal(11,8)" json:"longitude"`
	Address     string      `json:"address"`
	Description string      `gorm:"type:text" json:"description"`
	MediaURL    string      `json:"media_url,omitempty"`
	AudioURL    string      `json:"audio_url,omitempty"`

	ReporterID uint `gorm:"index;not null" json:"reporter_id"`
	Reporter   User `gorm:"foreignKey:ReporterID" json:"reporter"`

	// DuplicateOf points at the issue this one restates. An issue
	// carrying this reference is never itself offered as a duplicate
	// target, which keeps the chain one level deep.
	DuplicateOf *uint `gorm:"index" json:"duplicate_of,omitempty"`
}
