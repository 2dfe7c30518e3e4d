package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Step is the conversation state stored per user. Absence of a session
// row is equivalent to StepNew.
type Step string

const (
	StepNew                       Step = "NEW"
	StepAwaitingName              Step = "AWAITING_NAME"
	StepAwaitingCategory          Step = "AWAITING_CATEGORY"
	StepAwaitingReportEvidence    Step = "AWAITING_REPORT_EVIDENCE"
	StepAwaitingReportLocation    Step = "AWAITING_REPORT_LOCATION"
	StepAwaitingAddressSelection  Step = "AWAITING_ADDRESS_SELECTION"
	StepAwaitingReportDescription Step = "AWAITING_REPORT_DESCRIPTION"
	StepAwaitingDuplicateAction   Step = "AWAITING_DUPLICATE_ACTION"
	StepAwaitingDuplicateVote     Step = "AWAITING_DUPLICATE_SELECTION_FOR_VOTE"
	StepAwaitingReportConfirm     Step = "AWAITING_REPORT_CONFIRMATION"
	StepAwaitingVoteTicketID      Step = "AWAITING_VOTE_TICKET_ID"
	StepAwaitingVoteConfirm       Step = "AWAITING_VOTE_CONFIRMATION"
	StepAwaitingStatusTicketID    Step = "AWAITING_STATUS_TICKET_ID"
	StepAwaitingFeedback          Step = "AWAITING_FEEDBACK"
)

// DraftCandidate is a nearby issue offered to the reporter during the
// duplicate check.
type DraftCandidate struct {
	IssueID   uint    `json:"issue_id"`
	TicketID  string  `json:"ticket_id"`
	Title     string  `json:"title"`
	DistanceM float64 `json:"distance_m"`
}

// DraftAddress is one forward-geocoding hit awaiting selection.
type DraftAddress struct {
	Label     string  `json:"label"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Draft carries the partially collected report (or vote target) for one
// conversation. It is stored as a single jsonb column; the engine always
// writes the whole struct it holds, so fields never clobber each other.
type Draft struct {
	Description string  `json:"description,omitempty"`
	Latitude    float64 `json:"latitude,omitempty"`
	Longitude   float64 `json:"longitude,omitempty"`
	Address     string  `json:"address,omitempty"`
	Category    string  `json:"category,omitempty"`
	Title       string  `json:"title,omitempty"`
	Urgency     string  `json:"urgency,omitempty"`
	EvidenceURL string  `json:"evidence_url,omitempty"`
	AudioURL    string  `json:"audio_url,omitempty"`

	Candidates []DraftCandidate `json:"candidates,omitempty"`
	Addresses  []DraftAddress   `json:"addresses,omitempty"`

	VoteIssueID  uint   `json:"vote_issue_id,omitempty"`
	VoteTicketID string `json:"vote_ticket_id,omitempty"`
	// VoteStage is "confirm_down" while a downvote awaits its second
	// confirmation.
	VoteStage string `json:"vote_stage,omitempty"`
}

func (d Draft) Value() (driver.Value, error) {
	return json.Marshal(d)
}

func (d *Draft) Scan(value interface{}) error {
	if value == nil {
		*d = Draft{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("draft: unsupported column type")
	}
	if len(raw) == 0 {
		*d = Draft{}
		return nil
	}
	return json.Unmarshal(raw, d)
}

// Session is the persisted conversation state for one phone number.
// At most one row per phone exists.
type Session struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Phone     string    `gorm:"uniqueIndex;not null" json:"phone"`
	Step      Step      `gorm:"not null" json:"step"`
	Draft     Draft     `gorm:"type:jsonb" json:"draft"`
}
