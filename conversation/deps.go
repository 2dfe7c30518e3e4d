package conversation

import (
	"context"
	"time"

	"github.com/salonewatch/bot-go/clients"
	"github.com/salonewatch/bot-go/media"
	"github.com/salonewatch/bot-go/models"
)

// UserStore is the slice of the user repository the engine needs.
type UserStore interface {
	GetOrCreateByPhone(ctx context.Context, phone string) (*models.User, error)
	SetName(ctx context.Context, userID uint, name string) error
	AwardPoints(ctx context.Context, userID uint, issueID *uint, delta int, reason string) error
	SaveFeedback(ctx context.Context, userID uint, body string) error
}

// SessionStore persists per-user conversation state. Get returns nil
// for an absent session, which the engine treats as the initial step.
type SessionStore interface {
	Get(ctx context.Context, phone string) (*models.Session, error)
	Put(ctx context.Context, phone string, step models.Step, draft models.Draft) error
	Clear(ctx context.Context, phone string) error
}

type IssueStore interface {
	ByTicket(ctx context.Context, ticketID string) (*models.Issue, error)
	CountSince(ctx context.Context, reporterID uint, since time.Time) (int64, error)
	Candidates(ctx context.Context, since time.Time, category string) ([]models.Issue, error)
	Finalize(ctx context.Context, reporterID uint, phone string, draft models.Draft, duplicateOf *uint) (*models.Issue, error)
	AddTracker(ctx context.Context, issueID uint, action, note string) error
}

type VoteStore interface {
	Get(ctx context.Context, issueID, userID uint) (*models.Vote, error)
	Upsert(ctx context.Context, issueID, userID uint, kind models.VoteKind) error
}

// MediaIntake runs the download/check/persist/transcribe pipeline.
type MediaIntake interface {
	Intake(ctx context.Context, mediaID string, kind media.Kind) (media.Result, error)
}

type Classifier interface {
	Classify(ctx context.Context, text string) (clients.Classification, error)
}

type Geocoder interface {
	Forward(ctx context.Context, query string) ([]clients.Place, error)
	Reverse(ctx context.Context, lat, lng float64) (string, error)
}

type Notifier interface {
	IssueReported(ctx context.Context, issue *models.Issue)
}

type Sender interface {
	SendText(ctx context.Context, to, body string) error
}
