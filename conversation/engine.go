package conversation

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/salonewatch/bot-go/models"
)

// Settings are the engine's tunables.
type Settings struct {
	DupRadiusM      float64
	DupLookbackDays int
	DailyReportCap  int
	PublicHost      string
	Location        *time.Location
}

// Deps bundles the engine's collaborators.
type Deps struct {
	Users    UserStore
	Sessions SessionStore
	Issues   IssueStore
	Votes    VoteStore
	Intake   MediaIntake
	AI       Classifier
	Geocoder Geocoder
	Notifier Notifier
	Sender   Sender
}

// Engine is the conversation state machine. One call to Handle fully
// processes one inbound event: it loads the session, runs the step
// handler, persists any transition and sends the replies before
// returning.
type Engine struct {
	deps     Deps
	settings Settings
	now      func() time.Time
}

func NewEngine(deps Deps, settings Settings) *Engine {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &Engine{deps: deps, settings: settings, now: time.Now}
}

func (e *Engine) Handle(ctx context.Context, ev Event) error {
	user, err := e.deps.Users.GetOrCreateByPhone(ctx, ev.From)
	if err != nil {
		log.Printf("conversation: user load failed for %s: %v", ev.From, err)
		e.reply(ctx, ev.From, msgGenericError)
		return err
	}
	if user.Disabled {
		e.reply(ctx, ev.From, msgDisabled)
		return nil
	}

	text := strings.TrimSpace(ev.Text)

	// The global reset pre-empts everything else, including a draft
	// mid-flow. Nothing from the aborted draft is written.
	if isResetCommand(text) {
		if err := e.deps.Sessions.Clear(ctx, ev.From); err != nil {
			log.Printf("conversation: reset failed for %s: %v", ev.From, err)
			e.reply(ctx, ev.From, msgGenericError)
			return err
		}
		e.reply(ctx, ev.From, msgCancelled+"\n\n"+menuText(user.Name))
		return nil
	}

	session, err := e.deps.Sessions.Get(ctx, ev.From)
	if err != nil {
		log.Printf("conversation: session load failed for %s: %v", ev.From, err)
		e.reply(ctx, ev.From, msgGenericError)
		return err
	}

	step := models.StepNew
	draft := models.Draft{}
	if session != nil {
		step = session.Step
		draft = session.Draft
	}

	if err := e.dispatch(ctx, user, step, draft, ev, text); err != nil {
		// Session is left as it was so the user can retry the step.
		log.Printf("conversation: %s at step %s (kind=%s) failed: %v", ev.From, step, ev.Kind, err)
		e.reply(ctx, ev.From, msgGenericError)
		return err
	}
	return nil
}

func (e *Engine) dispatch(ctx context.Context, user *models.User, step models.Step, draft models.Draft, ev Event, text string) error {
	switch step {
	case models.StepNew:
		if user.Name == "" {
			return e.handleFirstContact(ctx, user, ev, text)
		}
		// A returning user with no session is at the main menu.
		return e.handleMenu(ctx, user, text)
	case models.StepAwaitingName:
		return e.handleName(ctx, user, ev, text)
	case models.StepAwaitingCategory:
		return e.handleMenu(ctx, user, text)
	case models.StepAwaitingReportEvidence:
		return e.handleEvidence(ctx, user, draft, ev, text)
	case models.StepAwaitingReportLocation:
		return e.handleLocation(ctx, user, draft, ev, text)
	case models.StepAwaitingAddressSelection:
		return e.handleAddressSelection(ctx, user, draft, text)
	case models.StepAwaitingReportDescription:
		return e.handleDescription(ctx, user, draft, ev, text)
	case models.StepAwaitingDuplicateAction:
		return e.handleDuplicateAction(ctx, user, draft, text)
	case models.StepAwaitingDuplicateVote:
		return e.handleDuplicateVoteSelection(ctx, user, draft, text)
	case models.StepAwaitingReportConfirm:
		return e.handleReportConfirm(ctx, user, draft, text)
	case models.StepAwaitingVoteTicketID:
		return e.handleVoteTicket(ctx, user, draft, ev, text)
	case models.StepAwaitingVoteConfirm:
		return e.handleVoteConfirm(ctx, user, draft, text)
	case models.StepAwaitingStatusTicketID:
		return e.handleStatusTicket(ctx, user, text)
	case models.StepAwaitingFeedback:
		return e.handleFeedback(ctx, user, ev, text)
	default:
		// Unknown stored step, e.g. after a rollout that removed one.
		// Recover to the menu rather than trapping the user.
		return e.showMenu(ctx, user)
	}
}

func isResetCommand(text string) bool {
	switch strings.ToLower(text) {
	case "reset", "cancel", "9":
		return true
	}
	return false
}

func (e *Engine) handleFirstContact(ctx context.Context, user *models.User, ev Event, text string) error {
	if ev.Kind == KindText {
		if name, ok := extractPatternName(text); ok {
			return e.registerName(ctx, user, name)
		}
	}
	if err := e.deps.Sessions.Put(ctx, user.Phone, models.StepAwaitingName, models.Draft{}); err != nil {
		return err
	}
	e.reply(ctx, user.Phone, msgAskName)
	return nil
}

func (e *Engine) handleName(ctx context.Context, user *models.User, ev Event, text string) error {
	if ev.Kind != KindText || text == "" {
		e.reply(ctx, user.Phone, msgAskName)
		return nil
	}
	name := extractName(text)
	if name == "" {
		e.reply(ctx, user.Phone, msgAskName)
		return nil
	}
	return e.registerName(ctx, user, name)
}

func (e *Engine) registerName(ctx context.Context, user *models.User, name string) error {
	if err := e.deps.Users.SetName(ctx, user.ID, name); err != nil {
		return err
	}
	user.Name = name
	if err := e.deps.Sessions.Put(ctx, user.Phone, models.StepAwaitingCategory, models.Draft{}); err != nil {
		return err
	}
	e.reply(ctx, user.Phone, welcomeText(name))
	return nil
}

func (e *Engine) handleMenu(ctx context.Context, user *models.User, text string) error {
	switch text {
	case "1":
		count, err := e.deps.Issues.CountSince(ctx, user.ID, e.startOfToday())
		if err != nil {
			return err
		}
		if count >= int64(e.settings.DailyReportCap) {
			e.reply(ctx, user.Phone, msgRateLimited)
			return nil
		}
		if err := e.deps.Sessions.Put(ctx, user.Phone, models.StepAwaitingReportEvidence, models.Draft{}); err != nil {
			return err
		}
		e.reply(ctx, user.Phone, msgEvidencePrompt)
		return nil
	case "2":
		if err := e.deps.Sessions.Put(ctx, user.Phone, models.StepAwaitingStatusTicketID, models.Draft{}); err != nil {
			return err
		}
		e.reply(ctx, user.Phone, msgTicketPrompt)
		return nil
	case "3":
		if err := e.deps.Sessions.Put(ctx, user.Phone, models.StepAwaitingVoteTicketID, models.Draft{}); err != nil {
			return err
		}
		e.reply(ctx, user.Phone, msgTicketPrompt)
		return nil
	case "4":
		if err := e.deps.Sessions.Put(ctx, user.Phone, models.StepAwaitingFeedback, models.Draft{}); err != nil {
			return err
		}
		e.reply(ctx, user.Phone, msgFeedbackPrompt)
		return nil
	default:
		return e.showMenu(ctx, user)
	}
}

func (e *Engine) showMenu(ctx context.Context, user *models.User) error {
	if err := e.deps.Sessions.Put(ctx, user.Phone, models.StepAwaitingCategory, models.Draft{}); err != nil {
		return err
	}
	e.reply(ctx, user.Phone, menuText(user.Name))
	return nil
}

// startOfToday is the daily report cap boundary: midnight in the
// configured zone.
func (e *Engine) startOfToday() time.Time {
	t := e.now().In(e.settings.Location)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, e.settings.Location)
}

func (e *Engine) reply(ctx context.Context, to, body string) {
	if err := e.deps.Sender.SendText(ctx, to, body); err != nil {
		log.Printf("conversation: reply to %s failed: %v", to, err)
	}
}
