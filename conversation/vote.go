package conversation

import (
	"context"
	"log"
	"strconv"
	"strings"

	"github.com/salonewatch/bot-go/models"
)

const voteStageConfirmDown = "confirm_down"

func normalizeTicket(text string) string {
	return strings.ToUpper(strings.TrimSpace(text))
}

func (e *Engine) handleVoteTicket(ctx context.Context, user *models.User, draft models.Draft, ev Event, text string) error {
	if ev.Kind != KindText || text == "" {
		e.reply(ctx, user.Phone, msgTicketPrompt)
		return nil
	}

	issue, err := e.deps.Issues.ByTicket(ctx, normalizeTicket(text))
	if err != nil {
		return err
	}
	if issue == nil {
		e.reply(ctx, user.Phone, msgTicketNotFound)
		return nil
	}

	existing, err := e.deps.Votes.Get(ctx, issue.ID, user.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		e.reply(ctx, user.Phone, msgAlreadyVoted)
		return e.showMenu(ctx, user)
	}

	draft.VoteIssueID = issue.ID
	draft.VoteTicketID = issue.TicketID
	if err := e.deps.Sessions.Put(ctx, user.Phone, models.StepAwaitingVoteConfirm, draft); err != nil {
		return err
	}
	e.reply(ctx, user.Phone, issueVoteIntroText(issue))
	return nil
}

func (e *Engine) handleDuplicateVoteSelection(ctx context.Context, user *models.User, draft models.Draft, text string) error {
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 || n > len(draft.Candidates) {
		e.reply(ctx, user.Phone, voteSelectionText(draft.Candidates))
		return nil
	}

	chosen := draft.Candidates[n-1]
	existing, err := e.deps.Votes.Get(ctx, chosen.IssueID, user.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		e.reply(ctx, user.Phone, msgAlreadyVoted)
		return e.showMenu(ctx, user)
	}

	draft.VoteIssueID = chosen.IssueID
	draft.VoteTicketID = chosen.TicketID
	if err := e.deps.Sessions.Put(ctx, user.Phone, models.StepAwaitingVoteConfirm, draft); err != nil {
		return err
	}
	e.reply(ctx, user.Phone, msgVotePrompt)
	return nil
}

func (e *Engine) handleVoteConfirm(ctx context.Context, user *models.User, draft models.Draft, text string) error {
	// A downvote needs a second explicit confirmation before it lands.
	if draft.VoteStage == voteStageConfirmDown {
		if text == "1" {
			return e.applyVote(ctx, user, draft, models.VoteDown)
		}
		e.reply(ctx, user.Phone, msgVoteCancelled)
		return e.showMenu(ctx, user)
	}

	switch text {
	case "1":
		return e.applyVote(ctx, user, draft, models.VoteUp)
	case "2":
		draft.VoteStage = voteStageConfirmDown
		if err := e.deps.Sessions.Put(ctx, user.Phone, models.StepAwaitingVoteConfirm, draft); err != nil {
			return err
		}
		e.reply(ctx, user.Phone, msgDownvoteConfirm)
		return nil
	default:
		e.reply(ctx, user.Phone, msgVotePrompt)
		return nil
	}
}

func (e *Engine) applyVote(ctx context.Context, user *models.User, draft models.Draft, kind models.VoteKind) error {
	issue, err := e.deps.Issues.ByTicket(ctx, draft.VoteTicketID)
	if err != nil {
		return err
	}
	if issue == nil {
		e.reply(ctx, user.Phone, msgTicketNotFound)
		return e.showMenu(ctx, user)
	}

	if err := e.deps.Votes.Upsert(ctx, issue.ID, user.ID, kind); err != nil {
		log.Printf("conversation: vote write failed for %s on %s: %v", user.Phone, issue.TicketID, err)
		e.reply(ctx, user.Phone, msgPersistFailed)
		return nil
	}

	// Upvotes reward the reporter, unless they are voting on their own
	// issue. Self-voting itself stays allowed.
	if kind == models.VoteUp && issue.ReporterID != user.ID {
		if err := e.deps.Users.AwardPoints(ctx, issue.ReporterID, &issue.ID, 1, "upvote"); err != nil {
			log.Printf("conversation: upvote award failed for issue %s: %v", issue.TicketID, err)
		}
	}

	e.reply(ctx, user.Phone, voteRecordedText(kind))
	return e.showMenu(ctx, user)
}

func (e *Engine) handleStatusTicket(ctx context.Context, user *models.User, text string) error {
	if text == "" {
		e.reply(ctx, user.Phone, msgTicketPrompt)
		return nil
	}

	issue, err := e.deps.Issues.ByTicket(ctx, normalizeTicket(text))
	if err != nil {
		return err
	}
	if issue == nil {
		e.reply(ctx, user.Phone, msgTicketNotFound)
		return nil
	}

	e.reply(ctx, user.Phone, statusText(issue, e.settings.PublicHost))
	return e.showMenu(ctx, user)
}

func (e *Engine) handleFeedback(ctx context.Context, user *models.User, ev Event, text string) error {
	if ev.Kind != KindText || text == "" {
		e.reply(ctx, user.Phone, msgFeedbackPrompt)
		return nil
	}

	if err := e.deps.Users.SaveFeedback(ctx, user.ID, text); err != nil {
		log.Printf("conversation: feedback write failed for %s: %v", user.Phone, err)
		e.reply(ctx, user.Phone, msgPersistFailed)
		return nil
	}

	// Feedback that opens with a ticket code is also pinned to that
	// issue's audit trail.
	if fields := strings.Fields(text); len(fields) > 0 && strings.HasPrefix(normalizeTicket(fields[0]), "SW-") {
		if issue, err := e.deps.Issues.ByTicket(ctx, normalizeTicket(fields[0])); err == nil && issue != nil {
			if err := e.deps.Issues.AddTracker(ctx, issue.ID, "feedback", text); err != nil {
				log.Printf("conversation: feedback tracker failed for %s: %v", issue.TicketID, err)
			}
		}
	}

	e.reply(ctx, user.Phone, msgFeedbackThanks)
	return e.showMenu(ctx, user)
}
