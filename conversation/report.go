package conversation

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/salonewatch/bot-go/clients"
	"github.com/salonewatch/bot-go/geo"
	"github.com/salonewatch/bot-go/media"
	"github.com/salonewatch/bot-go/models"
	"github.com/salonewatch/bot-go/utils"
)

// defaultCategory is used when AI classification is unavailable.
const defaultCategory = "Other"

func (e *Engine) handleEvidence(ctx context.Context, user *models.User, draft models.Draft, ev Event, text string) error {
	switch ev.Kind {
	case KindImage, KindVideo:
		kind := media.KindImage
		if ev.Kind == KindVideo {
			kind = media.KindVideo
		}
		result, err := e.deps.Intake.Intake(ctx, ev.MediaID, kind)
		switch {
		case errors.Is(err, media.ErrUnsafeImage):
			e.reply(ctx, user.Phone, msgMediaRejectedUnsafe)
			return nil
		case errors.Is(err, media.ErrTooLong):
			e.reply(ctx, user.Phone, msgMediaRejectedTooLong)
			return nil
		case err != nil:
			log.Printf("conversation: evidence intake failed for %s: %v", user.Phone, err)
			e.reply(ctx, user.Phone, msgMediaFetchFailed)
			return nil
		}
		draft.EvidenceURL = result.Path
		if err := e.deps.Sessions.Put(ctx, user.Phone, models.StepAwaitingReportLocation, draft); err != nil {
			return err
		}
		e.reply(ctx, user.Phone, msgLocationPrompt)
		return nil
	case KindText:
		if strings.EqualFold(text, "skip") {
			if err := e.deps.Sessions.Put(ctx, user.Phone, models.StepAwaitingReportLocation, draft); err != nil {
				return err
			}
			e.reply(ctx, user.Phone, msgLocationPrompt)
			return nil
		}
	}
	e.reply(ctx, user.Phone, msgEvidencePrompt)
	return nil
}

func (e *Engine) handleLocation(ctx context.Context, user *models.User, draft models.Draft, ev Event, text string) error {
	switch ev.Kind {
	case KindLocation:
		address, err := e.deps.Geocoder.Reverse(ctx, ev.Latitude, ev.Longitude)
		if err != nil {
			// Coordinates are what matter; a missing label is fine.
			log.Printf("conversation: reverse geocode failed for %s: %v", user.Phone, err)
			address = fmt.Sprintf("%.5f, %.5f", ev.Latitude, ev.Longitude)
		}
		draft.Latitude = ev.Latitude
		draft.Longitude = ev.Longitude
		draft.Address = address
		if err := e.deps.Sessions.Put(ctx, user.Phone, models.StepAwaitingReportDescription, draft); err != nil {
			return err
		}
		e.reply(ctx, user.Phone, msgDescriptionPrompt)
		return nil
	case KindText:
		if text == "" {
			e.reply(ctx, user.Phone, msgLocationPrompt)
			return nil
		}
		places, err := e.deps.Geocoder.Forward(ctx, text)
		if err != nil {
			log.Printf("conversation: forward geocode failed for %s: %v", user.Phone, err)
			e.reply(ctx, user.Phone, msgGeocodeDown)
			return nil
		}
		switch len(places) {
		case 0:
			e.reply(ctx, user.Phone, msgGeocodeNotFound)
			return nil
		case 1:
			draft.Latitude = places[0].Latitude
			draft.Longitude = places[0].Longitude
			draft.Address = places[0].Label
			if err := e.deps.Sessions.Put(ctx, user.Phone, models.StepAwaitingReportDescription, draft); err != nil {
				return err
			}
			e.reply(ctx, user.Phone, msgDescriptionPrompt)
			return nil
		default:
			draft.Addresses = toDraftAddresses(places)
			if err := e.deps.Sessions.Put(ctx, user.Phone, models.StepAwaitingAddressSelection, draft); err != nil {
				return err
			}
			e.reply(ctx, user.Phone, addressSelectionText(draft.Addresses))
			return nil
		}
	}
	e.reply(ctx, user.Phone, msgLocationPrompt)
	return nil
}

func (e *Engine) handleAddressSelection(ctx context.Context, user *models.User, draft models.Draft, text string) error {
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 || n > len(draft.Addresses) {
		if len(draft.Addresses) == 0 {
			e.reply(ctx, user.Phone, msgLocationPrompt)
			return nil
		}
		e.reply(ctx, user.Phone, addressSelectionText(draft.Addresses))
		return nil
	}

	chosen := draft.Addresses[n-1]
	draft.Latitude = chosen.Latitude
	draft.Longitude = chosen.Longitude
	draft.Address = chosen.Label
	draft.Addresses = nil
	if err := e.deps.Sessions.Put(ctx, user.Phone, models.StepAwaitingReportDescription, draft); err != nil {
		return err
	}
	e.reply(ctx, user.Phone, msgDescriptionPrompt)
	return nil
}

func (e *Engine) handleDescription(ctx context.Context, user *models.User, draft models.Draft, ev Event, text string) error {
	var description string
	switch ev.Kind {
	case KindAudio:
		result, err := e.deps.Intake.Intake(ctx, ev.MediaID, media.KindAudio)
		if errors.Is(err, media.ErrTooLong) {
			e.reply(ctx, user.Phone, msgVoiceRejectedTooLong)
			return nil
		}
		if err != nil {
			log.Printf("conversation: voice intake failed for %s: %v", user.Phone, err)
			e.reply(ctx, user.Phone, msgMediaFetchFailed)
			return nil
		}
		draft.AudioURL = result.Path
		description = result.Transcript
	case KindText:
		if text == "" {
			e.reply(ctx, user.Phone, msgDescriptionPrompt)
			return nil
		}
		description = text
	default:
		e.reply(ctx, user.Phone, msgDescriptionPrompt)
		return nil
	}
	draft.Description = description

	classification, err := e.deps.AI.Classify(ctx, description)
	if err != nil {
		log.Printf("conversation: classification fallback for %s: %v", user.Phone, err)
		classification = clients.Classification{
			Category: defaultCategory,
			Title:    utils.Truncate(description, 30),
			Urgency:  "medium",
		}
	}
	draft.Category = classification.Category
	draft.Title = classification.Title
	draft.Urgency = classification.Urgency

	since := e.now().AddDate(0, 0, -e.settings.DupLookbackDays)
	issues, err := e.deps.Issues.Candidates(ctx, since, draft.Category)
	if err != nil {
		// The duplicate check is advisory; a failed lookup must not
		// block the report.
		log.Printf("conversation: duplicate lookup failed for %s: %v", user.Phone, err)
		issues = nil
	}
	candidates := geo.FindDuplicates(issues, draft.Latitude, draft.Longitude, e.settings.DupRadiusM)

	if len(candidates) == 0 {
		if err := e.deps.Sessions.Put(ctx, user.Phone, models.StepAwaitingReportConfirm, draft); err != nil {
			return err
		}
		e.reply(ctx, user.Phone, summaryText(draft))
		return nil
	}

	draft.Candidates = toDraftCandidates(candidates)
	if err := e.deps.Sessions.Put(ctx, user.Phone, models.StepAwaitingDuplicateAction, draft); err != nil {
		return err
	}
	e.reply(ctx, user.Phone, duplicatesText(draft.Candidates))
	return nil
}

func (e *Engine) handleDuplicateAction(ctx context.Context, user *models.User, draft models.Draft, text string) error {
	switch text {
	case "1":
		issues := make([]*models.Issue, 0, len(draft.Candidates))
		for _, c := range draft.Candidates {
			issue, err := e.deps.Issues.ByTicket(ctx, c.TicketID)
			if err != nil {
				return err
			}
			issues = append(issues, issue)
		}
		e.reply(ctx, user.Phone, candidateDetailsText(issues, e.settings.PublicHost))
		return nil
	case "2":
		if err := e.deps.Sessions.Put(ctx, user.Phone, models.StepAwaitingReportConfirm, draft); err != nil {
			return err
		}
		e.reply(ctx, user.Phone, summaryText(draft))
		return nil
	case "3":
		if err := e.deps.Sessions.Put(ctx, user.Phone, models.StepAwaitingDuplicateVote, draft); err != nil {
			return err
		}
		e.reply(ctx, user.Phone, voteSelectionText(draft.Candidates))
		return nil
	default:
		e.reply(ctx, user.Phone, duplicatesText(draft.Candidates))
		return nil
	}
}

func (e *Engine) handleReportConfirm(ctx context.Context, user *models.User, draft models.Draft, text string) error {
	if text != "1" {
		e.reply(ctx, user.Phone, msgConfirmPrompt)
		return nil
	}

	// Reporting "anyway" past the duplicate warning links the new issue
	// to the nearest candidate so operations can fold them together.
	var duplicateOf *uint
	if len(draft.Candidates) > 0 {
		id := draft.Candidates[0].IssueID
		duplicateOf = &id
	}

	issue, err := e.deps.Issues.Finalize(ctx, user.ID, user.Phone, draft, duplicateOf)
	if err != nil {
		// Session stays at confirmation so the user can retry.
		log.Printf("conversation: finalize failed for %s: %v", user.Phone, err)
		e.reply(ctx, user.Phone, msgPersistFailed)
		return nil
	}

	e.deps.Notifier.IssueReported(ctx, issue)
	e.reply(ctx, user.Phone, reportCreatedText(issue, e.settings.PublicHost))
	return nil
}

func toDraftAddresses(places []clients.Place) []models.DraftAddress {
	out := make([]models.DraftAddress, len(places))
	for i, p := range places {
		out[i] = models.DraftAddress{Label: p.Label, Latitude: p.Latitude, Longitude: p.Longitude}
	}
	return out
}

func toDraftCandidates(cands []geo.Candidate) []models.DraftCandidate {
	out := make([]models.DraftCandidate, len(cands))
	for i, c := range cands {
		out[i] = models.DraftCandidate{
			IssueID:   c.Issue.ID,
			TicketID:  c.Issue.TicketID,
			Title:     c.Issue.Title,
			DistanceM: c.DistanceM,
		}
	}
	return out
}
