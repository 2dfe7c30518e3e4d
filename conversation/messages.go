package conversation

import (
	"fmt"
	"strings"

	"github.com/salonewatch/bot-go/models"
	"github.com/salonewatch/bot-go/utils"
)

const (
	msgDisabled = "This number has been disabled. Contact support if you believe this is a mistake."

	msgAskName = "Welcome to SaloneWatch! 👋 Before we start, what is your name?"

	msgCancelled = "Okay, cancelled. Nothing was saved."

	msgEvidencePrompt = "📸 Please send a photo or short video of the problem (max 60 seconds), or reply \"skip\" if you don't have one."

	msgLocationPrompt = "📍 Where is the problem? Share your location pin, or type the address or area name."

	msgDescriptionPrompt = "📝 Describe the problem in your own words. You can type it or send a voice note (max 60 seconds)."

	msgGeocodeNotFound = "I couldn't find that place. Try a nearby landmark or street name, or share your location pin."

	msgGeocodeDown = "I couldn't look that address up right now. Please try again in a moment, or share your location pin."

	msgMediaRejectedUnsafe = "⚠️ That image can't be accepted. Please send a different photo, or reply \"skip\"."

	msgMediaRejectedTooLong = "⚠️ That clip is longer than 60 seconds. Please send a shorter one, or reply \"skip\"."

	msgVoiceRejectedTooLong = "⚠️ That voice note is longer than 60 seconds. Please send a shorter one or type your description."

	msgMediaFetchFailed = "I couldn't fetch that file. Please try sending it again."

	msgRateLimited = "You've reached today's limit of reports. Please try again tomorrow."

	msgAlreadyVoted = "You've already voted on that report. One vote per report per person."

	msgTicketPrompt = "🔎 Please send the ticket ID (e.g. SW-3F9A21C4)."

	msgTicketNotFound = "I couldn't find a report with that ticket ID. Check the code and try again, or reply 9 to go back."

	msgVotePrompt = "Reply 1 to confirm the problem is still there (👍), or 2 to report it as not a real problem (👎)."

	msgDownvoteConfirm = "A 👎 vote counts against the reporter. Are you sure? Reply 1 to confirm the downvote, or anything else to cancel."

	msgVoteCancelled = "Okay, vote cancelled."

	msgConfirmPrompt = "Reply 1 to submit this report, or 9 to cancel."

	msgFeedbackPrompt = "💬 We'd love to hear from you. Type your feedback below."

	msgFeedbackThanks = "🙏 Thank you, your feedback has been recorded."

	msgPersistFailed = "Sorry, something went wrong saving that. Please try again."

	msgGenericError = "Sorry, something went wrong on our side. Please try again in a moment."
)

func menuText(name string) string {
	greeting := "Welcome back"
	if name != "" {
		greeting = "Welcome back, " + name
	}
	return greeting + `! What would you like to do?

1️⃣ Report a problem
2️⃣ Check a report's status
3️⃣ Vote on a report
4️⃣ Send feedback

Reply with a number. You can type 9 at any time to start over.`
}

func welcomeText(name string) string {
	return fmt.Sprintf("Nice to meet you, %s! 🎉\n\n%s", name, menuText(""))
}

func summaryText(d models.Draft) string {
	var b strings.Builder
	b.WriteString("Here's your report:\n\n")
	fmt.Fprintf(&b, "📌 %s\n", d.Title)
	fmt.Fprintf(&b, "🏷 Category: %s\n", d.Category)
	fmt.Fprintf(&b, "⚡ Urgency: %s\n", d.Urgency)
	if d.Address != "" {
		fmt.Fprintf(&b, "📍 %s\n", d.Address)
	} else {
		fmt.Fprintf(&b, "📍 %.5f, %.5f\n", d.Latitude, d.Longitude)
	}
	fmt.Fprintf(&b, "📝 %s\n", d.Description)
	if d.EvidenceURL != "" {
		b.WriteString("📎 Evidence attached\n")
	}
	b.WriteString("\n" + msgConfirmPrompt)
	return b.String()
}

func duplicatesText(cands []models.DraftCandidate) string {
	var b strings.Builder
	b.WriteString("⚠️ This may already be reported nearby:\n\n")
	for i, c := range cands {
		fmt.Fprintf(&b, "%d. %s — %s (about %.0fm away)\n", i+1, c.TicketID, c.Title, c.DistanceM)
	}
	b.WriteString(`
1️⃣ See details of these reports
2️⃣ Report mine anyway
3️⃣ Vote on one of these instead

Reply with a number.`)
	return b.String()
}

func candidateDetailsText(issues []*models.Issue, host string) string {
	var b strings.Builder
	for i, issue := range issues {
		if issue == nil {
			continue
		}
		fmt.Fprintf(&b, "%d. %s — %s\nStatus: %s\n%s\n%s\n\n",
			i+1, issue.TicketID, issue.Title, issue.Status,
			utils.Truncate(issue.Description, 120),
			utils.TicketURL(host, issue.TicketID))
	}
	b.WriteString("Reply 2 to report yours anyway, or 3 to vote on one of these.")
	return b.String()
}

func voteSelectionText(cands []models.DraftCandidate) string {
	var b strings.Builder
	b.WriteString("Which report do you want to vote on?\n\n")
	for i, c := range cands {
		fmt.Fprintf(&b, "%d. %s — %s\n", i+1, c.TicketID, c.Title)
	}
	b.WriteString("\nReply with a number.")
	return b.String()
}

func addressSelectionText(addrs []models.DraftAddress) string {
	var b strings.Builder
	b.WriteString("I found a few matches. Which one is it?\n\n")
	for i, a := range addrs {
		fmt.Fprintf(&b, "%d. %s\n", i+1, a.Label)
	}
	b.WriteString("\nReply with a number.")
	return b.String()
}

func issueVoteIntroText(issue *models.Issue) string {
	return fmt.Sprintf("%s — %s\nStatus: %s\n\n%s",
		issue.TicketID, issue.Title, issue.Status, msgVotePrompt)
}

func statusText(issue *models.Issue, host string) string {
	return fmt.Sprintf("%s — %s\nStatus: %s\nReported: %s\n%s",
		issue.TicketID, issue.Title, issue.Status,
		issue.CreatedAt.Format("2 Jan 2006"),
		utils.TicketURL(host, issue.TicketID))
}

func reportCreatedText(issue *models.Issue, host string) string {
	return fmt.Sprintf(`✅ Your report is in! You earned 10 points.

Ticket ID: %s
Track it here: %s

Share the ticket ID so others can vote on it.`,
		issue.TicketID, utils.TicketURL(host, issue.TicketID))
}

func voteRecordedText(kind models.VoteKind) string {
	if kind == models.VoteUp {
		return "👍 Vote recorded. Thank you for confirming!"
	}
	return "👎 Vote recorded."
}
