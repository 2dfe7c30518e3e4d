package notify

import (
	"context"
	"fmt"
	"log"

	"github.com/salonewatch/bot-go/models"
	"github.com/salonewatch/bot-go/utils"
)

type groupSource interface {
	ForCategory(ctx context.Context, category string) ([]models.ResponderGroup, error)
}

type sender interface {
	SendText(ctx context.Context, to, body string) error
}

// Fanout alerts the responder groups mapped to an issue's category.
type Fanout struct {
	Groups     groupSource
	Sender     sender
	PublicHost string
}

func NewFanout(groups groupSource, sender sender, publicHost string) *Fanout {
	return &Fanout{Groups: groups, Sender: sender, PublicHost: publicHost}
}

// IssueReported sends one alert per non-disabled group member. Missing
// group mappings and individual send failures are logged, never
// surfaced to the reporter.
func (f *Fanout) IssueReported(ctx context.Context, issue *models.Issue) {
	groups, err := f.Groups.ForCategory(ctx, issue.Category)
	if err != nil {
		log.Printf("notify: group lookup failed for %s (%s): %v", issue.TicketID, issue.Category, err)
		return
	}
	if len(groups) == 0 {
		log.Printf("notify: no responder group for category %s, skipping %s", issue.Category, issue.TicketID)
		return
	}

	body := f.alertBody(issue)
	seen := make(map[string]bool)
	for _, group := range groups {
		for _, member := range group.Members {
			phone := member.User.Phone
			if phone == "" || member.User.Disabled || seen[phone] {
				continue
			}
			seen[phone] = true
			if err := f.Sender.SendText(ctx, phone, body); err != nil {
				log.Printf("notify: alert to %s for %s failed: %v", phone, issue.TicketID, err)
			}
		}
	}
}

func (f *Fanout) alertBody(issue *models.Issue) string {
	where := issue.Address
	if where == "" {
		where = fmt.Sprintf("%.5f, %.5f", issue.Latitude, issue.Longitude)
	}
	return fmt.Sprintf(
		"🚨 New report %s\n%s\nCategory: %s\nUrgency: %s\nLocation: %s\n%s",
		issue.TicketID, issue.Title, issue.Category, issue.Urgency, where,
		utils.TicketURL(f.PublicHost, issue.TicketID),
	)
}
