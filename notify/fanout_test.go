package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/salonewatch/bot-go/models"
	"github.com/stretchr/testify/assert"
)

type stubGroups struct {
	groups []models.ResponderGroup
	err    error
}

func (s *stubGroups) ForCategory(_ context.Context, _ string) ([]models.ResponderGroup, error) {
	return s.groups, s.err
}

type stubSender struct {
	failFor map[string]bool
	sent    []string
}

func (s *stubSender) SendText(_ context.Context, to, _ string) error {
	if s.failFor[to] {
		return errors.New("unreachable")
	}
	s.sent = append(s.sent, to)
	return nil
}

func member(phone string, disabled bool) models.GroupMember {
	return models.GroupMember{User: models.User{Phone: phone, Disabled: disabled}}
}

func testIssue() *models.Issue {
	return &models.Issue{
		ID: 7, TicketID: "SW-1A2B3C4D", Title: "Blocked drain",
		Category: "Sanitation", Urgency: "high",
		Latitude: 8.4657, Longitude: -13.2317,
	}
}

func TestIssueReportedAlertsEachMemberOnce(t *testing.T) {
	sender := &stubSender{}
	f := NewFanout(&stubGroups{groups: []models.ResponderGroup{
		{Name: "Sanitation West", Members: []models.GroupMember{
			member("23276000010", false),
			member("23276000011", false),
		}},
		// Overlapping membership must not double-alert.
		{Name: "City Ops", Members: []models.GroupMember{
			member("23276000010", false),
		}},
	}}, sender, "salonewatch.org")

	f.IssueReported(context.Background(), testIssue())

	assert.Equal(t, []string{"23276000010", "23276000011"}, sender.sent)
}

func TestIssueReportedSkipsDisabledAndPhonelessMembers(t *testing.T) {
	sender := &stubSender{}
	f := NewFanout(&stubGroups{groups: []models.ResponderGroup{
		{Members: []models.GroupMember{
			member("23276000010", true),
			member("", false),
			member("23276000012", false),
		}},
	}}, sender, "salonewatch.org")

	f.IssueReported(context.Background(), testIssue())

	assert.Equal(t, []string{"23276000012"}, sender.sent)
}

func TestIssueReportedNoGroupsIsANoOp(t *testing.T) {
	sender := &stubSender{}
	f := NewFanout(&stubGroups{}, sender, "salonewatch.org")

	f.IssueReported(context.Background(), testIssue())

	assert.Empty(t, sender.sent)
}

func TestIssueReportedLookupFailureIsSwallowed(t *testing.T) {
	sender := &stubSender{}
	f := NewFanout(&stubGroups{err: errors.New("db down")}, sender, "salonewatch.org")

	f.IssueReported(context.Background(), testIssue())

	assert.Empty(t, sender.sent)
}

func TestIssueReportedSendFailureDoesNotStopFanout(t *testing.T) {
	sender := &stubSender{failFor: map[string]bool{"23276000010": true}}
	f := NewFanout(&stubGroups{groups: []models.ResponderGroup{
		{Members: []models.GroupMember{
			member("23276000010", false),
			member("23276000011", false),
		}},
	}}, sender, "salonewatch.org")

	f.IssueReported(context.Background(), testIssue())

	assert.Equal(t, []string{"23276000011"}, sender.sent)
}

func TestAlertBodyCarriesTicketLink(t *testing.T) {
	f := NewFanout(&stubGroups{}, &stubSender{}, "salonewatch.org")
	issue := testIssue()
	issue.Address = "Kissy Road, Freetown"

	body := f.alertBody(issue)

	assert.Contains(t, body, "SW-1A2B3C4D")
	assert.Contains(t, body, "Kissy Road, Freetown")
	assert.Contains(t, body, "https://salonewatch.org/?ticket=SW-1A2B3C4D")
}
