package geo

import (
	"sort"

	"github.com/salonewatch/bot-go/models"
)

// MaxCandidates caps how many likely duplicates are offered to a
// reporter.
const MaxCandidates = 3

// Candidate is an issue within the search radius, annotated with its
// distance from the query point.
type Candidate struct {
	Issue     models.Issue
	DistanceM float64
}

// FindDuplicates ranks issues by great-circle distance from the query
// point and returns up to MaxCandidates within radiusM. Callers pass
// issues already filtered by status, lookback window and category; this
// function only measures and ranks. Equal distances keep creation
// order.
func FindDuplicates(issues []models.Issue, lat, lng, radiusM float64) []Candidate {
	var out []Candidate
	for _, issue := range issues {
		d := Distance(lat, lng, issue.Latitude, issue.Longitude)
		if d <= radiusM {
			out = append(out, Candidate{Issue: issue, DistanceM: d})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DistanceM < out[j].DistanceM
	})

	if len(out) > MaxCandidates {
		out = out[:MaxCandidates]
	}
	return out
}
