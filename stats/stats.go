// Package stats computes the counters shown above the news timeline.
package stats

import (
	"strings"
	"time"

	"github.com/coreybb/newsdash/models"
)

// KnownCompanies is the fixed list the unique-company counter recognises.
var KnownCompanies = []string{"OpenAI", "Google", "Microsoft", "Apple", "NVIDIA", "Meta", "Amazon"}

// RecentWindow is the absolute look-back used by the recent counter.
const RecentWindow = 24 * time.Hour

type Stats struct {
	Total           int              `json:"total"`
	Recent          int              `json:"recent"`
	UniqueCompanies int              `json:"unique_companies"`
	LastUpdate      models.Timestamp `json:"last_update"`
	HasLastUpdate   bool             `json:"-"`
}

// Compute derives every counter from the filtered view.
func Compute(view []models.NewsItem, now time.Time) Stats {
	s := Stats{
		Total:           len(view),
		Recent:          RecentCount(view, now),
		UniqueCompanies: len(Companies(view)),
	}
	if latest, ok := Latest(view); ok {
		s.LastUpdate = latest.Published
		s.HasLastUpdate = true
	}
	return s
}

// RecentCount counts items published at or after now minus RecentWindow.
func RecentCount(view []models.NewsItem, now time.Time) int {
	cutoff := now.Add(-RecentWindow)
	n := 0
	for _, item := range view {
		if !item.Published.Before(cutoff) {
			n++
		}
	}
	return n
}

// Companies returns the known companies mentioned in any title, in KnownCompanies order.
func Companies(view []models.NewsItem) []string {
	found := make(map[string]bool, len(KnownCompanies))
	for _, item := range view {
		title := strings.ToLower(item.Title)
		for _, company := range KnownCompanies {
			if strings.Contains(title, strings.ToLower(company)) {
				found[company] = true
			}
		}
	}

	out := make([]string, 0, len(found))
	for _, company := range KnownCompanies {
		if found[company] {
			out = append(out, company)
		}
	}
	return out
}

// Latest returns the most recently published item. The first of several equal maxima wins.
func Latest(view []models.NewsItem) (models.NewsItem, bool) {
	if len(view) == 0 {
		return models.NewsItem{}, false
	}
	latest := view[0]
	for _, item := range view[1:] {
		if item.Published.After(latest.Published.Time) {
			latest = item
		}
	}
	return latest, true
}
