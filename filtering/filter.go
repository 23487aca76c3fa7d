// Package filtering derives the filtered view of the loaded news items.
package filtering

import (
	"strings"
	"time"

	"github.com/coreybb/newsdash/models"
)

const day = 24 * time.Hour

// CeilDiv divides elapsed by unit, rounding towards positive infinity.
func CeilDiv(elapsed, unit time.Duration) int64 {
	q := elapsed / unit
	if elapsed%unit > 0 {
		q++
	}
	return int64(q)
}

// ElapsedDays is the number of whole days, rounded up, between t and now.
func ElapsedDays(now, t time.Time) int64 {
	return CeilDiv(now.Sub(t), day)
}

// Apply returns the items that pass every active predicate of state, in input order.
// The result never aliases items; it is rebuilt from scratch on every call.
func Apply(items []models.NewsItem, state models.FilterState, now time.Time) []models.NewsItem {
	out := make([]models.NewsItem, 0, len(items))
	for _, item := range items {
		if Match(item, state, now) {
			out = append(out, item)
		}
	}
	return out
}

// Match evaluates the predicates in order, stopping at the first failure.
func Match(item models.NewsItem, state models.FilterState, now time.Time) bool {
	if maxDays := state.Date.MaxDays(); maxDays >= 0 {
		if ElapsedDays(now, item.Published.Time) > int64(maxDays) {
			return false
		}
	}

	if state.Source != models.FilterAll && item.Source != state.Source {
		return false
	}

	if state.Company != models.FilterAll &&
		!strings.Contains(strings.ToLower(item.Title), strings.ToLower(state.Company)) {
		return false
	}

	if state.Keyword != "" &&
		!strings.Contains(strings.ToLower(item.SearchText()), strings.ToLower(state.Keyword)) {
		return false
	}

	return true
}

// Sources lists the distinct item sources in first-seen order.
func Sources(items []models.NewsItem) []string {
	seen := make(map[string]struct{}, len(items))
	sources := make([]string, 0)
	for _, item := range items {
		if _, ok := seen[item.Source]; ok {
			continue
		}
		seen[item.Source] = struct{}{}
		sources = append(sources, item.Source)
	}
	return sources
}
