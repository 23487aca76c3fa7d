// Package render turns the filtered view and the summaries into dashboard markup.
package render

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/coreybb/newsdash/models"
	"github.com/microcosm-cc/bluemonday"
)

// Renderer holds the display location and the policy applied to summary markup.
type Renderer struct {
	loc           *time.Location
	summaryPolicy *bluemonday.Policy
}

func NewRenderer(loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.Local
	}
	return &Renderer{
		loc:           loc,
		summaryPolicy: newSummaryPolicy(),
	}
}

// newSummaryPolicy admits exactly the markup the markdown rules emit.
func newSummaryPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowElements("h1", "h2", "h3", "p", "br", "ul", "li", "strong")
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	p.AllowAttrs("rel").Matching(regexp.MustCompile(`^noopener noreferrer$`)).OnElements("a")
	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowRelativeURLs(true)
	return p
}

// Location returns the time zone dates are displayed in.
func (r *Renderer) Location() *time.Location {
	return r.loc
}

// FormatDate formats t in the renderer's location.
func (r *Renderer) FormatDate(t time.Time) string {
	return FormatDate(t, r.loc)
}

// SortNews returns a copy of items ordered newest first. Items with equal
// timestamps keep their relative order.
func SortNews(items []models.NewsItem) []models.NewsItem {
	sorted := make([]models.NewsItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Published.After(sorted[j].Published.Time)
	})
	return sorted
}

// SortSummaries returns a copy of summaries ordered newest first, stable on ties.
func SortSummaries(summaries []models.Summary) []models.Summary {
	sorted := make([]models.Summary, len(summaries))
	copy(sorted, summaries)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp.After(sorted[j].Timestamp.Time)
	})
	return sorted
}

// News renders the news timeline for view.
func (r *Renderer) News(view []models.NewsItem, now time.Time) string {
	if len(view) == 0 {
		return Notice(labelNoMatches)
	}

	var b strings.Builder
	for _, item := range SortNews(view) {
		b.WriteString(r.NewsItem(item, now))
	}
	return b.String()
}

// NewsItem renders a single timeline entry.
func (r *Renderer) NewsItem(item models.NewsItem, now time.Time) string {
	when := r.FormatDate(item.Published.Time)
	if !item.Published.IsZero() {
		when += " (" + TimeAgo(now, item.Published.Time) + ")"
	}

	content := Escape(item.ContentOr(labelNoContent))

	return fmt.Sprintf(`<div class="news-item">
  <div class="news-header">
    <div class="news-meta">
      <span class="news-source">%s</span>
      <span class="news-date">%s</span>
    </div>
    <h3 class="news-title"><a href="%s" target="_blank" rel="noopener noreferrer">%s <i class="fas fa-external-link-alt"></i></a></h3>
  </div>
  <div class="news-content"><div class="news-summary">%s</div></div>
</div>
`, Escape(item.Source), Escape(when), SafeURL(item.URL), Escape(item.Title), content)
}

// Summaries renders every summary, newest first.
func (r *Renderer) Summaries(summaries []models.Summary) string {
	if len(summaries) == 0 {
		return Notice(labelNoSummaries)
	}

	var b strings.Builder
	for _, s := range SortSummaries(summaries) {
		b.WriteString(r.Summary(s))
	}
	return b.String()
}

// Summary renders one summary block.
func (r *Renderer) Summary(s models.Summary) string {
	var headlines string
	if s.Headlines != "" {
		headlines = fmt.Sprintf(`<div class="headlines-section"><h4><i class="fas fa-newspaper"></i> %s</h4><div>%s</div></div>`,
			Escape(labelHeadlines), Headlines(string(s.Headlines)))
	}

	return fmt.Sprintf(`<div class="summary-item">
  <div class="summary-header">
    <div class="summary-date">%s</div>
    <div class="summary-stats">%s</div>
  </div>
  <div class="summary-content">%s<div class="summary-text">%s</div></div>
</div>
`, Escape(r.FormatDate(s.Timestamp.Time)), Escape(fmt.Sprintf(labelNewsCountFormat, s.NewsCount)), headlines,
		r.summaryPolicy.Sanitize(Markdown(s.Summary)))
}

// Notice renders an informational placeholder block.
func Notice(message string) string {
	return `<div class="loading">` + Escape(message) + `</div>`
}

// Error renders the single inline error block that replaces the timeline.
func Error(message string) string {
	return `<div class="loading error"><i class="fas fa-exclamation-triangle"></i> ` + Escape(message) + `</div>`
}
