package delivery

import (
	"fmt"
	"strings"
	"time"

	"github.com/coreybb/newsdash/models"
	"github.com/coreybb/newsdash/render"
	"github.com/coreybb/newsdash/stats"
	"github.com/jaytaylor/html2text"
)

// MaxDigestItems caps the news items included in one digest.
const MaxDigestItems = 20

// Digest is a composed mail body ready to be sent.
type Digest struct {
	Subject string
	Date    time.Time
	HTML    string
	Text    string
}

// Composer renders digests with the dashboard renderer.
type Composer struct {
	renderer *render.Renderer
}

func NewComposer(renderer *render.Renderer) *Composer {
	return &Composer{renderer: renderer}
}

// Compose renders the stats, the newest items of view and the latest summary.
func (c *Composer) Compose(view []models.NewsItem, summaries []models.Summary, now time.Time) (*Digest, error) {
	total, recent, companies, lastUpdate := c.renderer.StatFields(stats.Compute(view, now))

	items := render.SortNews(view)
	if len(items) > MaxDigestItems {
		items = items[:MaxDigestItems]
	}

	var b strings.Builder
	b.WriteString(`<html><body>`)
	fmt.Fprintf(&b, `<h1>AI News Summary - %s</h1>`, render.Escape(c.renderer.FormatDate(now)))
	fmt.Fprintf(&b, `<p>総ニュース数: %s / 24時間以内: %s / 注目企業: %s / 最終更新: %s</p>`,
		total, recent, companies, render.Escape(lastUpdate))

	if sorted := render.SortSummaries(summaries); len(sorted) > 0 {
		b.WriteString(c.renderer.Summary(sorted[0]))
	}
	b.WriteString(c.renderer.News(items, now))
	b.WriteString(`</body></html>`)

	html := b.String()
	text, err := html2text.FromString(html, html2text.Options{PrettyTables: true})
	if err != nil {
		return nil, fmt.Errorf("failed to build plain text digest: %w", err)
	}

	return &Digest{
		Subject: "🤖 AI News Summary - " + now.In(c.renderer.Location()).Format("2006-01-02"),
		Date:    now,
		HTML:    html,
		Text:    text,
	}, nil
}
