package delivery

import (
	"fmt"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/coreybb/newsdash/models"
	"github.com/coreybb/newsdash/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompose(t *testing.T) {
	now := time.Date(2025, 6, 10, 23, 30, 0, 0, time.UTC)
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	require.NoError(t, err)

	var view []models.NewsItem
	for i := 0; i < MaxDigestItems+5; i++ {
		view = append(view, models.NewsItem{
			Source:    "Wire",
			Title:     fmt.Sprintf("Story %02d", i),
			URL:       "https://example.com",
			Published: models.NewTimestamp(now.Add(-time.Duration(i) * time.Hour)),
		})
	}
	summaries := []models.Summary{
		{Timestamp: models.NewTimestamp(now.Add(-48 * time.Hour)), Summary: "old summary"},
		{Timestamp: models.NewTimestamp(now), Summary: "**fresh** summary"},
	}

	d, err := NewComposer(render.NewRenderer(tokyo)).Compose(view, summaries, now)
	require.NoError(t, err)

	assert.Equal(t, "🤖 AI News Summary - 2025-06-11", d.Subject)
	assert.Equal(t, MaxDigestItems, strings.Count(d.HTML, `class="news-item"`))
	assert.Contains(t, d.HTML, "Story 00")
	assert.NotContains(t, d.HTML, "Story 24")
	assert.Contains(t, d.HTML, "<strong>fresh</strong>")
	assert.NotContains(t, d.HTML, "old summary")
	assert.Contains(t, d.HTML, "総ニュース数: 25")

	assert.NotContains(t, d.Text, "<div")
	assert.Contains(t, d.Text, "Story 00")
}
