package render

import (
	"strings"
	"testing"
	"time"

	"github.com/coreybb/newsdash/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func TestTimeAgo(t *testing.T) {
	tests := []struct {
		name string
		age  time.Duration
		want string
	}{
		{"just now", 10 * time.Minute, "1時間以内"},
		{"one hour", time.Hour, "1時間前"},
		{"hour rounds up", time.Hour + time.Minute, "2時間前"},
		{"23h30m", 23*time.Hour + 30*time.Minute, "24時間前"},
		{"one day", 24 * time.Hour, "1日前"},
		{"day rounds up", 24*time.Hour + time.Second, "2日前"},
		{"future uses distance", -3 * time.Hour, "3時間前"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TimeAgo(now, now.Add(-tt.age)))
		})
	}
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "2025年6月10日 12:00", FormatDate(now, time.UTC))
	assert.Equal(t, "-", FormatDate(time.Time{}, time.UTC))
}

func TestSafeURL(t *testing.T) {
	assert.Equal(t, "https://a.example/?x=1&amp;y=2", SafeURL("https://a.example/?x=1&y=2"))
	assert.Equal(t, "/relative", SafeURL("/relative"))
	assert.Equal(t, "#", SafeURL("javascript:alert(1)"))
	assert.Equal(t, "#", SafeURL("data:text/html,hi"))
}

func TestSortNewsIsStableDescending(t *testing.T) {
	same := models.NewTimestamp(now.Add(-time.Hour))
	items := []models.NewsItem{
		{Title: "old", Published: models.NewTimestamp(now.Add(-48 * time.Hour))},
		{Title: "tie-1", Published: same},
		{Title: "newest", Published: models.NewTimestamp(now)},
		{Title: "tie-2", Published: same},
		{Title: "undated"},
	}

	sorted := SortNews(items)
	got := make([]string, 0, len(sorted))
	for _, it := range sorted {
		got = append(got, it.Title)
	}
	assert.Equal(t, []string{"newest", "tie-1", "tie-2", "old", "undated"}, got)
	assert.Equal(t, "old", items[0].Title, "input must not be reordered")
}

func TestNewsEscapesAndFallsBack(t *testing.T) {
	r := NewRenderer(time.UTC)
	out := r.News([]models.NewsItem{
		{
			Source:    "Tech & Co",
			Title:     `<img src=x onerror="alert(1)">`,
			URL:       "https://a.example",
			Published: models.NewTimestamp(now.Add(-2 * time.Hour)),
		},
		{
			Source:    "Wire",
			Title:     "With content",
			Content:   strPtr("<p>Tom & Jerry</p>"),
			URL:       "javascript:alert(1)",
			Published: models.NewTimestamp(now.Add(-3 * 24 * time.Hour)),
		},
	}, now)

	assert.Equal(t, 2, strings.Count(out, `class="news-item"`))
	assert.Contains(t, out, "Tech &amp; Co")
	assert.Contains(t, out, "&lt;img src=x")
	assert.NotContains(t, out, "<img")
	assert.Contains(t, out, "コンテンツが利用できません。")
	assert.Contains(t, out, "&lt;p&gt;Tom &amp; Jerry&lt;/p&gt;")
	assert.NotContains(t, out, "<p>Tom")
	assert.Contains(t, out, `href="#"`)
	assert.Contains(t, out, "2時間前")
	assert.Contains(t, out, "3日前")
	assert.Less(t, strings.Index(out, "Tech &amp; Co"), strings.Index(out, "Wire"))
}

func TestNewsContentIsEscapedNotStripped(t *testing.T) {
	out := NewRenderer(time.UTC).NewsItem(models.NewsItem{
		Source:    "Wire",
		Title:     "Generics",
		Content:   strPtr("Use the <T> generic and <b>bold</b> <script>x()</script>tail"),
		URL:       "https://a.example",
		Published: models.NewTimestamp(now),
	}, now)

	assert.Contains(t, out, "Use the &lt;T&gt; generic and &lt;b&gt;bold&lt;/b&gt; &lt;script&gt;x()&lt;/script&gt;tail")
	assert.NotContains(t, out, "<script>")
}

func TestSummaryMarkupKeepsRuleOutput(t *testing.T) {
	out := NewRenderer(time.UTC).Summary(models.Summary{
		Timestamp: models.NewTimestamp(now),
		Summary:   "# Title\nsee [site](https://a.example) and [bad](javascript:x)",
	})

	assert.Contains(t, out, "<h1>Title</h1>")
	assert.Contains(t, out, `href="https://a.example"`)
	assert.Contains(t, out, `target="_blank"`)
	assert.Contains(t, out, `rel="noopener noreferrer"`)
	assert.NotContains(t, out, "javascript:")
}

func TestNewsEmptyView(t *testing.T) {
	out := NewRenderer(time.UTC).News(nil, now)
	assert.Equal(t, `<div class="loading">フィルタに一致するニュースが見つかりません。</div>`, out)
}

func TestSummaries(t *testing.T) {
	r := NewRenderer(time.UTC)
	assert.Contains(t, r.Summaries(nil), "サマリーデータが利用できません。")

	out := r.Summaries([]models.Summary{
		{Timestamp: models.NewTimestamp(now.Add(-24 * time.Hour)), NewsCount: 3, Summary: "older"},
		{
			Timestamp: models.NewTimestamp(now),
			NewsCount: 5,
			Headlines: "- Title A (SourceA) https://a.example",
			Summary:   "## Trends\n- **OpenAI** ships",
		},
	})

	require.Equal(t, 2, strings.Count(out, `class="summary-item"`))
	assert.Less(t, strings.Index(out, "5件のニュースを分析"), strings.Index(out, "3件のニュースを分析"))
	assert.Equal(t, 1, strings.Count(out, "headlines-section"))
	assert.Contains(t, out, "<h2>Trends</h2>")
	assert.Contains(t, out, "<li><strong>OpenAI</strong> ships</li>")
}

func TestErrorBlock(t *testing.T) {
	out := Error(LoadFailedMessage)
	assert.Contains(t, out, "データの読み込みに失敗しました。")
	assert.Equal(t, 1, strings.Count(out, "<div"))
}
