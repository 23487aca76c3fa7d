package routehandlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coreybb/newsdash/dashboard"
	"github.com/coreybb/newsdash/delivery"
	"github.com/coreybb/newsdash/ebook"
	"github.com/coreybb/newsdash/loader"
	"github.com/coreybb/newsdash/models"
	"github.com/coreybb/newsdash/render"
	"github.com/coreybb/newsdash/webutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

type stubLoader struct {
	feed *models.Feed
	err  error
}

func (s stubLoader) Load(context.Context) (*models.Feed, error) {
	return s.feed, s.err
}

type okSender struct{}

func (okSender) Send(string, []string, []byte) error { return nil }

func testViews(l loader.Loader) dashboard.Factory {
	return dashboard.Factory{
		Loader:   l,
		Renderer: render.NewRenderer(time.UTC),
		Clock:    func() time.Time { return testNow },
	}
}

func healthyViews() dashboard.Factory {
	return testViews(stubLoader{feed: &models.Feed{
		NewsItems: []models.NewsItem{
			{Source: "Alpha", Title: "OpenAI ships", URL: "https://a.example", Published: models.NewTimestamp(testNow.Add(-time.Hour))},
			{Source: "Beta", Title: "Meta research", URL: "https://b.example", Published: models.NewTimestamp(testNow.Add(-10 * 24 * time.Hour))},
		},
		Summaries: []models.Summary{
			{Timestamp: models.NewTimestamp(testNow.Add(-time.Hour)), NewsCount: 2, Summary: "first"},
			{Timestamp: models.NewTimestamp(testNow), NewsCount: 2, Summary: "second"},
		},
	}})
}

func failingViews() dashboard.Factory {
	return testViews(stubLoader{err: &loader.LoadError{Op: "status", Source: "https://feed.example"}})
}

func serve(h webutil.AppHandler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	webutil.MakeHandler(h)(rec, req)
	return rec
}

func TestHandleDashboard(t *testing.T) {
	h := NewDashboardHandler(healthyViews())

	rec := serve(h.HandleDashboard, httptest.NewRequest(http.MethodGet, "/?date=week&source=all", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, webutil.ContentTypeHTMLUTF8, rec.Header().Get(webutil.HeaderContentType))

	body := rec.Body.String()
	assert.Contains(t, body, `<span id="totalNews">1</span>`)
	assert.Contains(t, body, "OpenAI ships")
	assert.NotContains(t, body, "Meta research")
	assert.Contains(t, body, `<option value="week" selected>`)
	assert.Contains(t, body, `<option value="Beta">Beta</option>`)
}

func TestHandleDashboardKeepsTypedKeyword(t *testing.T) {
	h := NewDashboardHandler(healthyViews())

	rec := serve(h.HandleDashboard, httptest.NewRequest(http.MethodGet, "/?keyword=OpenAI", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `value="OpenAI"`)
	assert.Contains(t, body, `<span id="totalNews">1</span>`)
}

func TestHandleDashboardLoadFailure(t *testing.T) {
	h := NewDashboardHandler(failingViews())

	rec := serve(h.HandleDashboard, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Equal(t, 1, strings.Count(body, `class="loading error"`))
	assert.Contains(t, body, render.LoadFailedMessage)
	assert.Contains(t, body, `<span id="totalNews">0</span>`)
}

func TestHandleClear(t *testing.T) {
	h := NewDashboardHandler(healthyViews())

	rec := serve(h.HandleClear, httptest.NewRequest(http.MethodGet, "/clear", nil))
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestHandleGetNews(t *testing.T) {
	h := NewNewsHandler(healthyViews())

	rec := serve(h.HandleGetNews, httptest.NewRequest(http.MethodGet, "/api/news?company=meta", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Filters models.FilterState `json:"filters"`
		Stats   struct {
			Total int `json:"total"`
		} `json:"stats"`
		Sources []string          `json:"sources"`
		Items   []models.NewsItem `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "meta", resp.Filters.Company)
	assert.Equal(t, 1, resp.Stats.Total)
	assert.Equal(t, []string{"Alpha", "Beta"}, resp.Sources)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Meta research", resp.Items[0].Title)
}

func TestHandleGetNewsNotModified(t *testing.T) {
	h := NewNewsHandler(healthyViews())

	first := serve(h.HandleGetNews, httptest.NewRequest(http.MethodGet, "/api/news", nil))
	require.Equal(t, http.StatusOK, first.Code)
	etag := first.Header().Get(webutil.HeaderETag)
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/api/news", nil)
	req.Header.Set(webutil.HeaderIfNoneMatch, etag)
	second := serve(h.HandleGetNews, req)
	assert.Equal(t, http.StatusNotModified, second.Code)
	assert.Empty(t, second.Body.String())
}

func TestHandleGetSummariesNewestFirst(t *testing.T) {
	h := NewNewsHandler(healthyViews())

	rec := serve(h.HandleGetSummaries, httptest.NewRequest(http.MethodGet, "/api/summaries", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var got []models.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	assert.Equal(t, "second", got[0].Summary)
}

func TestAPILoadFailureIsUnavailable(t *testing.T) {
	h := NewNewsHandler(failingViews())

	rec := serve(h.HandleGetNews, httptest.NewRequest(http.MethodGet, "/api/news", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.JSONEq(t, `{"error":"News data unavailable"}`, rec.Body.String())
}

func TestHandleExportEPUB(t *testing.T) {
	views := healthyViews()
	h := NewExportHandler(views, ebook.NewEditionGenerator(views.Renderer))

	rec := serve(h.HandleExportEPUB, httptest.NewRequest(http.MethodGet, "/export.epub?source=Alpha", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, webutil.ContentTypeEPUB, rec.Header().Get(webutil.HeaderContentType))
	assert.Contains(t, rec.Header().Get(webutil.HeaderContentDisposition), "ai-news-20250610.epub")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "PK"))
}

func TestHandleSendDigest(t *testing.T) {
	views := healthyViews()
	composer := delivery.NewComposer(views.Renderer)

	t.Run("not configured", func(t *testing.T) {
		h := NewDigestHandler(views, composer, nil)
		rec := serve(h.HandleSendDigest, httptest.NewRequest(http.MethodPost, "/api/digest", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("no recipients", func(t *testing.T) {
		h := NewDigestHandler(views, composer, delivery.NewDigestService(okSender{}, "AI News", "bot@example.com", nil))
		rec := serve(h.HandleSendDigest, httptest.NewRequest(http.MethodPost, "/api/digest", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("load failure", func(t *testing.T) {
		h := NewDigestHandler(failingViews(), composer, delivery.NewDigestService(okSender{}, "AI News", "bot@example.com", []string{"a@example.com"}))
		rec := serve(h.HandleSendDigest, httptest.NewRequest(http.MethodPost, "/api/digest", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})

	t.Run("sent", func(t *testing.T) {
		h := NewDigestHandler(views, composer, delivery.NewDigestService(okSender{}, "AI News", "bot@example.com", []string{"a@example.com"}))
		rec := serve(h.HandleSendDigest, httptest.NewRequest(http.MethodPost, "/api/digest", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"sent":["a@example.com"],"failed":[]}`, rec.Body.String())
	})
}
