package routehandlers

import (
	"encoding/json"
	"net/http"

	"github.com/coreybb/newsdash/dashboard"
	"github.com/coreybb/newsdash/models"
	"github.com/coreybb/newsdash/render"
	"github.com/coreybb/newsdash/stats"
	"github.com/coreybb/newsdash/webutil"
)

type NewsHandler struct {
	Views dashboard.Factory
}

func NewNewsHandler(views dashboard.Factory) *NewsHandler {
	return &NewsHandler{Views: views}
}

type newsResponse struct {
	Filters models.FilterState `json:"filters"`
	Stats   stats.Stats        `json:"stats"`
	Sources []string           `json:"sources"`
	Items   []models.NewsItem  `json:"items"`
}

// HandleGetNews returns the filtered view, newest first, with its stats.
func (h *NewsHandler) HandleGetNews(w http.ResponseWriter, r *http.Request) error {
	c, err := h.Views.Open(r.Context(), r.URL.Query())
	if err != nil {
		return err
	}

	return respondWithETag(w, r, newsResponse{
		Filters: c.State(),
		Stats:   c.Stats(),
		Sources: c.Sources(),
		Items:   render.SortNews(c.View()),
	})
}

// HandleGetSummaries returns every summary, newest first.
func (h *NewsHandler) HandleGetSummaries(w http.ResponseWriter, r *http.Request) error {
	c, err := h.Views.Open(r.Context(), nil)
	if err != nil {
		return err
	}

	return respondWithETag(w, r, render.SortSummaries(c.Summaries()))
}

// respondWithETag answers 304 when the client already holds the same body.
func respondWithETag(w http.ResponseWriter, r *http.Request, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return webutil.ErrInternalServerWrap("Failed to encode response", err)
	}

	etag, err := webutil.ETag(body)
	if err != nil {
		return webutil.ErrInternalServerWrap("Failed to hash response", err)
	}
	w.Header().Set(webutil.HeaderETag, etag)

	if r.Header.Get(webutil.HeaderIfNoneMatch) == etag {
		w.WriteHeader(http.StatusNotModified)
		return nil
	}

	webutil.RespondWithBytes(w, http.StatusOK, webutil.ContentTypeJSONUTF8, body)
	return nil
}
