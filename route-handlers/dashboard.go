package routehandlers

import (
	"bytes"
	"log"
	"net/http"

	"github.com/coreybb/newsdash/dashboard"
	"github.com/coreybb/newsdash/render"
	"github.com/coreybb/newsdash/webutil"
)

type DashboardHandler struct {
	Views dashboard.Factory
}

func NewDashboardHandler(views dashboard.Factory) *DashboardHandler {
	return &DashboardHandler{Views: views}
}

// HandleDashboard renders the full page for the filters in the query string.
// A failed load still renders the page, with the inline error in the timeline.
func (h *DashboardHandler) HandleDashboard(w http.ResponseWriter, r *http.Request) error {
	c, err := h.Views.Open(r.Context(), r.URL.Query())
	if err != nil {
		log.Printf("WARN: Rendering dashboard without data: %v", err)
	}

	var buf bytes.Buffer
	if err := render.WritePage(&buf, c.Page()); err != nil {
		return webutil.ErrInternalServerWrap("Failed to render dashboard", err)
	}

	webutil.RespondWithBytes(w, http.StatusOK, webutil.ContentTypeHTMLUTF8, buf.Bytes())
	return nil
}

// HandleClear resets every filter by redirecting to the bare dashboard.
func (h *DashboardHandler) HandleClear(w http.ResponseWriter, r *http.Request) error {
	http.Redirect(w, r, "/", http.StatusSeeOther)
	return nil
}
