package routehandlers

import (
	"log"
	"net/http"

	"github.com/coreybb/newsdash/dashboard"
	"github.com/coreybb/newsdash/ebook"
	"github.com/coreybb/newsdash/webutil"
)

type ExportHandler struct {
	Views     dashboard.Factory
	Generator *ebook.EditionGenerator
}

func NewExportHandler(views dashboard.Factory, generator *ebook.EditionGenerator) *ExportHandler {
	return &ExportHandler{Views: views, Generator: generator}
}

// HandleExportEPUB packages the filtered view and the summaries as an EPUB download.
func (h *ExportHandler) HandleExportEPUB(w http.ResponseWriter, r *http.Request) error {
	c, err := h.Views.Open(r.Context(), r.URL.Query())
	if err != nil {
		return err
	}

	edition, err := h.Generator.GenerateEdition(r.Context(), ebook.Metadata{}, c.View(), c.Summaries(), c.Now())
	if err != nil {
		log.Printf("ERROR: Failed to generate EPUB edition: %v", err)
		return webutil.ErrInternalServerWrap("Failed to generate edition", err)
	}

	w.Header().Set(webutil.HeaderContentDisposition, `attachment; filename="`+edition.FileName+`"`)
	webutil.RespondWithBytes(w, http.StatusOK, webutil.ContentTypeEPUB, edition.Body)
	return nil
}
