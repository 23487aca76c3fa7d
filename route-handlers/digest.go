package routehandlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/coreybb/newsdash/dashboard"
	"github.com/coreybb/newsdash/delivery"
	"github.com/coreybb/newsdash/loader"
	"github.com/coreybb/newsdash/scheduler"
	"github.com/coreybb/newsdash/webutil"
)

type DigestHandler struct {
	Views    dashboard.Factory
	Composer *delivery.Composer
	Service  *delivery.DigestService
}

func NewDigestHandler(views dashboard.Factory, composer *delivery.Composer, service *delivery.DigestService) *DigestHandler {
	return &DigestHandler{Views: views, Composer: composer, Service: service}
}

// HandleSendDigest mails the current digest to every configured recipient now.
func (h *DigestHandler) HandleSendDigest(w http.ResponseWriter, r *http.Request) error {
	if h.Service == nil {
		return webutil.ErrServiceUnavailableWrap("Digest delivery is not configured", nil)
	}

	result, err := scheduler.SendDigest(r.Context(), h.Views, h.Composer, h.Service)
	if err != nil {
		if errors.Is(err, delivery.ErrNoRecipients) {
			return webutil.ErrBadRequest("No digest recipients configured")
		}
		var loadErr *loader.LoadError
		if errors.As(err, &loadErr) {
			return err
		}
		log.Printf("ERROR: Digest delivery failed: %v", err)
		return webutil.ErrInternalServerWrap("Failed to deliver digest", err)
	}

	webutil.RespondWithJSON(w, http.StatusOK, result)
	return nil
}
