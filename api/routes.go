package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	rh "github.com/coreybb/newsdash/route-handlers"
	"github.com/coreybb/newsdash/webutil"
)

const (
	apiBasePath       = "/api"
	newsBasePath      = "/news"
	summariesBasePath = "/summaries"
	digestBasePath    = "/digest"
)

// HealthChecker reports whether the news feed is currently usable.
type HealthChecker interface {
	Err() error
}

func SetupRoutes(
	dashboardHandler *rh.DashboardHandler,
	newsHandler *rh.NewsHandler,
	exportHandler *rh.ExportHandler,
	digestHandler *rh.DigestHandler,
	health HealthChecker,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(RequestID)
	r.Use(RealIP)
	r.Use(Logger)                               // Log every request
	r.Use(Recoverer)                            // Recover from panics
	r.Use(middleware.Timeout(60 * time.Second)) // Set a timeout context for requests

	// Dashboard pages
	r.Get("/", webutil.MakeHandler(dashboardHandler.HandleDashboard))
	r.Get("/clear", webutil.MakeHandler(dashboardHandler.HandleClear))
	r.Get("/export.epub", webutil.MakeHandler(exportHandler.HandleExportEPUB))

	r.Route(apiBasePath, func(r chi.Router) {
		r.Use(SetHeader(webutil.HeaderCacheControl, "no-cache"))
		r.Get(newsBasePath, webutil.MakeHandler(newsHandler.HandleGetNews))
		r.Get(summariesBasePath, webutil.MakeHandler(newsHandler.HandleGetSummaries))
		r.Post(digestBasePath, webutil.MakeHandler(digestHandler.HandleSendDigest))
	})

	// Health check endpoint
	r.Get("/healthz", handleHealthCheck(health))

	r.NotFound(webutil.MakeHandler(func(w http.ResponseWriter, r *http.Request) error {
		return webutil.ErrNotFound("")
	}))

	return r
}

// handleHealthCheck responds OK while the feed is loaded.
func handleHealthCheck(health HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeTextPlainUTF8)
		if health != nil {
			if err := health.Err(); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("news data unavailable: " + err.Error()))
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	}
}

// SetHeader is a middleware to set a response header.
func SetHeader(key, value string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(key, value)
			next.ServeHTTP(w, r)
		})
	}
}
