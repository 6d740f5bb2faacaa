package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	rh "github.com/coreybb/glucolog/route-handlers"
	"github.com/coreybb/glucolog/web"
	"github.com/coreybb/glucolog/webutil"
)

const (
	apiBasePath      = "/api"
	readingsBasePath = "/readings"
	insightSubPath   = "/insight"
	chartPath        = "/chart.png"
)

const (
	paramID = "id" // General parameter name for resource IDs
)

func SetupRoutes(
	readingHandler *rh.ReadingHandler,
	pageHandler *web.PageHandler,
) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)                    // Log every request
	r.Use(middleware.Recoverer)                 // Recover from panics
	r.Use(middleware.Timeout(60 * time.Second)) // Set a timeout context for requests

	// JSON API. Handlers set their own Content-Type via webutil, so no
	// default header middleware here: presetting it would defeat the
	// sent-header check in webutil.MakeHandler.
	r.Route(apiBasePath, func(r chi.Router) {
		configureReadingRoutes(r, readingHandler)
	})

	// HTML dashboard
	r.Get("/", webutil.MakeHandler(pageHandler.HandleDashboard))
	r.Post("/", webutil.MakeHandler(pageHandler.HandleSubmit))
	r.Get(chartPath, webutil.MakeHandler(pageHandler.HandleTrendChart))

	// Health check endpoint
	r.Get("/healthz", handleHealthCheck)

	return r
}

// Helper for constructing paths with a parameter
func pathWithParam(basePath string, paramName string) string {
	if basePath == "" {
		return "/{" + paramName + "}"
	}
	return basePath + "/{" + paramName + "}"
}

// --- Reading Routes ---
func configureReadingRoutes(r chi.Router, handler *rh.ReadingHandler) {
	specificReadingPath := pathWithParam("", paramID) // e.g., "/{id}"

	r.Route(readingsBasePath, func(r chi.Router) {
		r.Get("/", webutil.MakeHandler(handler.HandleGetReadings))
		r.Post("/", webutil.MakeHandler(handler.HandleCreateReading))
		r.Get(insightSubPath, webutil.MakeHandler(handler.HandleGetInsight))
		r.Get(specificReadingPath, webutil.MakeHandler(handler.HandleGetReading))
	})
}

// --- Utility Functions ---

// handleHealthCheck responds to a health check request.
func handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(webutil.HeaderContentType, webutil.ContentTypeTextPlainUTF8)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
