package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"
	"github.com/zatekoja/chefmate/backend/internal/api/handlers"
	"github.com/zatekoja/chefmate/backend/internal/api/middleware"
	"github.com/zatekoja/chefmate/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	recommendationHandler *handlers.RecommendationHandler
	catalogHandler        *handlers.CatalogHandler
	mapHandler            *handlers.MapHandler
	staticMapHandler      *handlers.StaticMapHandler
	chatHandler           *handlers.ChatHandler
	artifactHandler       *handlers.ArtifactHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
	options         Options
}

// Handlers groups the page handlers the router serves
type Handlers struct {
	Recommendation *handlers.RecommendationHandler
	Catalog        *handlers.CatalogHandler
	Map            *handlers.MapHandler
	StaticMap      *handlers.StaticMapHandler
	Chat           *handlers.ChatHandler
	Artifact       *handlers.ArtifactHandler
}

// Options holds the per-deployment router settings
type Options struct {
	// ChatRateLimit is POST /api/chat requests per minute per client IP; zero disables it
	ChatRateLimit  int
	AllowedOrigins []string
}

// NewRouter creates a new router. cacheMiddleware and metrics may be nil.
func NewRouter(h Handlers, cacheMiddleware *middleware.CacheMiddleware, metrics *observability.Metrics, opts Options) *Router {
	return &Router{
		mux: http.NewServeMux(),

		recommendationHandler: h.Recommendation,
		catalogHandler:        h.Catalog,
		mapHandler:            h.Map,
		staticMapHandler:      h.StaticMap,
		chatHandler:           h.Chat,
		artifactHandler:       h.Artifact,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
		options:         opts,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	r.mux.HandleFunc("GET /health", handlers.Health)
	r.mux.HandleFunc("GET /api/pages", handlers.ListPages)

	// Recommendations page
	r.mux.HandleFunc("GET /api/cities", r.recommendationHandler.GetCities)
	r.mux.HandleFunc("GET /api/recommendations", r.recommendationHandler.GetRecommendations)

	// Map page
	r.mux.HandleFunc("GET /api/restaurants", r.catalogHandler.ListRestaurants)
	r.mux.HandleFunc("GET /api/restaurants/suggest", r.catalogHandler.SuggestRestaurants)
	r.mux.HandleFunc("GET /api/map", r.mapHandler.GetMap)
	r.mux.HandleFunc("GET /api/map/restaurants/{id}", r.mapHandler.GetRestaurantMap)
	if r.staticMapHandler != nil {
		r.mux.HandleFunc("GET /api/map/static", r.staticMapHandler.GetStaticMap)
	}

	// Chatbot page
	var chat http.Handler = http.HandlerFunc(r.chatHandler.Ask)
	if r.options.ChatRateLimit > 0 {
		chat = httprate.LimitByIP(r.options.ChatRateLimit, time.Minute)(chat)
	}
	r.mux.Handle("POST /api/chat", chat)

	if r.artifactHandler != nil {
		r.mux.HandleFunc("GET /api/artifacts", r.artifactHandler.GetArtifacts)
	}

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.ResponseOptimization(handler)
	handler = middleware.CORS(r.options.AllowedOrigins)(handler)

	return handler
}
