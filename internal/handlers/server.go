package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ainewshub/ai-news-hub/internal/aggregate"
	"github.com/ainewshub/ai-news-hub/internal/cache"
	"github.com/ainewshub/ai-news-hub/internal/config"
	"github.com/ainewshub/ai-news-hub/internal/content"
	"github.com/ainewshub/ai-news-hub/internal/newsapi"
	"github.com/ainewshub/ai-news-hub/internal/rss"
	"github.com/ainewshub/ai-news-hub/internal/youtube"
)

const version = "1.0.0"

// Server holds the HTTP surface and its dependencies.
type Server struct {
	service *aggregate.Service
	cache   *cache.Cache
}

// NewServer wires the full pipeline from configuration: source
// adapters in merge order (RSS first, then the news APIs), the video
// client, the content extractor and the shared result cache.
func NewServer(cfg *config.Config) *Server {
	fetchTimeout := time.Duration(cfg.FetchTimeout) * time.Second
	resultCache := cache.New(time.Duration(cfg.CacheTTLMinutes) * time.Minute)

	sources := []aggregate.ArticleSource{
		rss.NewClient(cfg.Feeds, fetchTimeout),
		newsapi.NewClient(cfg.NewsAPIKey, cfg.BingAPIKey, fetchTimeout),
	}

	service := aggregate.NewService(
		sources,
		youtube.NewClient(cfg.YouTubeAPIKey),
		content.NewExtractor(time.Duration(cfg.ContentTimeout)*time.Second),
		resultCache,
	)

	return NewServerWith(service, resultCache)
}

// NewServerWith wires a server around pre-built dependencies.
func NewServerWith(service *aggregate.Service, resultCache *cache.Cache) *Server {
	return &Server{service: service, cache: resultCache}
}

// Cache exposes the shared result cache for background maintenance.
func (s *Server) Cache() *cache.Cache {
	return s.cache
}

// Service exposes the aggregation pipeline for background warmup.
func (s *Server) Service() *aggregate.Service {
	return s.service
}

// SetupRoutes configures HTTP routes.
func (s *Server) SetupRoutes() *mux.Router {
	r := mux.NewRouter()
	r.Use(s.corsMiddleware)
	r.Use(s.loggingMiddleware)

	// OPTIONS is listed everywhere so preflight requests match the
	// route and reach the CORS middleware.
	r.HandleFunc("/", s.rootHandler).Methods("GET", "OPTIONS")
	r.HandleFunc("/health", s.healthHandler).Methods("GET", "OPTIONS")

	r.HandleFunc("/news/all", s.allNewsHandler).Methods("GET", "OPTIONS")
	r.HandleFunc("/news/trending", s.trendingNewsHandler).Methods("GET", "OPTIONS")
	r.HandleFunc("/news/important", s.importantNewsHandler).Methods("GET", "OPTIONS")
	r.HandleFunc("/news/content", s.articleContentHandler).Methods("GET", "OPTIONS")

	r.HandleFunc("/videos", s.videosHandler).Methods("GET", "OPTIONS")
	r.HandleFunc("/search", s.searchHandler).Methods("GET", "OPTIONS")

	r.HandleFunc("/cache/stats", s.cacheStatsHandler).Methods("GET", "OPTIONS")
	r.HandleFunc("/cache/clear", s.cacheClearHandler).Methods("DELETE", "OPTIONS")

	return r
}

func (s *Server) rootHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"message": "AI News Hub API",
		"version": version,
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]interface{}{
		"status": "healthy",
	})
}

func writeJSON(w http.ResponseWriter, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("handlers: encoding response: %v", err)
	}
}

// Middleware functions

// corsMiddleware adds CORS headers
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		log.Printf("%s %s %d %v", r.Method, r.URL.Path, wrapped.statusCode, time.Since(start))
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
