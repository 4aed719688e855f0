package main

import (
	"net/http"
	"sync"

	"github.com/GoogleCloudPlatform/functions-framework-go/functions"

	"github.com/ainewshub/ai-news-hub/internal/config"
	"github.com/ainewshub/ai-news-hub/internal/handlers"
)

var (
	routerOnce sync.Once
	router     http.Handler
)

func init() {
	// Register HTTP function serving the full API surface
	functions.HTTP("AINewsHub", AINewsHub)
}

// AINewsHub routes every request through the same mux the standalone
// server uses. The server (and its cache) is built once per instance so
// warm invocations reuse cached results.
func AINewsHub(w http.ResponseWriter, r *http.Request) {
	routerOnce.Do(func() {
		cfg := config.Load()
		router = handlers.NewServer(cfg).SetupRoutes()
	})
	router.ServeHTTP(w, r)
}

func main() {
	// This main function is required for Cloud Functions
	// The actual function registration happens in init()
}
