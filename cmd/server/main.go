package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/soaringjerry/Quizline/internal/api"
	"github.com/soaringjerry/Quizline/internal/config"
	"github.com/soaringjerry/Quizline/internal/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	commit := os.Getenv("QUIZLINE_COMMIT")
	buildTime := os.Getenv("QUIZLINE_BUILD_TIME")

	mux := http.NewServeMux()
	// Proxy routes
	api.NewRouter(cfg.ServerClient(), api.PublicConfig{
		APIBaseURL:    cfg.PublicAPIBaseURL,
		PusherKey:     cfg.PusherKey,
		PusherCluster: cfg.PusherCluster,
	}).Register(mux)
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":         true,
			"name":       "Quizline proxy",
			"backend":    cfg.APIBaseURL,
			"commit":     commit,
			"build_time": buildTime,
		})
	})

	handler := middleware.RequestID(middleware.RequestLog(middleware.CORS(middleware.SecureHeaders(mux))))

	s := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	log.Printf("Quizline proxy listening on %s (backend %s)", cfg.Addr, cfg.APIBaseURL)
	if err := s.ListenAndServe(); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
