package api

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"

	"github.com/soaringjerry/Quizline/internal/services"
)

// quizFilterKeys are the /api/quizzes filters forwarded to the backend.
var quizFilterKeys = []string{"category_id", "difficulty", "is_featured"}

// PublicConfig is what the browser needs to talk to the backend and the
// realtime provider directly.
type PublicConfig struct {
	APIBaseURL    string `json:"api_base_url"`
	PusherKey     string `json:"pusher_key"`
	PusherCluster string `json:"pusher_cluster"`
}

type Router struct {
	client *services.APIClient
	public PublicConfig
}

// NewRouter proxies through client, which must point at the backend's /api root.
func NewRouter(client *services.APIClient, public PublicConfig) *Router {
	return &Router{client: client, public: public}
}

func (rt *Router) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/category", rt.handleCategories)          // GET
	mux.HandleFunc("/api/quizzes", rt.handleQuizzes)              // GET
	mux.HandleFunc("/api/runtime-config", rt.handleRuntimeConfig) // GET
}

// BuildQuizQuery keeps only the supported filters that were given a value.
func BuildQuizQuery(in url.Values) url.Values {
	out := url.Values{}
	for _, k := range quizFilterKeys {
		if v := in.Get(k); v != "" {
			out.Set(k, v)
		}
	}
	return out
}

// GET /api/category -> backend /api/categories, body passed through as is
func (rt *Router) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	raw, err := rt.client.GetRaw(r.Context(), "/categories", nil)
	if err != nil {
		log.Printf("error fetching categories: %v", err)
		writeUpstreamError(w, err)
		return
	}
	writeRaw(w, raw)
}

// GET /api/quizzes?category_id=&difficulty=&is_featured=
func (rt *Router) handleQuizzes(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	raw, err := rt.client.GetRaw(r.Context(), "/quizzes", BuildQuizQuery(r.URL.Query()))
	if err != nil {
		log.Printf("error fetching quizzes: %v", err)
		writeUpstreamError(w, err)
		return
	}
	writeRaw(w, raw)
}

func (rt *Router) handleRuntimeConfig(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rt.public)
}

func writeRaw(w http.ResponseWriter, raw json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(raw)
}

// writeUpstreamError reports a failed backend call. Backend statuses become
// 502 with the original code attached; timeouts become 504.
func writeUpstreamError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	body := map[string]any{"error": "upstream request failed"}
	if se, ok := services.AsHTTPStatusError(err); ok {
		body["upstream_status"] = se.Status
	} else if ne, ok := services.AsNetworkError(err); ok && ne.Timeout() {
		status = http.StatusGatewayTimeout
		body["error"] = "upstream timeout"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
