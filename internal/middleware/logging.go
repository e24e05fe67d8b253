package middleware

import (
	"log"
	"net/http"
	"time"

	"github.com/soaringjerry/Quizline/internal/utils"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// RequestLog logs one line per request. Place it inside RequestID.
func RequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Printf("%s %s %d %s rid=%s", r.Method, r.URL.RequestURI(), rec.status, time.Since(start).Round(time.Millisecond), utils.RequestIDFromContext(r.Context()))
	})
}
