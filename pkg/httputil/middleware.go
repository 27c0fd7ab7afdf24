package httputil

import (
	"net/http"
	"time"

	"github.com/scorewell/engrave/pkg/observability"
)

// statusWriter records the status code written by a handler.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Observe is middleware that reports every request to the registered
// HTTP hooks. Handlers that never call WriteHeader count as 200.
func Observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		start := time.Now()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, sw.status, time.Since(start))
	})
}
