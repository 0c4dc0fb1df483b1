package middleware

import (
	"net/http"
	"strings"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Telemetry wraps the API with otelhttp. Health checks are not traced, and spans
// are named by resource ("PATCH /api/debts") so record ids do not explode span names.
func Telemetry(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "homefront-api",
		otelhttp.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health"
		}),
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + resourceOf(r.URL.Path)
		}),
	)
}

// resourceOf keeps the first two path segments: /api/debts/{id} becomes /api/debts.
func resourceOf(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) > 2 {
		segments = segments[:2]
	}
	return "/" + strings.Join(segments, "/")
}
