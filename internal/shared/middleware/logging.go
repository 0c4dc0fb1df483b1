package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"
)

type responseWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func wrapResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{ResponseWriter: w}
}

func (rw *responseWriter) Status() int {
	return rw.status
}

func (rw *responseWriter) WriteHeader(code int) {
	if rw.wroteHeader {
		return
	}

	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
	rw.wroteHeader = true
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.wroteHeader {
		rw.WriteHeader(http.StatusOK)
	}
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// requestLog is filled in by inner middleware; Auth records the owner on it.
type requestLog struct {
	userID int64
}

type requestLogKey struct{}

func noteUser(ctx context.Context, userID int64) {
	if entry, ok := ctx.Value(requestLogKey{}).(*requestLog); ok {
		entry.userID = userID
	}
}

// Logging writes one line per request: method, path, status, response size,
// duration and the authenticated user, or "-" for anonymous requests.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		entry := &requestLog{}
		wrapped := wrapResponseWriter(w)
		next.ServeHTTP(wrapped, r.WithContext(context.WithValue(r.Context(), requestLogKey{}, entry)))

		log.Print(formatRequestLine(r, wrapped, entry.userID, time.Since(start)))
	})
}

func formatRequestLine(r *http.Request, rw *responseWriter, userID int64, elapsed time.Duration) string {
	status := rw.status
	if status == 0 {
		status = http.StatusOK
	}
	user := "-"
	if userID > 0 {
		user = fmt.Sprintf("%d", userID)
	}
	return fmt.Sprintf("%s %s %d %dB %s user=%s", r.Method, r.URL.Path, status, rw.bytes, elapsed.Round(time.Microsecond), user)
}
