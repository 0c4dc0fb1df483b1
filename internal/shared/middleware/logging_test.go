package middleware

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"homefront/internal/shared/auth"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	flags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	})
	return &buf
}

func TestResponseWriter_WriteHeaderIdempotent(t *testing.T) {
	rr := httptest.NewRecorder()
	wrapped := wrapResponseWriter(rr)

	wrapped.WriteHeader(http.StatusNotFound)
	wrapped.WriteHeader(http.StatusOK)

	if wrapped.Status() != http.StatusNotFound {
		t.Errorf("Status() = %d, want %d", wrapped.Status(), http.StatusNotFound)
	}
}

func TestResponseWriter_CountsBytes(t *testing.T) {
	rr := httptest.NewRecorder()
	wrapped := wrapResponseWriter(rr)

	wrapped.Write([]byte(`{"totals":`))
	wrapped.Write([]byte(`{}}`))

	if wrapped.bytes != 13 {
		t.Errorf("bytes = %d, want 13", wrapped.bytes)
	}
	if wrapped.Status() != http.StatusOK {
		t.Errorf("Status() = %d after implicit write, want 200", wrapped.Status())
	}
}

func TestLogging_RecordsAuthenticatedUser(t *testing.T) {
	buf := captureLog(t)
	jwt := auth.NewJWT("test-secret", time.Hour)
	token, err := jwt.Generate(42, "sam@example.com")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	dashboard := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"debtCount":2}`))
	})
	handler := Logging(Auth(jwt)(dashboard))

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	line := buf.String()
	for _, want := range []string{"GET /api/dashboard/ 200 15B", "user=42"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q missing %q", line, want)
		}
	}
}

func TestLogging_AnonymousRequest(t *testing.T) {
	buf := captureLog(t)
	jwt := auth.NewJWT("test-secret", time.Hour)
	handler := Logging(Auth(jwt)(http.NotFoundHandler()))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/debts/", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rr.Code)
	}
	line := buf.String()
	if !strings.Contains(line, "GET /api/debts/ 401") || !strings.Contains(line, "user=-") {
		t.Errorf("log line = %q", line)
	}
}

func TestLogging_CreatedStatus(t *testing.T) {
	buf := captureLog(t)
	handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/auth/register", nil))

	if rr.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rr.Code)
	}
	if !strings.Contains(buf.String(), "POST /api/auth/register 201 0B") {
		t.Errorf("log line = %q", buf.String())
	}
}
