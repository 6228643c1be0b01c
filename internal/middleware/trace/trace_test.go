package trace

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"expensereport/internal/log"
)

func TestMiddleware(t *testing.T) {
	m := NewMiddleware(log.Discard(), func(r *http.Request) string { return "10.0.0.1" })

	var seen string
	handler := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		if log.FromContext(r.Context()).Component() == "unknown" {
			t.Error("request logger not in context")
		}
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/expenses", nil))

	if w.Code != http.StatusTeapot {
		t.Errorf("status = %d", w.Code)
	}
	if !strings.HasPrefix(seen, "req_") {
		t.Errorf("request id = %q", seen)
	}
	if got := w.Header().Get(HeaderRequestID); got != seen {
		t.Errorf("%s = %q, want %q", HeaderRequestID, got, seen)
	}

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if m.TotalRequests() != 2 {
		t.Errorf("TotalRequests() = %d, want 2", m.TotalRequests())
	}
}

func TestGenerateRequestIDUnique(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := GenerateRequestID()
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
}

func TestRequestIDMissing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if id := RequestID(r.Context()); id != "" {
		t.Errorf("RequestID() = %q, want empty", id)
	}
}
