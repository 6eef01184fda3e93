package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRateLimitExhaustsBurst(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mw := RateLimit(0.001, 2)
	wrapped := mw(handler)

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/chat/s1", nil)
		req.Header.Set("X-Real-Ip", "10.0.0.1")
		rec := httptest.NewRecorder()
		wrapped.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("turn %d: expected status %d, got %d", i+1, http.StatusOK, rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodPost, "/chat/s1", nil)
	req.Header.Set("X-Real-Ip", "10.0.0.1")
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, req)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status %d, got %d", http.StatusTooManyRequests, rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Fatalf("expected Retry-After header on rejection")
	}
}

func TestRateLimitIsolatesCallers(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	mw := RateLimit(0.001, 1)
	wrapped := mw(handler)

	first := httptest.NewRequest(http.MethodPost, "/chat/s1", nil)
	first.Header.Set("X-Real-Ip", "10.0.0.1")
	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, first)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rec.Code)
	}

	second := httptest.NewRequest(http.MethodPost, "/chat/s2", nil)
	second.Header.Set("X-Real-Ip", "10.0.0.2")
	rec = httptest.NewRecorder()
	wrapped.ServeHTTP(rec, second)
	if rec.Code != http.StatusOK {
		t.Fatalf("other caller should have its own bucket, got %d", rec.Code)
	}
}
