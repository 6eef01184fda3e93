package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/harborview-health/scheduler-agent/internal/booking"
	"github.com/harborview-health/scheduler-agent/internal/engine"
	"github.com/harborview-health/scheduler-agent/internal/extract"
	"github.com/harborview-health/scheduler-agent/internal/patients"
	"github.com/harborview-health/scheduler-agent/internal/schedule"
	"github.com/harborview-health/scheduler-agent/pkg/logging"
)

func newTestEngine(t *testing.T) *engine.Engine {
	t.Helper()
	logger := logging.New("error")
	return engine.New(
		extract.NewPatternExtractor(),
		patients.NewResolver(patients.NewMemoryStore(), logger),
		schedule.NewResolver(schedule.NewMemoryStore(nil), logger),
		booking.NewManager(booking.NewMemorySink(), nil, logger),
		engine.NewMemorySessionStore(),
		nil,
		logger,
	)
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	logger := logging.New("error")
	reg := prometheus.NewRegistry()
	return New(&Config{
		Logger:         logger,
		ChatHandler:    engine.NewHandler(newTestEngine(t), logger),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid health body: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("expected ok status, got %q", body["status"])
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestRouterChatRoutes(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/chat/start", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, rr.Code)
	}
	var opening engine.Reply
	if err := json.Unmarshal(rr.Body.Bytes(), &opening); err != nil {
		t.Fatalf("invalid start body: %v", err)
	}
	if opening.SessionID == "" {
		t.Fatal("expected a session id")
	}

	req = httptest.NewRequest(http.MethodPost, "/chat/"+opening.SessionID,
		strings.NewReader(`{"message":"Hi"}`))
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestRouterChatRateLimit(t *testing.T) {
	logger := logging.New("error")
	router := New(&Config{
		ChatHandler:       engine.NewHandler(newTestEngine(t), logger),
		ChatRatePerSecond: 0.001,
		ChatRateBurst:     1,
	})

	limited := false
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/chat/start", nil)
		req.RemoteAddr = "10.0.0.9:1234"
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code == http.StatusTooManyRequests {
			limited = true
		}
	}
	if !limited {
		t.Fatal("expected rate limiter to reject a burst")
	}
}
