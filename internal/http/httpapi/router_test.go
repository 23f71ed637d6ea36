package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"unishift/internal/http/handlers"
	"unishift/internal/infra/geoip"
	"unishift/internal/storage"
)

func newTestRouter(t *testing.T, limit int) http.Handler {
	t.Helper()
	store, err := storage.NewFileStore(filepath.Join(t.TempDir(), "enquiries.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	app := handlers.NewApp(store, geoip.Disabled{}, zerolog.Nop())
	return NewRouter(app, zerolog.Nop(), Options{AllowedOrigins: []string{"*"}, RateLimitPerMin: limit})
}

func TestRouterQuestionLifecycle(t *testing.T) {
	h := newTestRouter(t, 10)

	req := httptest.NewRequest(http.MethodPost, "/api/questions", strings.NewReader(`{"email":"a@b.com","question":"Q1"}`))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status %d: %s", rr.Code, rr.Body.String())
	}
	if rr.Header().Get("X-Request-ID") == "" {
		t.Fatalf("missing request id header")
	}

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/questions/stats", nil))
	var stats struct {
		Stats struct {
			Total int `json:"total"`
			New   int `json:"new"`
		} `json:"stats"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Stats.Total != 1 || stats.Stats.New != 1 {
		t.Fatalf("unexpected stats: %+v", stats.Stats)
	}
}

func TestRouterRoutes(t *testing.T) {
	h := newTestRouter(t, 10)
	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/api/health", http.StatusOK},
		{http.MethodGet, "/api/questions", http.StatusOK},
		{http.MethodGet, "/api/unknown", http.StatusNotFound},
		{http.MethodDelete, "/api/questions", http.StatusNotFound},
	}
	for _, tc := range tests {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(tc.method, tc.path, nil))
		if rr.Code != tc.want {
			t.Fatalf("%s %s: got %d, want %d", tc.method, tc.path, rr.Code, tc.want)
		}
	}
}

func TestRouterRateLimitsSubmissions(t *testing.T) {
	h := newTestRouter(t, 1)
	var last int
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/questions", strings.NewReader(`{"email":"a@b.com","question":"Q"}`))
		req.RemoteAddr = "198.51.100.7:4000"
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		last = rr.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", last)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/questions", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("reads should not be limited: %d", rr.Code)
	}
}
