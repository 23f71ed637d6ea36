package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"unishift/internal/domain"
	"unishift/internal/infra/geoip"
)

var fixedNow = time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC)

type questionStub struct {
	created []domain.Question
	items   []domain.Question
	stats   domain.QuestionStats
	err     error
}

func (s *questionStub) Create(_ context.Context, q *domain.Question) error {
	if s.err != nil {
		return s.err
	}
	q.ID = "q-1"
	q.Status = domain.QuestionStatusNew
	s.created = append(s.created, *q)
	return nil
}

func (s *questionStub) FindByID(context.Context, string) (*domain.Question, error) {
	return nil, domain.ErrNotFound
}

func (s *questionStub) MarkResponded(context.Context, string, string, time.Time) error {
	return nil
}

func (s *questionStub) List(context.Context) ([]domain.Question, error) {
	return s.items, s.err
}

func (s *questionStub) Stats(context.Context, time.Time) (*domain.QuestionStats, error) {
	if s.err != nil {
		return nil, s.err
	}
	stats := s.stats
	return &stats, nil
}

func (s *questionStub) ListCreatedAfter(context.Context, domain.QuestionCursor, int) ([]domain.Question, error) {
	return nil, nil
}

type geoStub struct {
	code string
	err  error
}

func (g geoStub) CountryCode(string) (string, error) { return g.code, g.err }

func newTestApp(store *questionStub, geo CountryLookup) *App {
	app := NewApp(store, geo, zerolog.Nop())
	app.Now = func() time.Time { return fixedNow }
	return app
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.NewDecoder(rr.Body).Decode(&payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return payload
}

func TestQuestionsCreate(t *testing.T) {
	store := &questionStub{}
	app := newTestApp(store, geoStub{code: "GB"})

	req := httptest.NewRequest(http.MethodPost, "/api/questions", strings.NewReader(`{"email":"  a@b.com ","question":" When does term start? "}`))
	req.RemoteAddr = "203.0.113.9:5555"
	rr := httptest.NewRecorder()
	app.QuestionsCreate(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("unexpected status code: got %d, want 201", rr.Code)
	}
	payload := decodeBody(t, rr)
	if payload["success"] != true || payload["enquiryId"] != "q-1" {
		t.Fatalf("unexpected payload: %#v", payload)
	}
	if len(store.created) != 1 {
		t.Fatalf("expected 1 stored question, got %d", len(store.created))
	}
	got := store.created[0]
	if got.Email != "a@b.com" || got.Question != "When does term start?" {
		t.Fatalf("inputs not trimmed: %+v", got)
	}
	if got.IPAddress != "203.0.113.9" || got.Country != "GB" || !got.CreatedAt.IsZero() {
		t.Fatalf("unexpected metadata: %+v", got)
	}
}

func TestQuestionsCreateWithoutGeoIP(t *testing.T) {
	store := &questionStub{}
	app := newTestApp(store, geoStub{err: geoip.ErrUnavailable})

	req := httptest.NewRequest(http.MethodPost, "/api/questions", strings.NewReader(`{"email":"a@b.com","question":"Q"}`))
	rr := httptest.NewRecorder()
	app.QuestionsCreate(rr, req)

	if rr.Code != http.StatusCreated || store.created[0].Country != "" {
		t.Fatalf("code=%d question=%+v", rr.Code, store.created)
	}
}

func TestQuestionsCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing email", `{"question":"Q"}`, "Email and question are required"},
		{"blank question", `{"email":"a@b.com","question":"   "}`, "Email and question are required"},
		{"invalid json", `{`, "Email and question are required"},
		{"bad email", `{"email":"not-an-email","question":"Q"}`, "Please provide a valid email address"},
		{"email with space", `{"email":"a b@c.com","question":"Q"}`, "Please provide a valid email address"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := &questionStub{}
			app := newTestApp(store, nil)
			rr := httptest.NewRecorder()
			app.QuestionsCreate(rr, httptest.NewRequest(http.MethodPost, "/api/questions", strings.NewReader(tc.body)))

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("unexpected status code: got %d, want 400", rr.Code)
			}
			if payload := decodeBody(t, rr); payload["message"] != tc.message || payload["success"] != false {
				t.Fatalf("unexpected payload: %#v", payload)
			}
			if len(store.created) != 0 {
				t.Fatalf("invalid question stored")
			}
		})
	}
}

func TestQuestionsCreateStoreFailure(t *testing.T) {
	app := newTestApp(&questionStub{err: errors.New("disk full")}, nil)
	rr := httptest.NewRecorder()
	app.QuestionsCreate(rr, httptest.NewRequest(http.MethodPost, "/api/questions", strings.NewReader(`{"email":"a@b.com","question":"Q"}`)))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status code: got %d, want 500", rr.Code)
	}
}

func TestQuestionsListAndStats(t *testing.T) {
	store := &questionStub{
		items: []domain.Question{{ID: "q-2", Email: "b@c.com", Status: domain.QuestionStatusNew, CreatedAt: fixedNow}},
		stats: domain.QuestionStats{Total: 1, New: 1, ThisMonth: 1},
	}
	app := newTestApp(store, nil)

	rr := httptest.NewRecorder()
	app.QuestionsList(rr, httptest.NewRequest(http.MethodGet, "/api/questions", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("list status %d", rr.Code)
	}
	var list struct {
		Enquiries []domain.Question `json:"enquiries"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list.Enquiries) != 1 || list.Enquiries[0].ID != "q-2" {
		t.Fatalf("unexpected enquiries: %+v", list.Enquiries)
	}

	rr = httptest.NewRecorder()
	app.QuestionsStats(rr, httptest.NewRequest(http.MethodGet, "/api/questions/stats", nil))
	var stats struct {
		Stats domain.QuestionStats `json:"stats"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.Stats != store.stats {
		t.Fatalf("unexpected stats: %+v", stats.Stats)
	}
}

func TestQuestionsListEmpty(t *testing.T) {
	app := newTestApp(&questionStub{}, nil)
	rr := httptest.NewRecorder()
	app.QuestionsList(rr, httptest.NewRequest(http.MethodGet, "/api/questions", nil))
	if !strings.Contains(rr.Body.String(), `"enquiries":[]`) {
		t.Fatalf("expected empty array, got %s", rr.Body.String())
	}
}
