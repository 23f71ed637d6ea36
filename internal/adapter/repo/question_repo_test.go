package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"unishift/internal/domain"
	"unishift/internal/sqlinline"
)

func TestQuestionCreate(t *testing.T) {
	sql := &stubSQL{}
	r := NewQuestionRepository(sql)
	q := &domain.Question{Email: "a@b.com", Question: "Q1", IPAddress: "203.0.113.1", Country: "GB"}

	if err := r.Create(context.Background(), q); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := uuid.Parse(q.ID); err != nil {
		t.Fatalf("expected uuid id, got %q", q.ID)
	}
	if q.Status != domain.QuestionStatusNew || q.CreatedAt.IsZero() {
		t.Fatalf("unexpected question after create: %+v", q)
	}
	if sql.calls[0].query != sqlinline.QInsertQuestion {
		t.Fatalf("unexpected query")
	}
}

func TestQuestionFindByID(t *testing.T) {
	id := uuid.NewString()
	created := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	responded := created.Add(time.Hour)
	sql := &stubSQL{rows: map[string][][]any{
		sqlinline.QSelectQuestionByID: {{id, "a@b.com", "Q1", "responded", "A1", responded, "203.0.113.1", "GB", created}},
	}}
	r := NewQuestionRepository(sql)

	q, err := r.FindByID(context.Background(), id)
	if err != nil {
		t.Fatalf("FindByID error: %v", err)
	}
	if q.Status != domain.QuestionStatusResponded || q.Response != "A1" || q.RespondedAt == nil || !q.RespondedAt.Equal(responded) {
		t.Fatalf("unexpected question: %+v", q)
	}
}

func TestQuestionFindByIDNotFound(t *testing.T) {
	r := NewQuestionRepository(&stubSQL{})

	if _, err := r.FindByID(context.Background(), uuid.NewString()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("FindByID error = %v, want ErrNotFound", err)
	}
	if _, err := r.FindByID(context.Background(), "not-a-uuid"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("FindByID(invalid) error = %v, want ErrNotFound", err)
	}
}

func TestQuestionMarkResponded(t *testing.T) {
	id := uuid.NewString()
	at := time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)
	sql := &stubSQL{tag: pgconn.NewCommandTag("UPDATE 1")}
	r := NewQuestionRepository(sql)

	if err := r.MarkResponded(context.Background(), id, "A1", at); err != nil {
		t.Fatalf("MarkResponded error: %v", err)
	}
	c := sql.calls[0]
	if c.query != sqlinline.QMarkQuestionResponded || c.args[0] != id || c.args[1] != "A1" || c.args[2] != at {
		t.Fatalf("unexpected call: %+v", c)
	}
}

func TestQuestionMarkRespondedMissing(t *testing.T) {
	r := NewQuestionRepository(&stubSQL{tag: pgconn.NewCommandTag("UPDATE 0")})
	if err := r.MarkResponded(context.Background(), uuid.NewString(), "A1", time.Now()); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("MarkResponded error = %v, want ErrNotFound", err)
	}
}

func TestQuestionStats(t *testing.T) {
	sql := &stubSQL{rows: map[string][][]any{
		sqlinline.QQuestionStats: {{int64(5), int64(3), int64(2), int64(4)}},
	}}
	stats, err := NewQuestionRepository(sql).Stats(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("Stats error: %v", err)
	}
	if *stats != (domain.QuestionStats{Total: 5, New: 3, Responded: 2, ThisMonth: 4}) {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestQuestionListCreatedAfter(t *testing.T) {
	created := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)
	sql := &stubSQL{rows: map[string][][]any{
		sqlinline.QListQuestionsCreatedAfter: {
			{"b", "a@b.com", "Q2", "new", "", nil, "", "", created},
		},
	}}
	cursor := domain.QuestionCursor{CreatedAt: created.Add(-time.Second), ID: "a"}

	items, err := NewQuestionRepository(sql).ListCreatedAfter(context.Background(), cursor, 50)
	if err != nil {
		t.Fatalf("ListCreatedAfter error: %v", err)
	}
	if len(items) != 1 || items[0].ID != "b" || items[0].RespondedAt != nil {
		t.Fatalf("unexpected items: %+v", items)
	}
	if args := sql.calls[0].args; args[0] != cursor.CreatedAt || args[1] != "a" || args[2] != 50 {
		t.Fatalf("unexpected args: %#v", args)
	}
}
