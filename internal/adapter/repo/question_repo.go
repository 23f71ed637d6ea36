package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"unishift/internal/domain"
	"unishift/internal/infra"
	"unishift/internal/sqlinline"
)

// QuestionRepositoryPG implements QuestionRepository using PostgreSQL.
type QuestionRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewQuestionRepository creates a new question repo.
func NewQuestionRepository(sql infra.SQLExecutor) *QuestionRepositoryPG {
	return &QuestionRepositoryPG{sql: sql}
}

// Create inserts a question with status new and assigns its ID.
func (r *QuestionRepositoryPG) Create(ctx context.Context, q *domain.Question) error {
	id := uuid.NewString()
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}
	if _, err := r.sql.Exec(ctx, sqlinline.QInsertQuestion, id, q.Email, q.Question, q.IPAddress, q.Country, q.CreatedAt); err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	q.ID = id
	q.Status = domain.QuestionStatusNew
	return nil
}

// FindByID returns the question or domain.ErrNotFound.
func (r *QuestionRepositoryPG) FindByID(ctx context.Context, id string) (*domain.Question, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	q, err := scanQuestion(r.sql.QueryRow(ctx, sqlinline.QSelectQuestionByID, id))
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select question: %w", err)
	}
	return q, nil
}

// MarkResponded records the response in a single UPDATE.
func (r *QuestionRepositoryPG) MarkResponded(ctx context.Context, id, response string, at time.Time) error {
	tag, err := r.sql.Exec(ctx, sqlinline.QMarkQuestionResponded, id, response, at)
	if err != nil {
		return fmt.Errorf("mark question responded: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List returns every question, newest first.
func (r *QuestionRepositoryPG) List(ctx context.Context) ([]domain.Question, error) {
	return r.query(ctx, sqlinline.QListQuestions)
}

// ListCreatedAfter returns up to limit questions created after cursor, oldest first.
func (r *QuestionRepositoryPG) ListCreatedAfter(ctx context.Context, cursor domain.QuestionCursor, limit int) ([]domain.Question, error) {
	return r.query(ctx, sqlinline.QListQuestionsCreatedAfter, cursor.CreatedAt, cursor.ID, limit)
}

// Stats counts questions by status and for the month containing now.
func (r *QuestionRepositoryPG) Stats(ctx context.Context, now time.Time) (*domain.QuestionStats, error) {
	var total, fresh, responded, thisMonth int64
	if err := r.sql.QueryRow(ctx, sqlinline.QQuestionStats, now).Scan(&total, &fresh, &responded, &thisMonth); err != nil {
		return nil, fmt.Errorf("question stats: %w", err)
	}
	return &domain.QuestionStats{
		Total:     int(total),
		New:       int(fresh),
		Responded: int(responded),
		ThisMonth: int(thisMonth),
	}, nil
}

func (r *QuestionRepositoryPG) query(ctx context.Context, query string, args ...any) ([]domain.Question, error) {
	rows, err := r.sql.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()

	var items []domain.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		items = append(items, *q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func scanQuestion(row pgx.Row) (*domain.Question, error) {
	var (
		q      domain.Question
		status string
	)
	if err := row.Scan(&q.ID, &q.Email, &q.Question, &status, &q.Response, &q.RespondedAt, &q.IPAddress, &q.Country, &q.CreatedAt); err != nil {
		return nil, err
	}
	q.Status = domain.QuestionStatus(status)
	return &q, nil
}

var _ domain.QuestionRepository = (*QuestionRepositoryPG)(nil)
