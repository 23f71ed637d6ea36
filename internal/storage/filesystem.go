// Package storage keeps website questions in a JSON file on the local
// filesystem. It is intended for single-host deployments where PostgreSQL is
// not available.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"unishift/internal/domain"
)

// FileStore persists questions as a JSON array. Writes go through a temporary
// file and a rename so readers never see a partial document. The mutex only
// serialises callers inside this process.
type FileStore struct {
	path string
	mu   sync.Mutex
	now  func() time.Time
}

// NewFileStore initializes a FileStore backed by path, creating the file with
// an empty array when it does not exist.
func NewFileStore(path string) (*FileStore, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("storage: questions file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: ensure directory: %w", err)
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return nil, fmt.Errorf("storage: init questions file: %w", err)
		}
	} else if err != nil {
		return nil, fmt.Errorf("storage: stat questions file: %w", err)
	}
	return &FileStore{path: path, now: time.Now}, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Create appends a question with status new and assigns its ID and creation
// time. The time is taken under the lock and is strictly later than every
// stored question, so creation order and timestamp order always agree and a
// cursor past the newest question never skips a later insert.
func (s *FileStore) Create(ctx context.Context, q *domain.Question) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}
	record := *q
	record.ID = uuid.NewString()
	record.Status = domain.QuestionStatusNew
	record.Response = ""
	record.RespondedAt = nil
	record.CreatedAt = nextCreatedAt(s.now().Round(0), items)
	items = append(items, record)
	if err := s.save(items); err != nil {
		return err
	}
	*q = record
	return nil
}

// FindByID returns the question or domain.ErrNotFound.
func (s *FileStore) FindByID(ctx context.Context, id string) (*domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			q := items[i]
			return &q, nil
		}
	}
	return nil, domain.ErrNotFound
}

// MarkResponded records the response. A second call overwrites the first.
func (s *FileStore) MarkResponded(ctx context.Context, id, response string, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	items, err := s.load()
	if err != nil {
		return err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		respondedAt := at
		items[i].Status = domain.QuestionStatusResponded
		items[i].Response = response
		items[i].RespondedAt = &respondedAt
		return s.save(items)
	}
	return domain.ErrNotFound
}

// List returns every question, newest first.
func (s *FileStore) List(ctx context.Context) ([]domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	items, err := s.load()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

// ListCreatedAfter returns up to limit questions after cursor, oldest first.
func (s *FileStore) ListCreatedAfter(ctx context.Context, cursor domain.QuestionCursor, limit int) ([]domain.Question, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	items, err := s.load()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	var out []domain.Question
	for _, q := range items {
		if cursor.After(q) {
			out = append(out, q)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Stats counts questions by status and for the UTC calendar month containing now.
func (s *FileStore) Stats(ctx context.Context, now time.Time) (*domain.QuestionStats, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	items, err := s.load()
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}
	utc := now.UTC()
	monthStart := time.Date(utc.Year(), utc.Month(), 1, 0, 0, 0, 0, time.UTC)
	stats := &domain.QuestionStats{Total: len(items)}
	for _, q := range items {
		switch q.Status {
		case domain.QuestionStatusResponded:
			stats.Responded++
		default:
			stats.New++
		}
		if !q.CreatedAt.Before(monthStart) {
			stats.ThisMonth++
		}
	}
	return stats, nil
}

func nextCreatedAt(now time.Time, items []domain.Question) time.Time {
	for _, q := range items {
		if !now.After(q.CreatedAt) {
			now = q.CreatedAt.Add(time.Nanosecond)
		}
	}
	return now
}

func (s *FileStore) load() ([]domain.Question, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("storage: read questions file: %w", err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, nil
	}
	var items []domain.Question
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("storage: decode questions file: %w", err)
	}
	return items, nil
}

func (s *FileStore) save(items []domain.Question) error {
	if items == nil {
		items = []domain.Question{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: encode questions: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".questions-*.json")
	if err != nil {
		return fmt.Errorf("storage: create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("storage: write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: replace questions file: %w", err)
	}
	return nil
}

var _ domain.QuestionRepository = (*FileStore)(nil)
