package db

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"unishift/internal/infra"
)

type recordingExec struct {
	queries []string
	err     error
}

func (r *recordingExec) Exec(_ context.Context, query string, _ ...any) (pgconn.CommandTag, error) {
	r.queries = append(r.queries, query)
	return pgconn.CommandTag{}, r.err
}

func (r *recordingExec) QueryRow(context.Context, string, ...any) pgx.Row { return nil }

func (r *recordingExec) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func TestSchemaCarriesMarker(t *testing.T) {
	if _, _, err := infra.ExtractMarker(Schema()); err != nil {
		t.Fatalf("schema marker: %v", err)
	}
	if !strings.Contains(Schema(), "pg_notify('"+NotifyChannel+"'") {
		t.Fatalf("schema does not notify on %s", NotifyChannel)
	}
}

func TestMigrateExecutesSchema(t *testing.T) {
	exec := &recordingExec{}
	if err := Migrate(context.Background(), exec); err != nil {
		t.Fatalf("Migrate error: %v", err)
	}
	if len(exec.queries) != 1 || exec.queries[0] != Schema() {
		t.Fatalf("unexpected queries: %d", len(exec.queries))
	}
}

func TestMigrateWrapsError(t *testing.T) {
	boom := errors.New("boom")
	if err := Migrate(context.Background(), &recordingExec{err: boom}); !errors.Is(err, boom) {
		t.Fatalf("Migrate error = %v, want boom", err)
	}
}
