package infra

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
)

func TestExtractMarker(t *testing.T) {
	query := "--sql 0b0e4b9c-2d55-4a57-9d0b-7d2b3f5c4e10\nselect 1;\n"
	marker, body, err := ExtractMarker(query)
	if err != nil {
		t.Fatalf("ExtractMarker error: %v", err)
	}
	if marker != "0b0e4b9c-2d55-4a57-9d0b-7d2b3f5c4e10" {
		t.Fatalf("marker = %q", marker)
	}
	if body != "select 1;" {
		t.Fatalf("body = %q", body)
	}
}

func TestExtractMarkerRejectsUntagged(t *testing.T) {
	for _, q := range []string{"", "select 1;", "--sql nope\nselect 1;", "-- sql 0b0e4b9c-2d55-4a57-9d0b-7d2b3f5c4e10\nselect 1;"} {
		if _, _, err := ExtractMarker(q); !errors.Is(err, ErrMissingMarker) {
			t.Fatalf("ExtractMarker(%q) error = %v, want ErrMissingMarker", q, err)
		}
	}
}

func TestIsNoRows(t *testing.T) {
	if !IsNoRows(fmt.Errorf("wrapped: %w", pgx.ErrNoRows)) {
		t.Fatalf("expected wrapped ErrNoRows to match")
	}
	if IsNoRows(errors.New("other")) {
		t.Fatalf("unexpected match")
	}
}
