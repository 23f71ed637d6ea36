package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"unishift/internal/domain"
	"unishift/internal/sqlinline"
)

func TestDonationCreateAssignsID(t *testing.T) {
	sql := &stubSQL{}
	r := NewDonationRepository(sql)
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	d := &domain.Donation{Amount: decimal.RequireFromString("25.5"), CreatedAt: created}
	if err := r.Create(context.Background(), d); err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if _, err := uuid.Parse(d.ID); err != nil {
		t.Fatalf("expected uuid id, got %q", d.ID)
	}
	if len(sql.calls) != 1 || sql.calls[0].query != sqlinline.QInsertDonation {
		t.Fatalf("unexpected calls: %+v", sql.calls)
	}
	args := sql.calls[0].args
	if args[1] != "25.50" || args[2] != created {
		t.Fatalf("unexpected args: %#v", args)
	}
}

func TestDonationCreateError(t *testing.T) {
	boom := errors.New("boom")
	r := NewDonationRepository(&stubSQL{err: boom})
	d := &domain.Donation{Amount: decimal.NewFromInt(1)}
	if err := r.Create(context.Background(), d); !errors.Is(err, boom) {
		t.Fatalf("Create error = %v, want boom", err)
	}
	if d.ID != "" {
		t.Fatalf("ID assigned despite failure")
	}
}

func TestDonationPage(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	sql := &stubSQL{rows: map[string][][]any{
		sqlinline.QListDonationsPage: {
			{"d-2", "10.00", created.Add(time.Hour)},
			{"d-1", "5.25", created},
		},
	}}
	r := NewDonationRepository(sql)

	items, err := r.Page(context.Background(), 10, 10)
	if err != nil {
		t.Fatalf("Page error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 donations, got %d", len(items))
	}
	if items[1].ID != "d-1" || !items[1].Amount.Equal(decimal.RequireFromString("5.25")) {
		t.Fatalf("unexpected donation: %+v", items[1])
	}
	if args := sql.calls[0].args; args[0] != 10 || args[1] != 10 {
		t.Fatalf("unexpected offset/limit: %#v", args)
	}
}

func TestDonationCountAndSum(t *testing.T) {
	sql := &stubSQL{rows: map[string][][]any{
		sqlinline.QCountDonations: {{int64(12)}},
		sqlinline.QSumDonations:   {{"1234.50"}},
	}}
	r := NewDonationRepository(sql)

	count, err := r.Count(context.Background())
	if err != nil || count != 12 {
		t.Fatalf("Count = %d, %v; want 12", count, err)
	}
	sum, err := r.Sum(context.Background())
	if err != nil || !sum.Equal(decimal.RequireFromString("1234.5")) {
		t.Fatalf("Sum = %s, %v; want 1234.50", sum, err)
	}
}
