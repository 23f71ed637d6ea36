package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// DonationRepository handles donation persistence. Records are append-only.
type DonationRepository interface {
	Create(ctx context.Context, donation *Donation) error
	Page(ctx context.Context, offset, limit int) ([]Donation, error)
	Count(ctx context.Context) (int, error)
	Sum(ctx context.Context) (decimal.Decimal, error)
}

// QuestionRepository handles question persistence.
type QuestionRepository interface {
	Create(ctx context.Context, question *Question) error
	FindByID(ctx context.Context, id string) (*Question, error)
	// MarkResponded sets status, response and responded_at in one update.
	MarkResponded(ctx context.Context, id, response string, at time.Time) error
	List(ctx context.Context) ([]Question, error)
	Stats(ctx context.Context, now time.Time) (*QuestionStats, error)
	ListCreatedAfter(ctx context.Context, cursor QuestionCursor, limit int) ([]Question, error)
}

// QuestionFeed delivers newly created questions until ctx is done. The
// returned channel is closed when the subscription ends.
type QuestionFeed interface {
	Subscribe(ctx context.Context) (<-chan Question, error)
}

// Email is an outbound HTML message.
type Email struct {
	To       string
	Subject  string
	HTMLBody string
}

// Mailer sends outbound email.
type Mailer interface {
	Send(ctx context.Context, email Email) error
}
