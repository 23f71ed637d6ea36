// Package feed turns question stores into streams of newly created
// questions.
package feed

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"unishift/internal/domain"
)

const defaultPollBatch = 50

// QuestionLister is the part of QuestionRepository the poller needs.
type QuestionLister interface {
	ListCreatedAfter(ctx context.Context, cursor domain.QuestionCursor, limit int) ([]domain.Question, error)
}

// PollFeed emulates change notification by periodically listing questions
// created after the last one delivered. Questions that existed before
// Subscribe are not replayed.
type PollFeed struct {
	questions QuestionLister
	interval  time.Duration
	batch     int
	logger    zerolog.Logger
	now       func() time.Time
}

// NewPollFeed constructs a PollFeed.
func NewPollFeed(questions QuestionLister, interval time.Duration, logger zerolog.Logger) *PollFeed {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return &PollFeed{
		questions: questions,
		interval:  interval,
		batch:     defaultPollBatch,
		logger:    logger,
		now:       time.Now,
	}
}

// Subscribe starts polling in a new goroutine.
func (f *PollFeed) Subscribe(ctx context.Context) (<-chan domain.Question, error) {
	out := make(chan domain.Question)
	cursor := domain.QuestionCursor{CreatedAt: f.now()}

	go func() {
		defer close(out)
		ticker := time.NewTicker(f.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}

			for {
				items, err := f.questions.ListCreatedAfter(ctx, cursor, f.batch)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					f.logger.Error().Err(err).Msg("feed: poll questions failed")
					break
				}
				for _, q := range items {
					select {
					case out <- q:
						cursor = cursor.Advance(q)
					case <-ctx.Done():
						return
					}
				}
				if len(items) < f.batch {
					break
				}
			}
		}
	}()

	return out, nil
}

var _ domain.QuestionFeed = (*PollFeed)(nil)
