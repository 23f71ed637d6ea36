package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"unishift/internal/domain"
)

const (
	listenerMinReconnect = 2 * time.Second
	listenerMaxReconnect = time.Minute
	listenerPingInterval = 90 * time.Second
)

// QuestionFinder is the part of QuestionRepository the notify feed needs.
type QuestionFinder interface {
	FindByID(ctx context.Context, id string) (*domain.Question, error)
}

// Listener is the subset of *pq.Listener the feed uses.
type Listener interface {
	Listen(channel string) error
	NotificationChannel() <-chan *pq.Notification
	Ping() error
	Close() error
}

// NotifyFeed delivers questions announced by the database trigger over
// LISTEN/NOTIFY. The payload is the question ID; the record is loaded
// before delivery.
type NotifyFeed struct {
	newListener func() Listener
	channel     string
	questions   QuestionFinder
	logger      zerolog.Logger
}

// NewNotifyFeed listens on channel using a lib/pq listener connected to dsn.
func NewNotifyFeed(dsn, channel string, questions QuestionFinder, logger zerolog.Logger) *NotifyFeed {
	return &NotifyFeed{
		newListener: func() Listener {
			return pq.NewListener(dsn, listenerMinReconnect, listenerMaxReconnect, func(ev pq.ListenerEventType, err error) {
				if err != nil {
					logger.Warn().Err(err).Int("event", int(ev)).Msg("feed: listener event")
				}
			})
		},
		channel:   channel,
		questions: questions,
		logger:    logger,
	}
}

// Subscribe starts listening. Notifications missed while the connection was
// down are not replayed.
func (f *NotifyFeed) Subscribe(ctx context.Context) (<-chan domain.Question, error) {
	listener := f.newListener()
	if err := listener.Listen(f.channel); err != nil {
		_ = listener.Close()
		return nil, fmt.Errorf("listen %s: %w", f.channel, err)
	}

	out := make(chan domain.Question)
	go func() {
		defer close(out)
		defer listener.Close()

		ping := time.NewTicker(listenerPingInterval)
		defer ping.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ping.C:
				if err := listener.Ping(); err != nil {
					f.logger.Warn().Err(err).Msg("feed: listener ping failed")
				}
			case n := <-listener.NotificationChannel():
				// nil is sent after the listener reconnects
				if n == nil {
					f.logger.Warn().Msg("feed: listener reconnected, notifications may have been missed")
					continue
				}
				q, err := f.questions.FindByID(ctx, n.Extra)
				if err != nil {
					if errors.Is(err, domain.ErrNotFound) {
						f.logger.Warn().Str("question_id", n.Extra).Msg("feed: notified question not found")
					} else {
						f.logger.Error().Err(err).Str("question_id", n.Extra).Msg("feed: load notified question")
					}
					continue
				}
				select {
				case out <- *q:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out, nil
}

var _ domain.QuestionFeed = (*NotifyFeed)(nil)
