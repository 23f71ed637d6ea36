// Package relay carries website questions to the operator channel and the
// operator's answer back to the submitter by email.
package relay

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"unishift/internal/continuation"
	"unishift/internal/domain"
	"unishift/internal/interaction"
)

// MaxResponseLength bounds the operator's reply in characters.
const MaxResponseLength = 2000

// ResponseFieldID identifies the text field of the response form.
const ResponseFieldID = "response_text"

// Notifier posts a reply to the operator channel.
type Notifier interface {
	Notify(ctx context.Context, reply interaction.Reply) error
}

// Workflow moves a question from new to responded. All context between steps
// travels in continuation tokens.
type Workflow struct {
	questions domain.QuestionRepository
	mailer    domain.Mailer
	notifier  Notifier
	composer  *Composer
	logger    zerolog.Logger
	now       func() time.Time
}

// Option customises a Workflow.
type Option func(*Workflow)

// WithClock overrides the time source used for responded_at.
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) {
		if now != nil {
			w.now = now
		}
	}
}

// WithComposer replaces the default email composer.
func WithComposer(c *Composer) Option {
	return func(w *Workflow) {
		if c != nil {
			w.composer = c
		}
	}
}

// New constructs a relay workflow.
func New(questions domain.QuestionRepository, mailer domain.Mailer, notifier Notifier, logger zerolog.Logger, opts ...Option) *Workflow {
	w := &Workflow{
		questions: questions,
		mailer:    mailer,
		notifier:  notifier,
		composer:  NewComposer(DefaultOrganisation),
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run forwards every question delivered by the feed to OnQuestionCreated
// until ctx is done or the feed closes.
func (w *Workflow) Run(ctx context.Context, feed domain.QuestionFeed) error {
	events, err := feed.Subscribe(ctx)
	if err != nil {
		return fmt.Errorf("relay: subscribe: %w", err)
	}
	w.logger.Info().Msg("relay: listening for new questions")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case q, ok := <-events:
			if !ok {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				return errors.New("relay: question feed closed")
			}
			_ = w.OnQuestionCreated(ctx, q)
		}
	}
}

// OnQuestionCreated notifies operators about a new question. Failures are
// logged and dropped; the question stays discoverable in the store.
func (w *Workflow) OnQuestionCreated(ctx context.Context, q domain.Question) error {
	reply := interaction.Reply{
		Embed: &interaction.Embed{
			Title:       "New Question from Website",
			Description: q.Question,
			Footer:      "From: " + q.Email,
			Color:       interaction.ColorAccent,
			Timestamp:   q.CreatedAt,
		},
		Buttons: []interaction.Button{
			{Label: "Respond", Style: interaction.ButtonPrimary, Token: continuation.Respond{QuestionID: q.ID}},
		},
	}
	if err := w.notifier.Notify(ctx, reply); err != nil {
		if !errors.Is(err, domain.ErrChannelUnavailable) {
			err = fmt.Errorf("%w: %v", domain.ErrChannelUnavailable, err)
		}
		w.logger.Error().Err(err).Str("question_id", q.ID).Msg("relay: failed to notify about new question")
		return err
	}
	w.logger.Info().Str("question_id", q.ID).Msg("relay: question posted")
	return nil
}

// OpenResponseForm presents the response form for the question in tok.
func (w *Workflow) OpenResponseForm(tok continuation.Respond) interaction.Reply {
	return interaction.Reply{
		Form: &interaction.Form{
			Token: continuation.ResponseForm{QuestionID: tok.QuestionID},
			Title: "Respond to Question",
			Field: interaction.TextField{
				ID:          ResponseFieldID,
				Label:       "Your Response",
				Placeholder: "Type your response here...",
				Required:    true,
				Multiline:   true,
				MaxLength:   MaxResponseLength,
			},
		},
	}
}

// SubmitResponse emails the operator's answer and then marks the question
// responded. The email goes out first so a failed send leaves the question
// new and answerable again.
func (w *Workflow) SubmitResponse(ctx context.Context, tok continuation.ResponseForm, text string) (interaction.Reply, error) {
	log := w.logger.With().Str("question_id", tok.QuestionID).Logger()

	text = strings.TrimSpace(text)
	if text == "" || utf8.RuneCountInString(text) > MaxResponseLength {
		log.Warn().Int("length", utf8.RuneCountInString(text)).Msg("relay: rejected response text")
		return interaction.Failure(fmt.Sprintf("Response must be between 1 and %d characters.", MaxResponseLength)),
			domain.ErrInvalidResponse
	}

	q, err := w.questions.FindByID(ctx, tok.QuestionID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Warn().Msg("relay: question not found")
			return interaction.Failure("Question not found in database."), err
		}
		log.Error().Err(err).Msg("relay: failed to load question")
		return interaction.Failure("Error sending email response."), fmt.Errorf("%w: %v", domain.ErrStoreRead, err)
	}

	email, err := w.composer.Compose(q, text)
	if err != nil {
		log.Error().Err(err).Msg("relay: failed to compose email")
		return interaction.Failure("Error sending email response."), fmt.Errorf("%w: %v", domain.ErrMailDispatch, err)
	}
	if err := w.mailer.Send(ctx, email); err != nil {
		log.Error().Err(err).Msg("relay: failed to send email response")
		return interaction.Failure("Error sending email response."), fmt.Errorf("%w: %v", domain.ErrMailDispatch, err)
	}

	if err := w.questions.MarkResponded(ctx, q.ID, text, w.now()); err != nil {
		log.Error().Err(err).Msg("relay: email sent but failed to mark question responded")
		return interaction.Failure(fmt.Sprintf("Email response sent to %s, but the question could not be marked as responded.", q.Email)),
			fmt.Errorf("%w: %v", domain.ErrStoreWrite, err)
	}

	log.Info().Msg("relay: response sent")
	return interaction.Reply{
		Embed: &interaction.Embed{
			Title:       "Response Sent Successfully",
			Description: "Email response sent to " + q.Email,
			Color:       interaction.ColorSuccess,
			Timestamp:   w.now(),
		},
	}, nil
}
