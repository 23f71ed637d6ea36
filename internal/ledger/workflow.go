// Package ledger records donations behind a confirm/cancel prompt and pages
// through the donation history.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"unishift/internal/continuation"
	"unishift/internal/domain"
	"unishift/internal/interaction"
)

// PageSize is the number of donations listed per page.
const PageSize = 10

// maxAmount keeps a confirmed amount encodable in a continuation token.
var maxAmount = decimal.RequireFromString("999999999.99")

// Workflow drives the add and view interactions. It holds no per-interaction
// state, so one instance serves every operator concurrently.
type Workflow struct {
	donations domain.DonationRepository
	logger    zerolog.Logger
	location  *time.Location
	now       func() time.Time
}

// Option customises a Workflow.
type Option func(*Workflow)

// WithClock overrides the time source used for new records.
func WithClock(now func() time.Time) Option {
	return func(w *Workflow) {
		if now != nil {
			w.now = now
		}
	}
}

// WithLocation sets the time zone dates are displayed in.
func WithLocation(loc *time.Location) Option {
	return func(w *Workflow) {
		if loc != nil {
			w.location = loc
		}
	}
}

// New constructs a ledger workflow.
func New(donations domain.DonationRepository, logger zerolog.Logger, opts ...Option) *Workflow {
	w := &Workflow{
		donations: donations,
		logger:    logger,
		location:  time.UTC,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// RequestAdd proposes a donation. Nothing is written until the confirm
// control comes back.
func (w *Workflow) RequestAdd(amount decimal.Decimal) (interaction.Reply, error) {
	amount = amount.Round(2)
	if !amount.IsPositive() || amount.GreaterThan(maxAmount) {
		w.logger.Warn().Str("amount", amount.String()).Msg("ledger: rejected donation amount")
		return interaction.Failure("Donation amount must be between £0.01 and £999,999,999.99."),
			fmt.Errorf("%w: %s", domain.ErrInvalidAmount, amount)
	}

	return interaction.Reply{
		Embed: &interaction.Embed{
			Title:       "Confirm Donation Addition",
			Description: fmt.Sprintf("Are you sure you want to add a donation of **£%s**?", amount.StringFixed(2)),
			Color:       interaction.ColorAccent,
			Timestamp:   w.now(),
		},
		Buttons: []interaction.Button{
			{Label: "Confirm", Style: interaction.ButtonSuccess, Token: continuation.ConfirmAdd{Amount: amount}},
			{Label: "Cancel", Style: interaction.ButtonDanger, Token: continuation.CancelAdd{}},
		},
	}, nil
}

// ConfirmAdd writes the donation carried by the token.
func (w *Workflow) ConfirmAdd(ctx context.Context, tok continuation.ConfirmAdd) (interaction.Reply, error) {
	if !tok.Amount.IsPositive() {
		w.logger.Warn().Str("amount", tok.Amount.String()).Msg("ledger: confirm carried non-positive amount")
		return interaction.Failure("That confirmation is no longer valid."),
			fmt.Errorf("%w: non-positive amount", domain.ErrInvalidToken)
	}

	donation := &domain.Donation{Amount: tok.Amount, CreatedAt: w.now()}
	if err := w.donations.Create(ctx, donation); err != nil {
		w.logger.Error().Err(err).Str("amount", tok.Amount.String()).Msg("ledger: failed to add donation")
		return interaction.Failure("Error adding donation to database."),
			fmt.Errorf("%w: %v", domain.ErrStoreWrite, err)
	}

	w.logger.Info().Str("donation_id", donation.ID).Str("amount", tok.Amount.String()).Msg("ledger: donation added")
	return interaction.Reply{
		Embed: &interaction.Embed{
			Title:       "Donation Added Successfully",
			Description: fmt.Sprintf("Added donation of **£%s** to the database.", tok.Amount.StringFixed(2)),
			Color:       interaction.ColorSuccess,
			Timestamp:   w.now(),
		},
	}, nil
}

// CancelAdd discards a proposal. The store is not touched.
func (w *Workflow) CancelAdd() interaction.Reply {
	return interaction.Reply{
		Embed: &interaction.Embed{
			Title:       "Donation Addition Cancelled",
			Description: "The donation was not added to the database.",
			Color:       interaction.ColorDanger,
			Timestamp:   w.now(),
		},
	}
}

// Page is one page of the donation history together with ledger totals.
type Page struct {
	Number     int
	Offset     int
	Items      []domain.Donation
	TotalCount int
	TotalPages int
	Total      decimal.Decimal
}

// HasPrevious reports whether an earlier page exists.
func (p *Page) HasPrevious() bool { return p.Number > 1 }

// HasNext reports whether a later page exists. It depends only on the
// global count, never on the items of this page.
func (p *Page) HasNext() bool { return p.Number < p.TotalPages }

// LoadPage fetches page number (1-based) ordered newest first.
func (w *Workflow) LoadPage(ctx context.Context, number int) (*Page, error) {
	if number < 1 {
		number = 1
	}
	offset := (number - 1) * PageSize

	items, err := w.donations.Page(ctx, offset, PageSize)
	if err != nil {
		return nil, fmt.Errorf("%w: list donations: %v", domain.ErrStoreRead, err)
	}
	count, err := w.donations.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: count donations: %v", domain.ErrStoreRead, err)
	}
	total, err := w.donations.Sum(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: sum donations: %v", domain.ErrStoreRead, err)
	}

	return &Page{
		Number:     number,
		Offset:     offset,
		Items:      items,
		TotalCount: count,
		TotalPages: TotalPages(count),
		Total:      total,
	}, nil
}

// ViewPage renders a page of the donation history with pagination controls.
func (w *Workflow) ViewPage(ctx context.Context, number int) (interaction.Reply, error) {
	page, err := w.LoadPage(ctx, number)
	if err != nil {
		w.logger.Error().Err(err).Int("page", number).Msg("ledger: failed to fetch donations")
		return interaction.Failure("Error fetching donations from database."), err
	}

	reply := interaction.Reply{
		Embed: &interaction.Embed{
			Title:       "Donation History",
			Description: w.Listing(page),
			Footer:      Footer(page),
			Color:       interaction.ColorAccent,
			Timestamp:   w.now(),
		},
	}
	if page.HasPrevious() {
		reply.Buttons = append(reply.Buttons, interaction.Button{
			Label: "Previous",
			Style: interaction.ButtonSecondary,
			Token: continuation.ViewPage{Page: page.Number - 1},
		})
	}
	if page.HasNext() {
		reply.Buttons = append(reply.Buttons, interaction.Button{
			Label: "Next",
			Style: interaction.ButtonSecondary,
			Token: continuation.ViewPage{Page: page.Number + 1},
		})
	}
	return reply, nil
}

// TotalPages is ceil(count / PageSize).
func TotalPages(count int) int {
	if count <= 0 {
		return 0
	}
	return (count + PageSize - 1) / PageSize
}
