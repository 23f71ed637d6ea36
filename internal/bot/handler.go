package bot

import (
	"context"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"unishift/internal/continuation"
	"unishift/internal/interaction"
	"unishift/internal/relay"
)

const invalidControlMessage = "This control is no longer valid."

// Ledger is the donation workflow driven by the add and view commands.
type Ledger interface {
	RequestAdd(amount decimal.Decimal) (interaction.Reply, error)
	ConfirmAdd(ctx context.Context, tok continuation.ConfirmAdd) (interaction.Reply, error)
	CancelAdd() interaction.Reply
	ViewPage(ctx context.Context, page int) (interaction.Reply, error)
}

// Relay is the question workflow driven by respond buttons and forms.
type Relay interface {
	OpenResponseForm(tok continuation.Respond) interaction.Reply
	SubmitResponse(ctx context.Context, tok continuation.ResponseForm, text string) (interaction.Reply, error)
}

// Responder answers interactions. *discordgo.Session satisfies it.
type Responder interface {
	InteractionRespond(i *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	InteractionResponseEdit(i *discordgo.Interaction, edit *discordgo.WebhookEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Handler routes interactions to the workflows. All state needed to resume
// a workflow arrives in the control identifier, so Handler keeps none.
type Handler struct {
	ledger  Ledger
	relay   Relay
	logger  zerolog.Logger
	timeout time.Duration
}

// NewHandler builds an interaction handler.
func NewHandler(ledger Ledger, relay Relay, logger zerolog.Logger) *Handler {
	return &Handler{ledger: ledger, relay: relay, logger: logger, timeout: 30 * time.Second}
}

// Handle dispatches one interaction.
func (h *Handler) Handle(ctx context.Context, r Responder, i *discordgo.Interaction) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	var err error
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		err = h.handleCommand(ctx, r, i)
	case discordgo.InteractionMessageComponent:
		err = h.handleComponent(ctx, r, i)
	case discordgo.InteractionModalSubmit:
		err = h.handleModal(ctx, r, i)
	default:
		return
	}
	if err != nil {
		h.logger.Error().Err(err).Str("interaction_id", i.ID).Msg("bot: failed to respond to interaction")
	}
}

func (h *Handler) handleCommand(ctx context.Context, r Responder, i *discordgo.Interaction) error {
	data := i.ApplicationCommandData()
	var (
		reply interaction.Reply
		err   error
	)

	switch data.Name {
	case commandAdd:
		var amount float64
		for _, opt := range data.Options {
			if opt.Name == optionAmount {
				amount = opt.FloatValue()
			}
		}
		reply, err = h.ledger.RequestAdd(decimal.NewFromFloat(amount))
	case commandView:
		page := 1
		for _, opt := range data.Options {
			if opt.Name == optionPage {
				page = int(opt.IntValue())
			}
		}
		if page < 1 || page > continuation.MaxPage {
			reply = interaction.Failure("Page number is out of range.")
			break
		}
		reply, err = h.ledger.ViewPage(ctx, page)
	default:
		h.logger.Warn().Str("command", data.Name).Msg("bot: unknown command")
		return nil
	}
	h.logWorkflowError(i, err)
	return ephemeral(r, i, reply)
}

func (h *Handler) handleComponent(ctx context.Context, r Responder, i *discordgo.Interaction) error {
	customID := i.MessageComponentData().CustomID
	tok, err := continuation.Parse(customID)
	if err != nil {
		h.logger.Warn().Err(err).Str("custom_id", customID).Msg("bot: rejected control")
		return ephemeral(r, i, interaction.Failure(invalidControlMessage))
	}

	var reply interaction.Reply
	switch t := tok.(type) {
	case continuation.ConfirmAdd:
		reply, err = h.ledger.ConfirmAdd(ctx, t)
	case continuation.CancelAdd:
		reply = h.ledger.CancelAdd()
	case continuation.ViewPage:
		reply, err = h.ledger.ViewPage(ctx, t.Page)
	case continuation.Respond:
		form := h.relay.OpenResponseForm(t)
		return r.InteractionRespond(i, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseModal,
			Data: renderModal(form.Form),
		})
	default:
		h.logger.Warn().Str("custom_id", customID).Msg("bot: control kind not valid on a button")
		return ephemeral(r, i, interaction.Failure(invalidControlMessage))
	}
	h.logWorkflowError(i, err)

	return r.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: renderMessage(reply),
	})
}

// handleModal acknowledges first because sending mail can outlast the
// interaction deadline, then edits the deferred reply with the outcome.
func (h *Handler) handleModal(ctx context.Context, r Responder, i *discordgo.Interaction) error {
	data := i.ModalSubmitData()
	tok, err := continuation.Parse(data.CustomID)
	form, ok := tok.(continuation.ResponseForm)
	if err != nil || !ok {
		h.logger.Warn().Err(err).Str("custom_id", data.CustomID).Msg("bot: rejected form")
		return ephemeral(r, i, interaction.Failure(invalidControlMessage))
	}

	if err := r.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}); err != nil {
		return err
	}

	reply, err := h.relay.SubmitResponse(ctx, form, fieldValue(data.Components, relay.ResponseFieldID))
	h.logWorkflowError(i, err)

	msg := renderMessage(reply)
	_, err = r.InteractionResponseEdit(i, &discordgo.WebhookEdit{
		Content:    &msg.Content,
		Embeds:     &msg.Embeds,
		Components: &msg.Components,
	})
	return err
}

// logWorkflowError records a failure the user only sees as a generic reply.
func (h *Handler) logWorkflowError(i *discordgo.Interaction, err error) {
	if err == nil {
		return
	}
	h.logger.Warn().Err(err).Str("interaction_id", i.ID).Msg("bot: workflow reported failure")
}

func ephemeral(r Responder, i *discordgo.Interaction, reply interaction.Reply) error {
	data := renderMessage(reply)
	data.Flags = discordgo.MessageFlagsEphemeral
	return r.InteractionRespond(i, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
}
