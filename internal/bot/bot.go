// Package bot connects the ledger and relay workflows to Discord.
package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog"
)

// Options identify the application and the guild its commands live in.
type Options struct {
	Token   string
	AppID   string
	GuildID string
}

// Bot owns the gateway session.
type Bot struct {
	session *discordgo.Session
	opts    Options
	logger  zerolog.Logger
}

// New creates a session. Nothing connects until Start.
func New(opts Options, logger zerolog.Logger) (*Bot, error) {
	if opts.Token == "" {
		return nil, errors.New("bot: token is required")
	}
	session, err := discordgo.New("Bot " + opts.Token)
	if err != nil {
		return nil, fmt.Errorf("bot: create session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds
	return &Bot{session: session, opts: opts, logger: logger}, nil
}

// Session exposes the underlying session, e.g. for a ChannelNotifier.
func (b *Bot) Session() *discordgo.Session { return b.session }

// Start opens the gateway and replaces the guild's slash commands.
// Interactions go to handler with ctx as their parent context.
func (b *Bot) Start(ctx context.Context, handler *Handler) error {
	b.session.AddHandler(func(s *discordgo.Session, r *discordgo.Ready) {
		b.logger.Info().Str("user", r.User.String()).Msg("bot: logged in")
	})
	b.session.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		handler.Handle(ctx, s, ic.Interaction)
	})

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("bot: open gateway: %w", err)
	}

	appID := b.opts.AppID
	if appID == "" && b.session.State != nil && b.session.State.User != nil {
		appID = b.session.State.User.ID
	}
	cmds, err := b.session.ApplicationCommandBulkOverwrite(appID, b.opts.GuildID, Commands(), discordgo.WithContext(ctx))
	if err != nil {
		_ = b.session.Close()
		return fmt.Errorf("bot: register commands: %w", err)
	}
	b.logger.Info().Int("commands", len(cmds)).Str("guild_id", b.opts.GuildID).Msg("bot: slash commands registered")
	return nil
}

// Close disconnects from the gateway.
func (b *Bot) Close() error {
	return b.session.Close()
}
