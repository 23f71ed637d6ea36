package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"

	"unishift/internal/domain"
	"unishift/internal/interaction"
)

// MessageSender posts channel messages. *discordgo.Session satisfies it.
type MessageSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// ChannelNotifier posts relay notifications into one text channel.
type ChannelNotifier struct {
	sender    MessageSender
	channelID string
}

// NewChannelNotifier targets channelID.
func NewChannelNotifier(sender MessageSender, channelID string) *ChannelNotifier {
	return &ChannelNotifier{sender: sender, channelID: channelID}
}

// Notify posts reply to the channel.
func (n *ChannelNotifier) Notify(ctx context.Context, reply interaction.Reply) error {
	if n.sender == nil || n.channelID == "" {
		return fmt.Errorf("%w: no questions channel configured", domain.ErrChannelUnavailable)
	}
	if _, err := n.sender.ChannelMessageSendComplex(n.channelID, renderSend(reply), discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrChannelUnavailable, err)
	}
	return nil
}
