package bot

import (
	"time"

	"github.com/bwmarrin/discordgo"

	"unishift/internal/interaction"
)

var buttonStyles = map[interaction.ButtonStyle]discordgo.ButtonStyle{
	interaction.ButtonPrimary:   discordgo.PrimaryButton,
	interaction.ButtonSecondary: discordgo.SecondaryButton,
	interaction.ButtonSuccess:   discordgo.SuccessButton,
	interaction.ButtonDanger:    discordgo.DangerButton,
}

func renderEmbeds(r interaction.Reply) []*discordgo.MessageEmbed {
	if r.Embed == nil {
		return []*discordgo.MessageEmbed{}
	}
	e := &discordgo.MessageEmbed{
		Title:       r.Embed.Title,
		Description: r.Embed.Description,
		Color:       int(r.Embed.Color),
	}
	if r.Embed.Footer != "" {
		e.Footer = &discordgo.MessageEmbedFooter{Text: r.Embed.Footer}
	}
	if !r.Embed.Timestamp.IsZero() {
		e.Timestamp = r.Embed.Timestamp.UTC().Format(time.RFC3339)
	}
	return []*discordgo.MessageEmbed{e}
}

func renderComponents(r interaction.Reply) []discordgo.MessageComponent {
	if len(r.Buttons) == 0 {
		return []discordgo.MessageComponent{}
	}
	row := discordgo.ActionsRow{}
	for _, b := range r.Buttons {
		style, ok := buttonStyles[b.Style]
		if !ok {
			style = discordgo.SecondaryButton
		}
		row.Components = append(row.Components, discordgo.Button{
			Label:    b.Label,
			Style:    style,
			CustomID: b.Token.String(),
		})
	}
	return []discordgo.MessageComponent{row}
}

// renderMessage converts a reply into message data. Empty embed and
// component lists are sent explicitly so an updated message loses its
// previous controls.
func renderMessage(r interaction.Reply) *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		Content:    r.Content,
		Embeds:     renderEmbeds(r),
		Components: renderComponents(r),
	}
}

func renderModal(f *interaction.Form) *discordgo.InteractionResponseData {
	style := discordgo.TextInputShort
	if f.Field.Multiline {
		style = discordgo.TextInputParagraph
	}
	return &discordgo.InteractionResponseData{
		CustomID: f.Token.String(),
		Title:    f.Title,
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{Components: []discordgo.MessageComponent{
				discordgo.TextInput{
					CustomID:    f.Field.ID,
					Label:       f.Field.Label,
					Style:       style,
					Placeholder: f.Field.Placeholder,
					Required:    f.Field.Required,
					MaxLength:   f.Field.MaxLength,
				},
			}},
		},
	}
}

func renderSend(r interaction.Reply) *discordgo.MessageSend {
	return &discordgo.MessageSend{
		Content:    r.Content,
		Embeds:     renderEmbeds(r),
		Components: renderComponents(r),
	}
}

// fieldValue finds a text input by custom ID in submitted modal components.
func fieldValue(components []discordgo.MessageComponent, id string) string {
	for _, c := range components {
		switch v := c.(type) {
		case *discordgo.ActionsRow:
			if s := fieldValue(v.Components, id); s != "" {
				return s
			}
		case discordgo.ActionsRow:
			if s := fieldValue(v.Components, id); s != "" {
				return s
			}
		case *discordgo.TextInput:
			if v.CustomID == id {
				return v.Value
			}
		case discordgo.TextInput:
			if v.CustomID == id {
				return v.Value
			}
		}
	}
	return ""
}
