package bot

import "github.com/bwmarrin/discordgo"

const (
	commandAdd  = "add"
	commandView = "view"

	optionAmount = "amount"
	optionPage   = "page"
)

var (
	minAmount = 0.01
	minPage   = 1.0
)

// Commands returns the slash commands registered on the guild.
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        commandAdd,
			Description: "Add a donation to the database",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionNumber,
				Name:        optionAmount,
				Description: "Donation amount in pounds",
				Required:    true,
				MinValue:    &minAmount,
			}},
		},
		{
			Name:        commandView,
			Description: "View all donations with pagination",
			Options: []*discordgo.ApplicationCommandOption{{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        optionPage,
				Description: "Page number (default: 1)",
				MinValue:    &minPage,
			}},
		},
	}
}
