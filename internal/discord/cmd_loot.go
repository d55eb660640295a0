package discord

import (
	"github.com/bwmarrin/discordgo"
)

// DrawCommand returns the draw command definition and handler
func DrawCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "draw",
		Description: "Draw loot from a table",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "table",
				Description: "Loot table to draw from",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "count",
				Description: "Number of draws (default: 1)",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			options := getOptions(i)
			table := options[0].StringValue()
			count := 1
			if len(options) > 1 {
				count = int(options[1].IntValue())
			}

			if err := client.RegisterPlayer(user.Username); err != nil {
				return "", err
			}
			return client.Draw(user.Username, table, count)
		}, ResponseConfig{
			Title: "🎲 Loot Draw",
			Color: 0x9b59b6, // Purple
		})
	}

	return cmd, handler
}

// TablesCommand returns the tables command definition and handler
func TablesCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "tables",
		Description: "List the loot tables and their draw costs",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			return client.GetTables()
		}, ResponseConfig{
			Title: "🗺️ Loot Tables",
			Color: 0x3498db, // Blue
		})
	}

	return cmd, handler
}
