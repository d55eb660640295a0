package discord

import (
	"github.com/bwmarrin/discordgo"
)

// ProfileCommand returns the profile command definition and handler
func ProfileCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "profile",
		Description: "Show your currency, inventory, and equipment",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			if err := client.RegisterPlayer(user.Username); err != nil {
				return "", err
			}
			return client.GetProfile(user.Username)
		}, ResponseConfig{
			Title: "👤 Profile",
			Color: 0x95a5a6, // Grey
		})
	}

	return cmd, handler
}

// UseCommand returns the use command definition and handler
func UseCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "use",
		Description: "Use a consumable from your inventory",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "item",
				Description: "Consumable to use",
				Required:    true,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			options := getOptions(i)
			itemName := options[0].StringValue()

			if err := client.RegisterPlayer(user.Username); err != nil {
				return "", err
			}
			return client.UseItem(user.Username, itemName)
		}, ResponseConfig{
			Title: "🍞 Consumable Used",
			Color: 0xe91e63, // Pink
		})
	}

	return cmd, handler
}
