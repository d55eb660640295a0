package discord

import (
	"github.com/bwmarrin/discordgo"
)

// CraftCommand returns the craft command definition and handler
func CraftCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "craft",
		Description: "Craft an item from ingredients in your inventory",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "item",
				Description: "Item to craft",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "effect_rolls",
				Description: "Paid effect rolls to attempt (default: 0)",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			options := getOptions(i)
			itemName := options[0].StringValue()
			effectRolls := 0
			if len(options) > 1 {
				effectRolls = int(options[1].IntValue())
			}

			if err := client.RegisterPlayer(user.Username); err != nil {
				return "", err
			}
			return client.Craft(user.Username, itemName, effectRolls)
		}, ResponseConfig{
			Title: "🔨 Crafting Complete",
			Color: 0xe67e22, // Orange
		})
	}

	return cmd, handler
}

// RecipesCommand returns the recipes command definition and handler
func RecipesCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "recipes",
		Description: "List recipes and your ingredient progress",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			if err := client.RegisterPlayer(user.Username); err != nil {
				return "", err
			}
			return client.GetRecipes(user.Username)
		}, ResponseConfig{
			Title: "📜 Recipes",
			Color: 0x3498db, // Blue
		})
	}

	return cmd, handler
}
