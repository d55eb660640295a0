package discord

import (
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// BuyCommand returns the buy command definition and handler
func BuyCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "buy",
		Description: "Purchase an item from the shop",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "item",
				Description: "Item name to buy",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "quantity",
				Description: "Quantity to buy (default: 1)",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			user := getInteractionUser(i)
			options := getOptions(i)
			itemName := options[0].StringValue()
			quantity := 1
			if len(options) > 1 {
				quantity = int(options[1].IntValue())
			}

			if err := client.RegisterPlayer(user.Username); err != nil {
				return "", err
			}
			return client.BuyItem(user.Username, itemName, quantity)
		}, ResponseConfig{
			Title: "💰 Purchase Complete",
			Color: 0x2ecc71, // Green
		})
	}

	return cmd, handler
}

// SellCommand returns the sell command definition and handler
func SellCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "sell",
		Description: "Sell items from your inventory",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "item",
				Description: "Item name to sell",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "quantity",
				Description: "Quantity to sell (default: 1)",
				Required:    false,
			},
			{
				Type:        discordgo.ApplicationCommandOptionBoolean,
				Name:        "all",
				Description: "Sell every unit you hold",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		if !deferResponse(s, i) {
			return
		}

		user := getInteractionUser(i)
		options := getOptions(i)
		itemName := options[0].StringValue()
		quantity := 1
		all := false
		for _, opt := range options[1:] {
			switch opt.Name {
			case "quantity":
				quantity = int(opt.IntValue())
			case "all":
				all = opt.BoolValue()
			}
		}

		if !ensurePlayerRegistered(s, i, client, user.Username) {
			return
		}

		msg, err := client.SellItem(user.Username, itemName, quantity, all)
		if err != nil {
			slog.Error("Failed to sell item", "error", err)
			respondFriendlyError(s, i, err.Error())
			return
		}

		embed := createEmbed("💵 Sale Complete", msg, 0xf39c12, "")
		sendEmbed(s, i, embed)
	}

	return cmd, handler
}

// ShopCommand returns the shop command definition and handler
func ShopCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "shop",
		Description: "Browse the shop's stock and prices",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		handleEmbedResponse(s, i, func() (string, error) {
			return client.GetShop()
		}, ResponseConfig{
			Title: "🏪 Shop",
			Color: 0x1abc9c, // Teal
		})
	}

	return cmd, handler
}
