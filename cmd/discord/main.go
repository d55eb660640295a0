// Command discord runs the slash-command bot that fronts the engine's
// HTTP API.
package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/bwmarrin/discordgo"

	"github.com/lootledger/engine/internal/config"
	"github.com/lootledger/engine/internal/discord"
)

// CommandFactory creates a Discord command and its handler.
// Used to register all available commands in one place.
type CommandFactory func() (*discordgo.ApplicationCommand, discord.CommandHandler)

func main() {
	setupLogger()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}
	if err := validateDiscordConfig(cfg); err != nil {
		slog.Error("Configuration failed", "error", err)
		os.Exit(1)
	}

	bot, err := discord.New(discord.Config{
		Token:  cfg.DiscordToken,
		AppID:  cfg.DiscordAppID,
		APIURL: cfg.EngineBaseURL,
		APIKey: cfg.APIKey,
	})
	if err != nil {
		slog.Error("Failed to create bot", "error", err)
		os.Exit(1)
	}

	registerCommands(bot, commandFactories())

	forceUpdate := os.Getenv("DISCORD_FORCE_COMMAND_UPDATE") == "true"
	if forceUpdate {
		slog.Info("Force command update enabled via environment variable")
	}

	if err := bot.RegisterCommands(bot.Registry, forceUpdate); err != nil {
		slog.Error("Failed to register commands", "error", err)
		// Don't exit - bot can still run if commands are already registered
	}

	if err := bot.Run(); err != nil {
		slog.Error("Bot failed", "error", err)
		os.Exit(1)
	}
}

// setupLogger configures structured logging to stdout.
func setupLogger() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)
}

func validateDiscordConfig(cfg *config.Config) error {
	if cfg.DiscordToken == "" {
		return errors.New("DISCORD_TOKEN environment variable must be set")
	}
	if cfg.DiscordAppID == "" {
		return errors.New("DISCORD_APP_ID environment variable must be set")
	}
	return nil
}

// commandFactories lists every slash command the bot serves.
func commandFactories() []CommandFactory {
	return []CommandFactory{
		discord.PingCommand,
		discord.DrawCommand,
		discord.TablesCommand,
		discord.SellCommand,
		discord.BuyCommand,
		discord.ShopCommand,
		discord.CraftCommand,
		discord.RecipesCommand,
		discord.ProfileCommand,
		discord.UseCommand,
	}
}

func registerCommands(bot *discord.Bot, factories []CommandFactory) {
	for _, factory := range factories {
		bot.Registry.Register(factory())
	}
}
