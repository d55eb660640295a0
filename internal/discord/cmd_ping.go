package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// PingCommand reports bot liveness and gateway latency.
func PingCommand() (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "ping",
		Description: "Check if the bot is alive",
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate, client *APIClient) {
		content := fmt.Sprintf("Pong! 🏓 (gateway %dms)", s.HeartbeatLatency().Milliseconds())
		if err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: &discordgo.InteractionResponseData{
				Content: content,
			},
		}); err != nil {
			slog.Error("Failed to respond to ping", "error", err)
		}
	}

	return cmd, handler
}
