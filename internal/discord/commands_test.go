package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestFormatFriendlyError(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "insufficient funds",
			input:    "API error: insufficient funds: have 10, need 100",
			expected: MsgInsufficientFunds,
		},
		{
			name:     "missing ingredients with details",
			input:    "API error: missing ingredients (Ore: have 0, need 2)",
			expected: MsgMissingIngredients,
		},
		{
			name:     "player not found",
			input:    "player not found: ghost",
			expected: MsgPlayerNotFound,
		},
		{
			name:     "table not found",
			input:    "loot table not found: Void",
			expected: MsgTableNotFound,
		},
		{
			name:     "unknown error passes through with marker",
			input:    "something exploded",
			expected: "❌ something exploded",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatFriendlyError(tt.input))
		})
	}
}

func TestCommandsEqual(t *testing.T) {
	base := func() *discordgo.ApplicationCommand {
		return &discordgo.ApplicationCommand{
			Name:        "draw",
			Description: "Draw loot from a table",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "table",
					Description: "Loot table to draw from",
					Required:    true,
				},
			},
		}
	}

	t.Run("identical sets are equal", func(t *testing.T) {
		assert.True(t, commandsEqual(
			[]*discordgo.ApplicationCommand{base()},
			[]*discordgo.ApplicationCommand{base()},
		))
	})

	t.Run("changed description is not equal", func(t *testing.T) {
		changed := base()
		changed.Description = "different"
		assert.False(t, commandsEqual(
			[]*discordgo.ApplicationCommand{base()},
			[]*discordgo.ApplicationCommand{changed},
		))
	})

	t.Run("changed option required flag is not equal", func(t *testing.T) {
		changed := base()
		changed.Options[0].Required = false
		assert.False(t, commandsEqual(
			[]*discordgo.ApplicationCommand{base()},
			[]*discordgo.ApplicationCommand{changed},
		))
	})

	t.Run("different lengths are not equal", func(t *testing.T) {
		assert.False(t, commandsEqual(
			[]*discordgo.ApplicationCommand{base()},
			nil,
		))
	})
}

func TestRegistryRegisterAndLookup(t *testing.T) {
	registry := NewCommandRegistry()
	cmd, handler := PingCommand()
	registry.Register(cmd, handler)

	assert.Contains(t, registry.Commands, "ping")
	assert.Contains(t, registry.Handlers, "ping")
}
