package bot

import (
	"fmt"

	"github.com/RSA-Bots/Reppy/internal/bot/constants"
	"github.com/RSA-Bots/Reppy/internal/qa"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/json"
)

// channelOptionName returns the name of the nth channel toggle option.
func channelOptionName(n int) string {
	return fmt.Sprintf("channel-%d", n)
}

// guildCommands builds the full command payload registered for every guild:
// four message context menus, the restricted update/set configuration
// commands and the unrestricted view command.
func guildCommands() []discord.ApplicationCommandCreate {
	channelOptions := make([]discord.ApplicationCommandOption, 0, qa.MaxValidChannels)
	for i := 1; i <= qa.MaxValidChannels; i++ {
		channelOptions = append(channelOptions, discord.ApplicationCommandOptionChannel{
			Name:        channelOptionName(i),
			Description: "Channel to toggle",
			Required:    i == 1,
		})
	}

	// update and set default to manage-guild members; the permission
	// synchronizer then replaces the allowed role list per guild.
	restricted := json.NewNullablePtr(discord.PermissionManageGuild)

	return []discord.ApplicationCommandCreate{
		discord.MessageCommandCreate{Name: constants.ConvertToAnswerCommandName},
		discord.MessageCommandCreate{Name: constants.ConvertToQuestionCommandName},
		discord.MessageCommandCreate{Name: constants.AcceptAnswerCommandName},
		discord.MessageCommandCreate{Name: constants.FlagCommandName},
		discord.SlashCommandCreate{
			Name:                     constants.UpdateCommandName,
			Description:              "Toggle a valid channel (up to 5) for this guild.",
			Options:                  channelOptions,
			DefaultMemberPermissions: restricted,
		},
		discord.SlashCommandCreate{
			Name:        constants.ViewCommandName,
			Description: "View valid channels in mentioned format.",
		},
		discord.SlashCommandCreate{
			Name:        constants.SetCommandName,
			Description: "Set the reportChannel",
			Options: []discord.ApplicationCommandOption{
				discord.ApplicationCommandOptionChannel{
					Name:        constants.ReportChannelOptionName,
					Description: "The channel flagged messages get sent to.",
					Required:    true,
				},
			},
			DefaultMemberPermissions: restricted,
		},
	}
}
