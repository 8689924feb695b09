package bot

import (
	"testing"

	"github.com/RSA-Bots/Reppy/internal/bot/constants"
	"github.com/disgoorg/disgo/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVoteFooter(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Upvotes: 0 | Downvotes: 0", voteFooter(0, 0))
	assert.Equal(t, "Upvotes: 1 | Downvotes: 0", voteFooter(1, 0))
	assert.Equal(t, "Upvotes: 3 | Downvotes: 12", voteFooter(3, 12))
}

func TestChannelMentions(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "none", channelMentions(nil))
	assert.Equal(t, "<#1>", channelMentions([]uint64{1}))
	assert.Equal(t, "<#1> <#2>", channelMentions([]uint64{1, 2}))
}

func TestGuildCommands(t *testing.T) {
	t.Parallel()

	commands := guildCommands()
	require.Len(t, commands, 7)

	var contextMenus, slash []string

	for _, command := range commands {
		switch c := command.(type) {
		case discord.MessageCommandCreate:
			contextMenus = append(contextMenus, c.Name)
		case discord.SlashCommandCreate:
			slash = append(slash, c.Name)

			switch c.Name {
			case constants.UpdateCommandName:
				// One required channel option plus four optional ones.
				require.Len(t, c.Options, 5)

				first, ok := c.Options[0].(discord.ApplicationCommandOptionChannel)
				require.True(t, ok)
				assert.Equal(t, "channel-1", first.Name)
				assert.True(t, first.Required)

				last, ok := c.Options[4].(discord.ApplicationCommandOptionChannel)
				require.True(t, ok)
				assert.Equal(t, "channel-5", last.Name)
				assert.False(t, last.Required)

				assert.NotNil(t, c.DefaultMemberPermissions)
			case constants.SetCommandName:
				require.Len(t, c.Options, 1)

				option, ok := c.Options[0].(discord.ApplicationCommandOptionChannel)
				require.True(t, ok)
				assert.Equal(t, constants.ReportChannelOptionName, option.Name)
				assert.True(t, option.Required)

				assert.NotNil(t, c.DefaultMemberPermissions)
			case constants.ViewCommandName:
				assert.Empty(t, c.Options)
				assert.Nil(t, c.DefaultMemberPermissions)
			}
		}
	}

	assert.ElementsMatch(t, []string{
		constants.ConvertToAnswerCommandName,
		constants.ConvertToQuestionCommandName,
		constants.AcceptAnswerCommandName,
		constants.FlagCommandName,
	}, contextMenus)
	assert.ElementsMatch(t, []string{
		constants.UpdateCommandName,
		constants.ViewCommandName,
		constants.SetCommandName,
	}, slash)
}
