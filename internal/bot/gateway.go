package bot

import (
	"context"
	"fmt"

	"github.com/RSA-Bots/Reppy/internal/bot/constants"
	"github.com/RSA-Bots/Reppy/internal/qa"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"
)

// voteFooter renders the displayed tallies of a published answer.
func voteFooter(upvotes, downvotes int) string {
	return fmt.Sprintf("Upvotes: %d | Downvotes: %d", upvotes, downvotes)
}

// discordGateway drives the Discord REST surface on behalf of the Q&A
// components. It implements qa.Gateway and qa.CommandPermissionSetter.
type discordGateway struct {
	rest          rest.Rest
	applicationID snowflake.ID
	logger        *zap.Logger
}

func newDiscordGateway(rest rest.Rest, applicationID snowflake.ID, logger *zap.Logger) *discordGateway {
	return &discordGateway{
		rest:          rest,
		applicationID: applicationID,
		logger:        logger.Named("discord_gateway"),
	}
}

// CreateThread opens a thread on the message and returns its ID.
func (g *discordGateway) CreateThread(_ context.Context, channelID, messageID uint64, name string) (uint64, error) {
	thread, err := g.rest.CreateThreadFromMessage(snowflake.ID(channelID), snowflake.ID(messageID),
		discord.ThreadCreateFromMessage{
			Name:                name,
			AutoArchiveDuration: discord.AutoArchiveDuration24h,
		})
	if err != nil {
		return 0, fmt.Errorf("failed to create thread: %w", err)
	}

	return uint64(thread.ID()), nil
}

// ThreadOf resolves the thread a channel ID refers to.
func (g *discordGateway) ThreadOf(_ context.Context, channelID uint64) (qa.Thread, bool, error) {
	channel, err := g.rest.GetChannel(snowflake.ID(channelID))
	if err != nil {
		return qa.Thread{}, false, fmt.Errorf("failed to get channel: %w", err)
	}

	thread, ok := channel.(discord.GuildThread)
	if !ok || thread.ParentID() == nil {
		return qa.Thread{}, false, nil
	}

	return qa.Thread{
		ID:       uint64(thread.ID()),
		ParentID: uint64(*thread.ParentID()),
	}, true, nil
}

// PostAnswer publishes the answer embed with its vote controls.
func (g *discordGateway) PostAnswer(_ context.Context, post qa.AnswerPost) (uint64, error) {
	embed := discord.NewEmbedBuilder().
		SetTitle(constants.AnswerEmbedTitle).
		SetAuthorName(post.AuthorName).
		AddField(constants.AnswerFieldName, post.Content, true).
		SetFooter(voteFooter(0, 0), "").
		Build()

	message, err := g.rest.CreateMessage(snowflake.ID(post.ThreadID), discord.NewMessageCreateBuilder().
		SetEmbeds(embed).
		AddActionRow(
			discord.NewPrimaryButton("Upvote", constants.UpvoteButtonID),
			discord.NewDangerButton("Downvote", constants.DownvoteButtonID),
		).
		Build())
	if err != nil {
		return 0, fmt.Errorf("failed to post answer: %w", err)
	}

	return uint64(message.ID), nil
}

// DeleteMessage removes the original reply after conversion.
func (g *discordGateway) DeleteMessage(_ context.Context, channelID, messageID uint64) error {
	if err := g.rest.DeleteMessage(snowflake.ID(channelID), snowflake.ID(messageID)); err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}

	return nil
}

// MemberDisplayName resolves a guild member's display name.
func (g *discordGateway) MemberDisplayName(_ context.Context, guildID, userID uint64) (string, error) {
	member, err := g.rest.GetMember(snowflake.ID(guildID), snowflake.ID(userID))
	if err != nil {
		return "", fmt.Errorf("failed to get member: %w", err)
	}

	return member.EffectiveName(), nil
}

// UpdateAnswerFooter rewrites the vote tallies on a published answer.
func (g *discordGateway) UpdateAnswerFooter(_ context.Context, channelID, messageID uint64, upvotes, downvotes int) error {
	message, err := g.rest.GetMessage(snowflake.ID(channelID), snowflake.ID(messageID))
	if err != nil {
		return fmt.Errorf("failed to get answer message: %w", err)
	}

	if len(message.Embeds) == 0 {
		return fmt.Errorf("answer message %d has no embed", messageID)
	}

	embed := message.Embeds[0]
	embed.Footer = &discord.EmbedFooter{Text: voteFooter(upvotes, downvotes)}

	_, err = g.rest.UpdateMessage(snowflake.ID(channelID), snowflake.ID(messageID),
		discord.NewMessageUpdateBuilder().SetEmbeds(embed).Build())
	if err != nil {
		return fmt.Errorf("failed to update answer footer: %w", err)
	}

	return nil
}

// SetCommandRoles replaces the role list allowed to invoke a restricted
// configuration command in a guild.
func (g *discordGateway) SetCommandRoles(_ context.Context, guildID, commandID uint64, roleIDs []uint64) error {
	permissions := make([]discord.ApplicationCommandPermission, 0, len(roleIDs))
	for _, roleID := range roleIDs {
		permissions = append(permissions, discord.ApplicationCommandPermissionRole{
			RoleID:     snowflake.ID(roleID),
			Permission: true,
		})
	}

	_, err := g.rest.SetGuildCommandPermissions(
		"", g.applicationID, snowflake.ID(guildID), snowflake.ID(commandID), permissions,
	)
	if err != nil {
		return fmt.Errorf("failed to set command permissions: %w", err)
	}

	return nil
}
