package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/RSA-Bots/Reppy/internal/bot/constants"
	"github.com/RSA-Bots/Reppy/internal/qa"
	"github.com/disgoorg/disgo/events"
)

// handleUpdate toggles up to five valid channels for the guild. The batch is
// atomic; pushing past the cap rejects every toggle in the invocation.
func (b *Bot) handleUpdate(event *events.ApplicationCommandInteractionCreate) {
	guildID := event.GuildID()
	if guildID == nil {
		b.updateResponse(event, renderError(qa.ErrGuildUnresolved))
		return
	}

	data := event.SlashCommandInteractionData()

	channelIDs := make([]uint64, 0, qa.MaxValidChannels)
	for i := 1; i <= qa.MaxValidChannels; i++ {
		if channel, ok := data.OptChannel(channelOptionName(i)); ok {
			channelIDs = append(channelIDs, uint64(channel.ID))
		}
	}

	channels, err := b.channels.ToggleChannels(context.Background(), uint64(*guildID), channelIDs)
	if err != nil {
		switch {
		case errors.Is(err, qa.ErrCapacityExceeded):
			b.updateResponse(event, fmt.Sprintf(
				"A guild can only have up to %d valid channels. No channels were changed.", qa.MaxValidChannels))
		default:
			b.updateResponse(event, renderError(err))
		}

		return
	}

	b.updateResponse(event, "Valid channels updated: "+channelMentions(channels))
}

// handleView reports the guild's valid channels in mentioned format.
// Unlike update and set, view is unrestricted.
func (b *Bot) handleView(event *events.ApplicationCommandInteractionCreate) {
	guildID := event.GuildID()
	if guildID == nil {
		b.updateResponse(event, renderError(qa.ErrGuildUnresolved))
		return
	}

	channels, err := b.channels.ValidChannels(context.Background(), uint64(*guildID))
	if err != nil {
		b.updateResponse(event, renderError(err))
		return
	}

	if len(channels) == 0 {
		b.updateResponse(event, "There are no valid channels for this guild.")
		return
	}

	b.updateResponse(event, "Valid channels: "+channelMentions(channels))
}

// handleSet assigns the report channel flagged messages get sent to.
func (b *Bot) handleSet(event *events.ApplicationCommandInteractionCreate) {
	guildID := event.GuildID()
	if guildID == nil {
		b.updateResponse(event, renderError(qa.ErrGuildUnresolved))
		return
	}

	data := event.SlashCommandInteractionData()

	channel, ok := data.OptChannel(constants.ReportChannelOptionName)
	if !ok {
		b.updateResponse(event, renderError(qa.ErrMalformedAction))
		return
	}

	if err := b.channels.SetReportChannel(context.Background(), uint64(*guildID), uint64(channel.ID)); err != nil {
		b.updateResponse(event, renderError(err))
		return
	}

	b.updateResponse(event, fmt.Sprintf("Successfully set the report channel to <#%d>.", uint64(channel.ID)))
}

// channelMentions renders channel IDs in mentioned format.
func channelMentions(channelIDs []uint64) string {
	if len(channelIDs) == 0 {
		return "none"
	}

	mentions := make([]string, 0, len(channelIDs))
	for _, id := range channelIDs {
		mentions = append(mentions, fmt.Sprintf("<#%d>", id))
	}

	return strings.Join(mentions, " ")
}
