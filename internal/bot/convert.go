package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/RSA-Bots/Reppy/internal/bot/constants"
	"github.com/RSA-Bots/Reppy/internal/qa"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/events"
)

// handleContextCommand dispatches the four message context menu actions.
func (b *Bot) handleContextCommand(event *events.ApplicationCommandInteractionCreate) {
	data := event.MessageCommandInteractionData()
	msg := targetMessage(data)

	var guildID uint64
	if id := event.GuildID(); id != nil {
		guildID = uint64(*id)
	}

	actorID := uint64(event.User().ID)
	ctx := context.Background()

	switch data.CommandName() {
	case constants.ConvertToQuestionCommandName:
		b.handleConvertToQuestion(ctx, event, guildID, actorID, msg)
	case constants.ConvertToAnswerCommandName:
		b.handleConvertToAnswer(ctx, event, guildID, actorID, msg)
	case constants.AcceptAnswerCommandName:
		err := b.convert.AcceptAnswer(ctx, guildID, actorID, msg)
		b.updateResponse(event, renderError(err))
	case constants.FlagCommandName:
		err := b.flags.Flag(ctx, guildID, msg.ID, actorID, qa.FlagOther)
		b.updateResponse(event, renderError(err))
	default:
		b.updateResponse(event, "Invalid interactionData received.")
	}
}

func (b *Bot) handleConvertToQuestion(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate, guildID, actorID uint64, msg qa.Message,
) {
	threadID, err := b.convert.ConvertToQuestion(ctx, guildID, actorID, msg)
	if err != nil {
		switch {
		case errors.Is(err, qa.ErrAlreadyConverted):
			b.updateResponse(event, fmt.Sprintf("This message already has an existing question. <#%d>", threadID))
		case errors.Is(err, qa.ErrChannelNotEligible):
			b.updateResponse(event, "This channel is not a valid reputation gainable channel.")
		case errors.Is(err, qa.ErrNotAuthorized):
			b.updateResponse(event, "You are not allowed to convert another member's message to a question.")
		default:
			b.updateResponse(event, renderError(err))
		}

		return
	}

	b.updateResponse(event, "Successfully converted message to question.")
}

func (b *Bot) handleConvertToAnswer(
	ctx context.Context, event *events.ApplicationCommandInteractionCreate, guildID, actorID uint64, msg qa.Message,
) {
	if _, err := b.convert.ConvertToAnswer(ctx, guildID, actorID, msg); err != nil {
		switch {
		case errors.Is(err, qa.ErrAlreadyConverted):
			b.updateResponse(event, "This message is already an answer.")
		case errors.Is(err, qa.ErrChannelNotEligible):
			b.updateResponse(event, "This is not a valid location to convert a message to an answer.")
		case errors.Is(err, qa.ErrNotAuthorized):
			b.updateResponse(event, "You are not allowed to convert another member's message to an answer.")
		default:
			b.updateResponse(event, renderError(err))
		}

		return
	}

	b.updateResponse(event, "Message successfully converted to an answer.")
}

// targetMessage projects the context menu target into the slice of message
// state the conversion machine inspects.
func targetMessage(data discord.MessageCommandInteractionData) qa.Message {
	msg := data.TargetMessage()

	return qa.Message{
		ID:        uint64(msg.ID),
		ChannelID: uint64(msg.ChannelID),
		AuthorID:  uint64(msg.Author.ID),
		Content:   msg.Content,
		HasThread: msg.Flags.Has(discord.MessageFlagHasThread),
		HasEmbeds: len(msg.Embeds) > 0,
	}
}
