package bot

import (
	"context"
	"errors"
	"time"

	"github.com/RSA-Bots/Reppy/internal/bot/constants"
	"github.com/RSA-Bots/Reppy/internal/qa"
	"github.com/disgoorg/disgo/events"
	"go.uber.org/zap"
)

// handleComponentInteraction processes vote button presses on published
// answers. Presses carry no ordering or exclusivity guarantee, so the actual
// set mutation happens atomically in the store.
func (b *Bot) handleComponentInteraction(event *events.ComponentInteractionCreate) {
	go func() {
		var direction qa.VoteDirection

		switch event.Data.CustomID() {
		case constants.UpvoteButtonID:
			direction = qa.VoteUp
		case constants.DownvoteButtonID:
			direction = qa.VoteDown
		default:
			return
		}

		// Acknowledge immediately, the footer edit follows from the store.
		if err := event.DeferUpdateMessage(); err != nil {
			b.logger.Error("Failed to defer update message", zap.Error(err))
			return
		}

		start := time.Now()

		defer func() {
			if r := recover(); r != nil {
				b.logger.Error("Panic in component interaction handler", zap.Any("panic", r))
			}

			b.logger.Debug("Component interaction handled",
				zap.String("custom_id", event.Data.CustomID()),
				zap.Duration("duration", time.Since(start)))
		}()

		guildID := event.GuildID()
		if guildID == nil {
			// Vote buttons only ever live on guild messages.
			return
		}

		_, err := b.ledger.CastVote(
			context.Background(),
			uint64(*guildID),
			uint64(event.Message.ChannelID),
			uint64(event.Message.ID),
			uint64(event.User().ID),
			direction,
		)
		if err != nil {
			if errors.Is(err, qa.ErrRecordMissing) {
				b.followUp(event, "This answer is no longer tracked for voting.")
				return
			}

			b.logger.Warn("Failed to cast vote",
				zap.Uint64("message_id", uint64(event.Message.ID)),
				zap.Error(err))
			b.followUp(event, renderError(err))
		}
	}()
}
