package bot

import (
	"errors"

	"github.com/RSA-Bots/Reppy/internal/qa"
	botclient "github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"
)

// commonEvent is the interaction surface shared by command and component
// events.
type commonEvent interface {
	Client() botclient.Client
	ApplicationID() snowflake.ID
	Token() string
}

// updateResponse edits the deferred ephemeral response with the given content.
func (b *Bot) updateResponse(event commonEvent, content string) {
	_, err := event.Client().Rest().UpdateInteractionResponse(event.ApplicationID(), event.Token(),
		discord.NewMessageUpdateBuilder().SetContent(content).Build())
	if err != nil {
		b.logger.Warn("Failed to update interaction response", zap.Error(err))
	}
}

// followUp sends an ephemeral follow-up message after a deferred component
// update.
func (b *Bot) followUp(event commonEvent, content string) {
	_, err := event.Client().Rest().CreateFollowupMessage(event.ApplicationID(), event.Token(),
		discord.NewMessageCreateBuilder().SetContent(content).SetEphemeral(true).Build())
	if err != nil {
		b.logger.Warn("Failed to send follow-up message", zap.Error(err))
	}
}

// renderError maps component failures onto the shared user-facing wordings.
// Handler-specific wordings are applied before falling back to this.
func renderError(err error) string {
	switch {
	case errors.Is(err, qa.ErrGuildUnresolved):
		return "Failed to fetch guildId from interaction."
	case errors.Is(err, qa.ErrConfigMissing):
		return "No guild data exists for this guild."
	case errors.Is(err, qa.ErrMalformedAction):
		return "Invalid interactionData received."
	case errors.Is(err, qa.ErrNotImplemented):
		return "Not yet implemented."
	default:
		return "The action failed, please try again later."
	}
}
