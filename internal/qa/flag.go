package qa

import (
	"context"

	"go.uber.org/zap"
)

// FlagReason is the closed set of reasons a message can be flagged with.
type FlagReason string

const (
	FlagSpam  FlagReason = "spam"
	FlagBroad FlagReason = "broad"
	FlagOther FlagReason = "other"
)

// FlagWorkflow escalates messages to the guild's report channel for moderator
// review. Contract: posting the summary requires a configured report channel
// and fails with ErrReportChannelUnset otherwise. The behavior itself is not
// implemented yet; every invocation reports ErrNotImplemented.
type FlagWorkflow struct {
	guilds GuildStore
	logger *zap.Logger
}

// NewFlagWorkflow creates a flag workflow.
func NewFlagWorkflow(guilds GuildStore, logger *zap.Logger) *FlagWorkflow {
	return &FlagWorkflow{
		guilds: guilds,
		logger: logger.Named("qa_flag"),
	}
}

// Flag escalates a message to the report channel.
func (w *FlagWorkflow) Flag(ctx context.Context, guildID, messageID, actorID uint64, reason FlagReason) error {
	w.logger.Debug("Flag requested",
		zap.Uint64("guild_id", guildID),
		zap.Uint64("message_id", messageID),
		zap.String("reason", string(reason)))

	return ErrNotImplemented
}
