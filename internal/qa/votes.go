package qa

import (
	"context"
	"time"

	"github.com/RSA-Bots/Reppy/internal/database/types"
	"go.uber.org/zap"
)

// VoteCounts carries the displayed tallies of a published answer.
type VoteCounts struct {
	Upvotes   int
	Downvotes int
}

// ReputationLedger records vote membership on published answers and keeps the
// derived per-user, per-channel score snapshots fresh. A voter is never in
// both sets of a record at once, and voting the same direction twice changes
// nothing.
type ReputationLedger struct {
	messages   MessageStore
	reputation ReputationStore
	gateway    Gateway
	logger     *zap.Logger
}

// NewReputationLedger creates a reputation ledger.
func NewReputationLedger(messages MessageStore, reputation ReputationStore, gateway Gateway, logger *zap.Logger) *ReputationLedger {
	return &ReputationLedger{
		messages:   messages,
		reputation: reputation,
		gateway:    gateway,
		logger:     logger.Named("qa_votes"),
	}
}

// CastVote moves the voter into the requested vote set of the answer message,
// removing them from the opposite set if present, then rewrites the displayed
// tallies. channelID is the thread the answer message lives in. Vote presses
// for the same message can be in flight concurrently; the set mutation is a
// single atomic store operation, so no press loses another's update.
func (l *ReputationLedger) CastVote(ctx context.Context, guildID, channelID, messageID, voterID uint64, direction VoteDirection) (VoteCounts, error) {
	record, err := l.messages.CastVote(ctx, guildID, messageID, voterID, direction)
	if err != nil {
		return VoteCounts{}, err
	}

	counts := VoteCounts{
		Upvotes:   len(record.Upvoters),
		Downvotes: len(record.Downvoters),
	}

	// Display follows the persisted record; a failed edit leaves the footer
	// stale until the next vote but never loses the vote itself.
	if err := l.gateway.UpdateAnswerFooter(ctx, channelID, messageID, counts.Upvotes, counts.Downvotes); err != nil {
		l.logger.Warn("Failed to update answer footer",
			zap.Uint64("guild_id", guildID),
			zap.Uint64("message_id", messageID),
			zap.Error(err))
	}

	l.refreshSnapshot(ctx, guildID, record.PosterID, record.ChannelID)

	return counts, nil
}

// Score derives a user's reputation in a channel from the vote sets of their
// recorded answers. The snapshot table is not consulted; recomputing on read
// avoids double-counting when votes change direction.
func (l *ReputationLedger) Score(ctx context.Context, guildID, userID, channelID uint64) (int64, error) {
	return l.messages.ChannelScore(ctx, guildID, userID, channelID)
}

// refreshSnapshot recomputes the poster's channel score from the vote sets
// and writes it to the snapshot table. Failures are logged and swallowed; the
// snapshot is a convenience projection, not the source of truth.
func (l *ReputationLedger) refreshSnapshot(ctx context.Context, guildID, userID, channelID uint64) {
	score, err := l.messages.ChannelScore(ctx, guildID, userID, channelID)
	if err != nil {
		l.logger.Warn("Failed to derive channel score",
			zap.Uint64("guild_id", guildID),
			zap.Uint64("user_id", userID),
			zap.Error(err))

		return
	}

	err = l.reputation.UpsertScore(ctx, &types.UserReputation{
		GuildID:    guildID,
		UserID:     userID,
		ChannelID:  channelID,
		Reputation: score,
		UpdatedAt:  time.Now(),
	})
	if err != nil {
		l.logger.Warn("Failed to store reputation snapshot",
			zap.Uint64("guild_id", guildID),
			zap.Uint64("user_id", userID),
			zap.Error(err))
	}
}
