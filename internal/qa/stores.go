package qa

import (
	"context"

	"github.com/RSA-Bots/Reppy/internal/database/types"
)

// VoteDirection identifies which vote set a voter is added to.
type VoteDirection int

const (
	VoteUp VoteDirection = iota
	VoteDown
)

// String returns the button identifier for the direction.
func (d VoteDirection) String() string {
	if d == VoteDown {
		return "downvote"
	}

	return "upvote"
}

// GuildStore persists per-guild configuration records. Implementations must
// return ErrConfigMissing when no record exists for a guild and wrap
// connectivity failures in ErrStoreUnavailable.
type GuildStore interface {
	// GetGuild loads the configuration record for a guild.
	GetGuild(ctx context.Context, guildID uint64) (*types.GuildConfig, error)
	// CreateDefault inserts an empty record for a newly joined guild.
	// Inserting an already known guild is a no-op.
	CreateDefault(ctx context.Context, guildID uint64) error
	// SaveValidChannels replaces the guild's valid channel set.
	SaveValidChannels(ctx context.Context, guildID uint64, channels []uint64) error
	// SetReportChannel assigns the channel flagged messages are routed to.
	SetReportChannel(ctx context.Context, guildID, channelID uint64) error
}

// MessageStore persists vote records for published answers. CastVote must be
// atomic per message: two concurrent votes on the same record may not lose
// either update.
type MessageStore interface {
	// GetRecord loads the vote record for a published answer.
	GetRecord(ctx context.Context, guildID, messageID uint64) (*types.MessageRecord, error)
	// InsertRecord creates the vote record for a freshly published answer.
	InsertRecord(ctx context.Context, record *types.MessageRecord) error
	// CastVote moves the voter into the requested vote set, removing them from
	// the opposite set in the same operation, and returns the updated record.
	// Voting the same direction twice is a no-op.
	CastVote(ctx context.Context, guildID, messageID, voterID uint64, direction VoteDirection) (*types.MessageRecord, error)
	// ChannelScore derives a user's score in a channel as the sum of
	// upvotes minus downvotes across their recorded answers.
	ChannelScore(ctx context.Context, guildID, userID, channelID uint64) (int64, error)
}

// ReputationStore persists derived per-user, per-channel score snapshots.
type ReputationStore interface {
	// UpsertScore writes a recomputed score snapshot.
	UpsertScore(ctx context.Context, rep *types.UserReputation) error
	// GetScore reads the last written snapshot. Unknown combinations score zero.
	GetScore(ctx context.Context, guildID, userID, channelID uint64) (int64, error)
}

// GuildLocker serializes read-modify-write mutations against one guild's
// record. Unrelated guilds must never block each other.
type GuildLocker interface {
	// Acquire blocks until the guild's lock is held and returns the release
	// function. Release is safe to call exactly once.
	Acquire(ctx context.Context, guildID uint64) (func(), error)
}
