package types

import "time"

// GuildConfig is the per-guild configuration record. One row exists for every
// guild the bot has joined, created with empty defaults on guild join.
type GuildConfig struct {
	GuildID uint64 `bun:",pk,notnull"         json:"guildId"`
	// Channels enabled for the Q&A workflow, capped at 5 per guild.
	ValidChannels []uint64 `bun:",array,notnull"      json:"validChannels"`
	// Channel flagged messages get sent to. Zero means unset.
	ReportChannelID uint64    `bun:",notnull,default:0"  json:"reportChannelId"`
	CreatedAt       time.Time `bun:",notnull"            json:"createdAt"`
	UpdatedAt       time.Time `bun:",notnull"            json:"updatedAt"`
}

// MessageRecord tracks the vote membership of a published answer. The message
// ID belongs to the embed message that replaced the original reply, not the
// reply itself.
type MessageRecord struct {
	GuildID   uint64 `bun:",notnull"       json:"guildId"`
	MessageID uint64 `bun:",pk,notnull"    json:"messageId"`
	// Parent channel of the answer's thread, used for per-channel scores.
	ChannelID  uint64   `bun:",notnull"       json:"channelId"`
	PosterID   uint64   `bun:",notnull"       json:"posterId"`
	Upvoters   []uint64 `bun:",array,notnull" json:"upvotes"`
	Downvoters []uint64 `bun:",array,notnull" json:"downvotes"`
}

// UserReputation is the per-user, per-channel score snapshot. It is refreshed
// from the vote sets after each vote rather than incremented, so a changed
// vote never double-counts.
type UserReputation struct {
	GuildID    uint64    `bun:",pk,notnull" json:"guildId"`
	UserID     uint64    `bun:",pk,notnull" json:"userId"`
	ChannelID  uint64    `bun:",pk,notnull" json:"channelId"`
	Reputation int64     `bun:",notnull"    json:"reputation"`
	UpdatedAt  time.Time `bun:",notnull"    json:"updatedAt"`
}
